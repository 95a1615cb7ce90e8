package passdig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/passdig/passdig/internal/config"
	"github.com/passdig/passdig/internal/engine"
	"github.com/passdig/passdig/internal/report"
)

// scanFlags holds the scan subcommand's flag values.
type scanFlags struct {
	path            string
	configPath      string
	keywordsFile    string
	ignoreFile      string
	includeFile     string
	excludeFile     string
	include         string
	exclude         string
	globSyntax      string
	maxLength       int
	maxFiles        int
	workers         int
	defaultExcludes bool
}

var sf scanFlags

func init() {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a directory tree for hardcoded credentials",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	f := cmd.Flags()
	f.StringVarP(&sf.path, "path", "p", ".", "path to scan")
	f.StringVar(&sf.configPath, "config", "", "config file (default: .passdig.yml in the scanned path)")
	f.StringVar(&sf.keywordsFile, "keywords-file", "", "file with one credential keyword per line")
	f.StringVar(&sf.ignoreFile, "ignore-file", "", "file with one suppression regex per line")
	f.StringVar(&sf.includeFile, "include-file", "", "file with one include glob per line")
	f.StringVar(&sf.excludeFile, "exclude-file", "", "file with one exclude glob per line")
	f.StringVar(&sf.include, "include", "", "comma-separated include globs")
	f.StringVar(&sf.exclude, "exclude", "", "comma-separated exclude globs")
	f.StringVar(&sf.globSyntax, "glob-syntax", "", "glob dialect: shell (* crosses /) or path (** crosses /)")
	f.IntVar(&sf.maxLength, "max-length", engine.DefaultMaxLength, "skip lines longer than this many characters (0 = no limit)")
	f.IntVar(&sf.maxFiles, "max-files", 0, "stop after examining this many files (0 = no limit)")
	f.IntVar(&sf.workers, "workers", 0, "evaluate files concurrently with this many workers")
	f.BoolVar(&sf.defaultExcludes, "default-excludes", false, "skip VCS, dependency and virtualenv directories")

	// long-standing names
	f.StringVar(&sf.keywordsFile, "bad-words", "", "alias of --keywords-file")
	f.StringVar(&sf.ignoreFile, "ignore-patterns", "", "alias of --ignore-file")
	f.StringVar(&sf.includeFile, "include-paths", "", "alias of --include-file")
	f.StringVar(&sf.excludeFile, "exclude-paths", "", "alias of --exclude-file")
	f.IntVar(&sf.maxFiles, "max-checks", 0, "alias of --max-files")
	for _, name := range []string{"bad-words", "ignore-patterns", "include-paths", "exclude-paths", "max-checks"} {
		_ = f.MarkHidden(name)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		sf.path = args[0]
	}
	// Root stays as typed: finding paths and globs keep the user's prefix.
	root := sf.path
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	log, err := newLogger(flagLogLevel)
	if err != nil {
		return err
	}

	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if sf.configPath != "" {
		c, err := config.LoadFile(sf.configPath)
		if err != nil {
			return err
		}
		lcfg = c
	} else if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	changed := func(name string) bool { return cmd.Flags().Changed(name) }
	cfg, err := resolveConfig(root, sf, changed, lcfg, gcfg)
	if err != nil {
		return err
	}
	cfg.Logger = log

	machine := flagJSON || flagSARIF
	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor) || !term.IsTerminal(int(os.Stdout.Fd()))
	if !machine {
		_, _ = fmt.Fprintf(os.Stderr, "Scanning %s...\n", abs)
	}

	progressed := 0
	showProgress := !machine && term.IsTerminal(int(os.Stderr.Fd()))
	if showProgress {
		cfg.Progress = func() {
			progressed++
			if progressed%50 == 0 {
				_, _ = fmt.Fprintf(os.Stderr, "\r[%d files]", progressed)
			}
		}
	}
	res, err := engine.ScanWithStats(cmd.Context(), cfg)
	if showProgress && progressed >= 50 {
		_, _ = fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	log.WithFields(logrus.Fields{"examined": res.FilesExamined, "findings": len(res.Findings)}).Info("scan complete")

	opts := report.PrintOptions{
		NoColor:      noColor,
		FilesChecked: res.FilesExamined,
		HitLimit:     res.Truncated,
	}
	switch {
	case flagSARIF:
		if err := report.WriteSARIF(os.Stdout, res.Findings, version); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		if err := report.WriteJSON(os.Stdout, res.Findings); err != nil {
			return err
		}
	case flagTable:
		opts.Duration = res.Duration
		report.PrintTable(os.Stdout, res.Findings, opts)
	default:
		report.PrintText(os.Stdout, res.Findings, opts)
	}

	if report.ShouldFail(res.Findings) {
		os.Exit(1)
	}
	return nil
}

// resolveConfig merges scan flags with the local and global config files.
// changed reports whether a flag was given on the command line.
func resolveConfig(root string, f scanFlags, changed func(string) bool, lcfg, gcfg config.FileConfig) (engine.Config, error) {
	keywords, err := pickList("", f.keywordsFile, lcfg.KeywordList, gcfg.KeywordList)
	if err != nil {
		return engine.Config{}, fmt.Errorf("keywords: %w", err)
	}
	ignores, err := pickList("", f.ignoreFile, lcfg.IgnoreList, gcfg.IgnoreList)
	if err != nil {
		return engine.Config{}, fmt.Errorf("ignore patterns: %w", err)
	}
	include, err := pickList(f.include, f.includeFile, lcfg.IncludeList, gcfg.IncludeList)
	if err != nil {
		return engine.Config{}, fmt.Errorf("include globs: %w", err)
	}
	exclude, err := pickList(f.exclude, f.excludeFile, lcfg.ExcludeList, gcfg.ExcludeList)
	if err != nil {
		return engine.Config{}, fmt.Errorf("exclude globs: %w", err)
	}
	syntax, err := engine.ParseGlobSyntax(pickString(f.globSyntax, lcfg.GlobSyntax, gcfg.GlobSyntax))
	if err != nil {
		return engine.Config{}, err
	}

	templates := lcfg.Templates
	if len(templates) == 0 {
		templates = gcfg.Templates
	}

	return engine.Config{
		Root:            root,
		Keywords:        keywords,
		Templates:       templates,
		IgnorePatterns:  ignores,
		IncludeGlobs:    include,
		ExcludeGlobs:    exclude,
		GlobSyntax:      syntax,
		DefaultExcludes: pickBool(f.defaultExcludes, lcfg.DefaultExcludes, gcfg.DefaultExcludes),
		MaxLength:       pickSetInt(changed("max-length"), f.maxLength, lcfg.MaxLength, gcfg.MaxLength, engine.DefaultMaxLength),
		MaxFiles:        pickSetInt(changed("max-files") || changed("max-checks"), f.maxFiles, lcfg.MaxFiles, gcfg.MaxFiles, 0),
		Workers:         pickInt(f.workers, lcfg.Workers, gcfg.Workers),
	}, nil
}
