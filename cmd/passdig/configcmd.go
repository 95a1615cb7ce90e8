package passdig

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/passdig/passdig/internal/config"
	"github.com/passdig/passdig/internal/detectors"
	"github.com/passdig/passdig/internal/engine"
)

var (
	cfgOutput          string
	cfgForce           bool
	cfgWithKeywords    bool
	cfgMaxLength       int
	cfgMaxFiles        int
	cfgWorkers         int
	cfgGlobSyntax      string
	cfgNoColor         bool
	cfgDefaultExcludes bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter .passdig.yml",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", ".passdig.yml", "output file path")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
	initCmd.Flags().BoolVar(&cfgWithKeywords, "with-keywords", true, "write the built-in keyword list so it can be edited")
	initCmd.Flags().IntVar(&cfgMaxLength, "max-length", engine.DefaultMaxLength, "longest line to evaluate")
	initCmd.Flags().IntVar(&cfgMaxFiles, "max-files", 0, "file ceiling (0 = no limit)")
	initCmd.Flags().IntVar(&cfgWorkers, "workers", 0, "concurrent workers (0 = sequential)")
	initCmd.Flags().StringVar(&cfgGlobSyntax, "glob-syntax", string(engine.GlobShell), "glob dialect: shell | path")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
	initCmd.Flags().BoolVar(&cfgDefaultExcludes, "default-excludes", false, "skip VCS and dependency directories")
}

func runConfigInit(c *cobra.Command, _ []string) error {
	if _, err := engine.ParseGlobSyntax(cfgGlobSyntax); err != nil {
		return err
	}
	if !cfgForce {
		if _, err := os.Stat(cfgOutput); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfgOutput)
		}
	}

	fc := config.FileConfig{
		MaxLength:       intPtr(cfgMaxLength),
		MaxFiles:        optIntPtr(cfgMaxFiles),
		Workers:         optIntPtr(cfgWorkers),
		GlobSyntax:      strPtr(cfgGlobSyntax),
		NoColor:         boolPtr(cfgNoColor),
		DefaultExcludes: boolPtr(cfgDefaultExcludes),
	}
	if cfgWithKeywords {
		fc.Keywords = detectors.DefaultKeywords()
	}

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0644); err != nil {
		return err
	}
	fmt.Fprintln(c.OutOrStdout(), "Wrote", cfgOutput)
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }
func optIntPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
func boolPtr(v bool) *bool { return &v }
