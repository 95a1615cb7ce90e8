package passdig

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagJSON     bool
	flagSARIF    bool
	flagTable    bool
	flagNoColor  bool
	flagLogLevel string

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the passdig CLI.
var rootCmd = &cobra.Command{
	Use:           "passdig",
	Short:         "Find hardcoded credentials in a source tree",
	Long:          "passdig walks a directory tree and reports lines where a credential keyword is assigned a literal value.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the passdig CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output findings as a bordered table")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "diagnostic log level: debug|info|warn|error")
}

// newLogger builds the stderr diagnostic logger for the given level name.
func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l, nil
}
