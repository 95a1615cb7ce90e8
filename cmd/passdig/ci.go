package passdig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var ciTemplates = map[string]struct{ path, content string }{
	"github": {
		path: ".github/workflows/passdig.yml",
		content: `name: passdig
on: [push, pull_request]
jobs:
  scan:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-go@v5
        with:
          go-version: '1.25'
      - run: go install github.com/passdig/passdig@latest
      - run: passdig scan --sarif --default-excludes . > passdig.sarif
      - uses: github/codeql-action/upload-sarif@v3
        if: always()
        with:
          sarif_file: passdig.sarif
`,
	},
	"gitlab": {
		path: ".gitlab-ci.yml",
		content: `stages: [scan]
passdig:
  stage: scan
  image: golang:1.25
  script:
    - go install github.com/passdig/passdig@latest
    - passdig scan --json --default-excludes . | tee passdig-findings.json
  artifacts:
    when: always
    paths:
      - passdig-findings.json
`,
	},
}

func init() {
	ci := &cobra.Command{Use: "ci", Short: "CI template helpers"}
	rootCmd.AddCommand(ci)

	var provider string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a CI pipeline template for your provider",
		RunE: func(c *cobra.Command, _ []string) error {
			tpl, ok := ciTemplates[provider]
			if !ok {
				return fmt.Errorf("unknown --provider %q. Supported: github, gitlab", provider)
			}
			if err := os.MkdirAll(filepath.Dir(tpl.path), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(tpl.path, []byte(tpl.content), 0644); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), "Wrote", tpl.path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&provider, "provider", "github", "CI provider: github | gitlab")
	ci.AddCommand(initCmd)
}
