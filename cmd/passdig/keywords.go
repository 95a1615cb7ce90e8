package passdig

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/passdig/passdig/internal/detectors"
)

func init() {
	var withTemplates bool
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "List the built-in credential keywords",
		Run: func(c *cobra.Command, _ []string) {
			out := c.OutOrStdout()
			for _, w := range detectors.DefaultKeywords() {
				fmt.Fprintln(out, w)
			}
			if withTemplates {
				fmt.Fprintln(out)
				for _, t := range detectors.DefaultTemplates() {
					fmt.Fprintf(out, "%s\t%s\n", t.Name, t.Tail)
				}
			}
		},
	}
	cmd.Flags().BoolVar(&withTemplates, "templates", false, "also print the structural templates")
	rootCmd.AddCommand(cmd)
}
