package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/five82/pkgdrop/internal/app"
	"github.com/five82/pkgdrop/internal/catalog"
)

func newListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list [term]",
		Aliases: []string{"ls"},
		Short:   "List catalog packages",
		Long:    "List the catalog, optionally filtered by a case-insensitive title or content ID term.",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Prepare(flags.options(true))
			if err != nil {
				return err
			}
			defer env.Close()

			term := strings.Join(args, " ")
			pkgs := catalog.Filter(env.Catalog, term)
			out := cmd.OutOrStdout()
			if len(pkgs) == 0 {
				fmt.Fprintf(out, "No packages match %q.\n", term)
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tVERSION\tSIZE\tCONTENT ID")
			for _, p := range pkgs {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Title, dash(p.Version), dash(p.Size), dash(p.ContentID))
			}
			return w.Flush()
		},
	}
}

func dash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
