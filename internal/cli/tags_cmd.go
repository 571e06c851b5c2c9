package cli

import (
	"fmt"

	"github.com/alexanderramin/kioku/internal/cli/formatter"
	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/spf13/cobra"
)

var knownLists = []domain.ListName{domain.ListSearch, domain.ListSessionLog}

func parseListName(s string) (domain.ListName, error) {
	for _, l := range knownLists {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown list %q (want search or sessionlog)", s)
}

func newTagsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Show the collapsed sections remembered for each list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows [][]string
			for _, list := range knownLists {
				tags, err := app.Prefs.CollapsedTags(cmd.Context(), list)
				if err != nil {
					return err
				}
				for _, tag := range tags {
					rows = append(rows, []string{string(list), tag})
				}
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No collapsed sections.")
				return nil
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"LIST", "TAG"}, rows))
			return nil
		},
	}

	cmd.AddCommand(newTagsClearCmd(app))
	return cmd
}

func newTagsClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [LIST]",
		Short: "Expand every section of one list, or of all lists",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lists := knownLists
			if len(args) == 1 {
				list, err := parseListName(args[0])
				if err != nil {
					return err
				}
				lists = []domain.ListName{list}
			}
			for _, list := range lists {
				if err := app.Prefs.SaveCollapsedTags(cmd.Context(), list, nil); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared collapsed sections of %s\n", list)
			}
			return nil
		},
	}
}
