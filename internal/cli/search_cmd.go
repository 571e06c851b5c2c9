package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/search"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
)

// idSelections maps --ids values to the Results export they print.
var idSelections = map[string]func(*search.Results) []int64{
	"all":           (*search.Results).SubjectIDs,
	"resurrectable": (*search.Results).ResurrectableIDs,
	"burnable":      (*search.Results).BurnableIDs,
}

func newSearchCmd(app *App) *cobra.Command {
	var (
		minLevel, maxLevel int
		types, stages      []string
		ids                string
		showForm           bool
	)
	order := app.DefaultOrder

	cmd := &cobra.Command{
		Use:   "search [TEXT]",
		Short: "Search subjects and show them grouped by the sort order",
		Long: `Search subjects by text, level, type and SRS stage.

Results are grouped into collapsible sections according to --sort:
  type       one section per subject type
  level      levels, then types within each level
  available  next review time, then types
  stage      SRS stage, then types

Collapsed sections are remembered between runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := search.Parameters{
				MinLevel:  minLevel,
				MaxLevel:  maxLevel,
				StageTags: stages,
				Order:     order,
			}
			if len(args) == 1 {
				p.Text = args[0]
			}
			for _, t := range types {
				typ, err := domain.ParseSubjectType(t)
				if err != nil {
					return err
				}
				p.Types = append(p.Types, typ)
			}
			if err := p.Validate(); err != nil {
				return err
			}

			var selectIDs func(*search.Results) []int64
			if ids != "" {
				var ok bool
				if selectIDs, ok = idSelections[ids]; !ok {
					return fmt.Errorf("unknown --ids value %q (want all, resurrectable or burnable)", ids)
				}
			}

			if selectIDs == nil && app.interactive() {
				_, err := app.run(newSearchModel(app, p, showForm || app.ShowForm))
				return err
			}

			results, err := loadResults(cmd.Context(), app, p)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if selectIDs != nil {
				for _, id := range selectIDs(results) {
					fmt.Fprintln(out, id)
				}
				return nil
			}
			if results.NumSubjects() == 0 {
				fmt.Fprintln(out, "No subjects match.")
				return nil
			}
			fmt.Fprintf(out, "%s · %s\n", english.Plural(results.NumSubjects(), "subject", "subjects"), results.Parameters().Describe())
			return printList(out, results.List(), subjectRenderer(results.Parameters), app.Columns, app.Width)
		},
	}

	cmd.Flags().IntVar(&minLevel, "min-level", 0, "Lowest level to include")
	cmd.Flags().IntVar(&maxLevel, "max-level", 0, "Highest level to include")
	cmd.Flags().StringSliceVar(&types, "type", nil, "Subject types (radical, kanji, vocabulary)")
	cmd.Flags().StringSliceVar(&stages, "stage", nil, "SRS stage tags (locked, initial, apprentice, guru, master, enlightened, burned)")
	cmd.Flags().Var(&order, "sort", "Sort order: type, level, available or stage")
	cmd.Flags().StringVar(&ids, "ids", "", "Print subject IDs instead of the list: all, resurrectable or burnable")
	cmd.Flags().BoolVar(&showForm, "form", false, "Show the search form row (interactive only)")

	return cmd
}

// loadResults runs the search with the persisted collapsed tags applied.
func loadResults(ctx context.Context, app *App, p search.Parameters) (*search.Results, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	view, err := app.Search.LoadView(ctx, p)
	if err != nil {
		return nil, err
	}
	results := search.NewResults(view.Parameters, app.logger())
	results.SetCollapsedTags(view.CollapsedTags)
	if err := results.SetResult(view.Subjects, view.SearchTime); err != nil {
		return nil, err
	}
	return results, nil
}
