package cli

import (
	"fmt"

	"github.com/alexanderramin/kioku/internal/sessionlog"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the current session's items and recent events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if clear {
				if err := app.SessionLog.Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, "Session log cleared.")
				return nil
			}

			if app.interactive() {
				_, err := app.run(newLogModel(app))
				return err
			}

			view, err := app.SessionLog.Load(ctx)
			if err != nil {
				return err
			}
			log := sessionlog.NewLog(app.logger()).WithClock(app.now)
			log.List().SetCollapsedTags(view.CollapsedTags)
			log.SetEvents(view.Events)
			log.Initialize(view.Items)
			if log.List().RowCount() == 0 {
				fmt.Fprintln(out, "No session in progress.")
				return nil
			}
			return printList(out, log.List(), logRenderer(app.now), app.Columns, app.Width)
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "End the session: delete its items and events")

	return cmd
}
