package cli

import (
	"fmt"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import subjects and an optional session from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %s\n", english.Plural(result.SubjectCount, "subject", "subjects"))
			if result.SessionType != "" {
				fmt.Fprintf(out, "Started %s session with %s\n",
					result.SessionType.Description(),
					english.Plural(result.SessionItems, "item", "items"))
			}
			return nil
		},
	}
}
