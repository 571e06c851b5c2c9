package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/kioku/internal/search"
	"github.com/alexanderramin/kioku/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds the services and display settings used by CLI commands.
type App struct {
	Search     service.SearchService
	Prefs      service.PreferenceService
	SessionLog service.SessionLogService
	Import     service.ImportService

	Logger *slog.Logger

	// ConfigPath is only recorded here; the caller loads the config before
	// building the App.
	ConfigPath string

	// Columns is the grid width of list views; Width is the terminal width
	// assumed for plain output.
	Columns      int
	Width        int
	DefaultOrder search.SortOrder
	ShowForm     bool

	// IsInteractive reports whether list commands should open the TUI.
	// nil means never.
	IsInteractive func() bool

	// RunProgram runs a TUI model to completion. nil uses a full-screen
	// bubbletea program.
	RunProgram func(m tea.Model) (tea.Model, error)

	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) run(m tea.Model) (tea.Model, error) {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// NewRootCmd creates the top-level "kioku" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.Columns <= 0 {
		app.Columns = 6
	}
	if app.Width <= 0 {
		app.Width = 80
	}

	root := &cobra.Command{
		Use:          "kioku",
		Short:        "Browse search results and session activity as grouped lists",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "config file (default ~/.kioku/config.yaml)")
	root.PersistentFlags().IntVar(&app.Columns, "columns", app.Columns, "grid columns for list output")
	root.PersistentFlags().IntVar(&app.Width, "width", app.Width, "line width for non-interactive output")

	root.AddCommand(
		newSearchCmd(app),
		newLogCmd(app),
		newImportCmd(app),
		newTagsCmd(app),
	)

	return root
}
