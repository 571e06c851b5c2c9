package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/kioku/internal/cli"
	"github.com/alexanderramin/kioku/internal/config"
	"github.com/alexanderramin/kioku/internal/db"
	"github.com/alexanderramin/kioku/internal/logging"
	"github.com/alexanderramin/kioku/internal/repository"
	"github.com/alexanderramin/kioku/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configPath picks --config out of args before cobra runs, since the
// services the commands need are built from the config.
func configPath(args []string) string {
	fs := pflag.NewFlagSet("kioku", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}

func run(args []string) error {
	cfg, err := config.Load(configPath(args))
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	subjectRepo := repository.NewSQLiteSubjectRepo(database)
	itemRepo := repository.NewSQLiteSessionItemRepo(database)
	eventRepo := repository.NewSQLiteSessionEventRepo(database)
	tagRepo := repository.NewSQLiteCollapsedTagRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)

	app := &cli.App{
		Search:       service.NewSearchService(subjectRepo, tagRepo, observer),
		Prefs:        service.NewPreferenceService(tagRepo, uow, observer),
		SessionLog:   service.NewSessionLogService(itemRepo, eventRepo, subjectRepo, tagRepo, uow, observer),
		Import:       service.NewImportService(uow, observer),
		Logger:       logger,
		Columns:      cfg.Columns,
		DefaultOrder: cfg.Order(),
		ShowForm:     cfg.ShowForm,
	}

	// The TUI needs a terminal on both ends; pipes get plain output.
	app.IsInteractive = func() bool {
		in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		return in && out
	}

	rootCmd := cli.NewRootCmd(app)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
