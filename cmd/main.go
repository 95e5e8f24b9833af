package main

import (
	"os"
	"strconv"

	"health-records-api/cmd/bootstrap"
	"health-records-api/config"
	"health-records-api/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "health-records-api",
		Short:         "Patient, clinician and medical document API",
		SilenceUsage:  true,
		SilenceErrors: false,
		// Running without a subcommand starts the server.
		RunE: runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE:  runServe,
		},
		newMigrateCmd(),
	)
	return root
}

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				return database.MigrateUp(cfg.DB)
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back migrations, one step by default",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil {
						return err
					}
					steps = n
				}

				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				return database.MigrateDown(cfg.DB, steps)
			},
		},
	)
	return migrateCmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := bootstrap.New(cfg)
	if err != nil {
		logrus.Errorf("Failed to initialize application: %v", err)
		return err
	}

	return app.Run()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Errorf("Failed to load config: %v", err)
		return nil, err
	}
	if _, err := bootstrap.SetupLogger(cfg.App.LogLevel); err != nil {
		return nil, err
	}
	logrus.Info("Configuration loaded successfully")
	return cfg, nil
}
