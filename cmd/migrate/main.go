// Command migrate runs schema operations for the blog database.
package main

import (
	"fmt"
	"os"
	"strconv"

	"blogapi/internal/config"
	"blogapi/internal/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Blog API schema migrations",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(upCmd(), downCmd(), statusCmd(), autoCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func connect() (*config.Config, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, db, nil
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply pending SQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := connect()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			if cfg.DBDriver == config.DriverSQLite {
				return fmt.Errorf("sql migrations are postgres only; use 'migrate auto' for sqlite")
			}
			if err := database.RunMigrations(cmd.Context(), db); err != nil {
				return fmt.Errorf("sql migrations failed: %w", err)
			}
			fmt.Println("sql migrations applied")
			return nil
		},
	}
}

func downCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down <version>",
		Short: "Roll back one applied SQL migration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}

			_, db, err := connect()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			if err := database.RollbackMigration(cmd.Context(), db, version); err != nil {
				return fmt.Errorf("rollback failed: %w", err)
			}
			fmt.Printf("rolled back migration %d\n", version)
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the schema policy and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := connect()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			status, err := database.GetSchemaStatus(cmd.Context(), db, cfg)
			if err != nil {
				return fmt.Errorf("schema status failed: %w", err)
			}
			fmt.Printf("driver=%s mode=%s env=%s run_sql=%t run_auto=%t applied=%d pending=%d\n",
				status.Driver, status.Mode, status.Environment, status.WillRunSQL, status.WillRunAutoMigrate,
				len(status.AppliedVersions), len(status.PendingMigrations))
			for _, m := range status.PendingMigrations {
				fmt.Printf("pending: %s\n", m.String())
			}
			return nil
		},
	}
}

func autoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auto",
		Short: "Run GORM AutoMigrate for all models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := connect()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			cfg.DBSchemaMode = config.SchemaModeAuto
			if err := database.ApplySchema(cmd.Context(), db, cfg); err != nil {
				return fmt.Errorf("auto schema apply failed: %w", err)
			}
			fmt.Println("automigrations applied")
			return nil
		},
	}
}
