package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"cat-lifecycle/internal/adapters/storage/migrations"
	"cat-lifecycle/internal/adapters/storage/postgres"
	"cat-lifecycle/internal/adapters/storage/sqlite"
	"cat-lifecycle/internal/platform/config"
	"cat-lifecycle/internal/platform/logger"
	"cat-lifecycle/internal/platform/metrics"
	"cat-lifecycle/internal/store"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catlogctl",
	Short: "Admin tool for the cat lifecycle tracker",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = "config.toml"
		}
		if err := config.Init(path, config.Default()); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		fmt.Printf("Configuration initialized at %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		m := &config.Manager{}
		return m.Write(cmd.OutOrStdout(), cfg)
	},
}

// migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the SQL schema (postgres and sqlite backends)",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, d, err := openSQL()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrations.MigrateUp(db, d); err != nil {
			return err
		}
		st, err := migrations.CurrentStatus(db, d)
		if err != nil {
			return err
		}
		fmt.Printf("Schema at version %d\n", st.Version)
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, d, err := openSQL()
		if err != nil {
			return err
		}
		defer db.Close()

		st, err := migrations.CurrentStatus(db, d)
		if err != nil {
			return err
		}
		fmt.Printf("Version: %d\nLatest:  %d\nDirty:   %t\n", st.Version, st.Latest, st.Dirty)
		if !st.UpToDate() {
			fmt.Println("Run `catlogctl migrate up` to apply pending migrations.")
		}
		return nil
	},
}

// demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Print the demo dashboard as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")

		now := time.Now()
		if date != "" {
			t, err := time.ParseInLocation(time.DateOnly, date, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}
			now = t.Add(12 * time.Hour)
		}

		s := store.New(store.Options{
			Logger:  logger.NewFromEnv(),
			Metrics: metrics.Store{},
			Now:     func() time.Time { return now },
		})
		if err := s.LoginAsDemo(context.Background()); err != nil {
			return fmt.Errorf("demo login: %w", err)
		}

		out := struct {
			Dashboard *store.Dashboard `json:"dashboard"`
			Report    *store.Report    `json:"report"`
		}{s.Dashboard(now), s.Report(now)}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

// openSQL abre la base del backend configurado.
func openSQL() (*sql.DB, migrations.Dialect, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, "", err
	}
	switch cfg.Backend.Type {
	case "postgres":
		db, err := postgres.Open(cfg.Backend.PostgresDSN)
		if err != nil {
			return nil, "", fmt.Errorf("open postgres: %w", err)
		}
		return db, migrations.Postgres, nil
	case "sqlite":
		db, err := sqlite.OpenConnection(cfg.Backend.SQLitePath)
		if err != nil {
			return nil, "", err
		}
		return db, migrations.SQLite, nil
	default:
		return nil, "", fmt.Errorf("backend %q has no SQL schema", cfg.Backend.Type)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CATLOG_CONFIG"), "path to config.toml")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)

	demoCmd.Flags().String("date", "", "Render as of this day (YYYY-MM-DD)")
	rootCmd.AddCommand(demoCmd)
}
