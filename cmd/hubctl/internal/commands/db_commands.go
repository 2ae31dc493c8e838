package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/hubverse/hub-services/internal/infrastructure/maintenance"
	"github.com/hubverse/hub-services/internal/infrastructure/persistence"
	"github.com/hubverse/hub-services/internal/pkg/config"
	"github.com/hubverse/hub-services/internal/pkg/logger"
	"github.com/hubverse/hub-services/internal/server"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

// DBCommandHandler runs maintenance tasks against a service database.
type DBCommandHandler struct {
	logger logger.Logger
}

// NewDBCommandHandler creates a DBCommandHandler.
func NewDBCommandHandler(logger logger.Logger) *DBCommandHandler {
	return &DBCommandHandler{logger: logger}
}

// resolveDSN prefers the --dsn flag over DATABASE_URL.
func resolveDSN(cmd *cobra.Command) (string, error) {
	if err := loadDotEnv(); err != nil {
		return "", err
	}
	dsn, _ := cmd.Flags().GetString("dsn")
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		return "", fmt.Errorf("a postgres dsn is required (--dsn or DATABASE_URL)")
	}
	return dsn, nil
}

func (commandHandler *DBCommandHandler) withPool(cmd *cobra.Command, fn func(ctx context.Context, pool *pgxpool.Pool) error) error {
	dsn, err := resolveDSN(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pool, err := maintenance.NewPool(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, pool)
}

// RLSStatusCmd lists the tables of a schema with their row level security flags.
func (commandHandler *DBCommandHandler) RLSStatusCmd(cmd *cobra.Command, _ []string) error {
	schema, _ := cmd.Flags().GetString("schema")
	require, _ := cmd.Flags().GetBool("require")
	asJSON, _ := cmd.Flags().GetBool("json")

	var tables []maintenance.TableRLS
	err := commandHandler.withPool(cmd, func(ctx context.Context, pool *pgxpool.Pool) error {
		var err error
		tables, err = maintenance.RLSStatus(ctx, pool, schema)
		return err
	})
	if err != nil {
		return err
	}

	if asJSON {
		if err := writeJSON(cmd, tables); err != nil {
			return err
		}
	} else if err := writeRLSTable(cmd, tables); err != nil {
		return err
	}

	missing := maintenance.MissingRLS(tables)
	if len(missing) == 0 {
		commandHandler.logger.Info("All ", len(tables), " tables in schema ", schema, " have row level security enabled")
		return nil
	}
	commandHandler.logger.Warn(len(missing), " tables in schema ", schema, " lack row level security")
	if require {
		return fmt.Errorf("row level security disabled on: %s", strings.Join(missing, ", "))
	}
	return nil
}

func writeRLSTable(cmd *cobra.Command, tables []maintenance.TableRLS) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tRLS\tFORCED")
	for _, t := range tables {
		fmt.Fprintf(w, "%s\t%t\t%t\n", t.Name, t.Enabled, t.Forced)
	}
	return w.Flush()
}

// CleanupMigrationsCmd removes failed rows from the migration bookkeeping table.
func (commandHandler *DBCommandHandler) CleanupMigrationsCmd(cmd *cobra.Command, _ []string) error {
	table, _ := cmd.Flags().GetString("table")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var result *maintenance.CleanupResult
	err := commandHandler.withPool(cmd, func(ctx context.Context, pool *pgxpool.Pool) error {
		var err error
		result, err = maintenance.CleanupMigrations(ctx, pool, table, dryRun)
		return err
	})
	if err != nil {
		return err
	}

	if result.DryRun {
		commandHandler.logger.Info("Dry run: ", result.Matched, " failed migrations in ", result.Table)
	} else {
		commandHandler.logger.Info("Deleted ", result.Deleted, " failed migrations from ", result.Table)
	}
	return writeJSON(cmd, result)
}

// SeedCmd inserts demo users and posts.
func (commandHandler *DBCommandHandler) SeedCmd(cmd *cobra.Command, _ []string) error {
	users, _ := cmd.Flags().GetInt("users")
	posts, _ := cmd.Flags().GetInt("posts")
	batchSize, _ := cmd.Flags().GetInt("batch-size")

	if users < 0 || posts < 0 {
		return fmt.Errorf("--users and --posts must not be negative")
	}

	var result *maintenance.SeedResult
	err := commandHandler.withPool(cmd, func(ctx context.Context, pool *pgxpool.Pool) error {
		var err error
		result, err = maintenance.Seed(ctx, pool, maintenance.SeedOptions{
			Users:     users,
			Posts:     posts,
			BatchSize: batchSize,
		})
		return err
	})
	if err != nil {
		return err
	}

	commandHandler.logger.Info("Seeded ", result.Users, " users and ", result.Posts, " posts; demo password is ", maintenance.DemoPassword)
	return writeJSON(cmd, result)
}

// MigrateCmd creates or updates the tables of one service.
// --dsn targets a postgres database directly instead of the service config.
func (commandHandler *DBCommandHandler) MigrateCmd(cmd *cobra.Command, _ []string) error {
	service, _ := cmd.Flags().GetString("service")
	configPath, _ := cmd.Flags().GetString("config")
	dsn, _ := cmd.Flags().GetString("dsn")

	if _, err := persistence.ModelsFor(service); err != nil {
		return err
	}

	var settings config.DatabaseSettings
	if dsn != "" {
		settings = config.DatabaseSettings{Type: config.PostgresDbType, DSN: dsn}
		if err := settings.Validate(); err != nil {
			return err
		}
	} else {
		if configPath == "" {
			configPath = server.ConfigPath(service)
		}
		cfg, err := config.Load(configPath, service)
		if err != nil {
			return fmt.Errorf("failed to load %s config: %w", service, err)
		}
		settings = cfg.Database
	}

	db, err := persistence.NewDBConnection(settings)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := persistence.CloseDB(db); err != nil {
			commandHandler.logger.Warn("Failed to close database: ", err)
		}
	}()

	if err := persistence.Migrate(db, service); err != nil {
		return err
	}
	commandHandler.logger.Info("Migrated ", service, " schema on ", settings.Type)
	return nil
}

// InitDBCommands registers the db command group.
func InitDBCommands(rootCmd *cobra.Command, logger logger.Logger) error {
	handler := NewDBCommandHandler(logger)

	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database maintenance",
	}

	var rlsStatusCmd = &cobra.Command{
		Use:   "rls-status",
		Short: "Report row level security per table",
		Args:  cobra.NoArgs,
		RunE:  handler.RLSStatusCmd,
	}
	rlsStatusCmd.Flags().String("dsn", "", "PostgreSQL connection string (defaults to DATABASE_URL)")
	rlsStatusCmd.Flags().String("schema", "public", "Schema to inspect")
	rlsStatusCmd.Flags().Bool("require", false, "Exit non-zero when a table lacks row level security")
	rlsStatusCmd.Flags().Bool("json", false, "Print JSON instead of a table")
	dbCmd.AddCommand(rlsStatusCmd)

	var cleanupMigrationsCmd = &cobra.Command{
		Use:   "cleanup-migrations",
		Short: "Delete failed and rolled back migration records",
		Args:  cobra.NoArgs,
		RunE:  handler.CleanupMigrationsCmd,
	}
	cleanupMigrationsCmd.Flags().String("dsn", "", "PostgreSQL connection string (defaults to DATABASE_URL)")
	cleanupMigrationsCmd.Flags().String("table", maintenance.DefaultMigrationsTable, "Migration bookkeeping table")
	cleanupMigrationsCmd.Flags().Bool("dry-run", false, "Only count the rows that would be deleted")
	dbCmd.AddCommand(cleanupMigrationsCmd)

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the tables of a service",
		Args:  cobra.NoArgs,
		RunE:  handler.MigrateCmd,
	}
	migrateCmd.Flags().String("service", "", "Service whose tables to migrate (community, marketplace, academy or business)")
	migrateCmd.Flags().String("config", "", "Service config file (defaults to CONFIG_PATH or configs/<service>-api.yaml)")
	migrateCmd.Flags().String("dsn", "", "Migrate this PostgreSQL database instead of the configured one")
	_ = migrateCmd.MarkFlagRequired("service")
	dbCmd.AddCommand(migrateCmd)

	var seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Insert demo users and posts",
		Args:  cobra.NoArgs,
		RunE:  handler.SeedCmd,
	}
	seedCmd.Flags().String("dsn", "", "PostgreSQL connection string (defaults to DATABASE_URL)")
	seedCmd.Flags().Int("users", 10, "Number of demo users")
	seedCmd.Flags().Int("posts", 50, "Number of demo posts")
	seedCmd.Flags().Int("batch-size", 500, "Rows per insert batch")
	dbCmd.AddCommand(seedCmd)

	rootCmd.AddCommand(dbCmd)
	return nil
}
