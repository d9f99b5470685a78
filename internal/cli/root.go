// Package cli provides the sqlsh command-line interface.
package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sqlsh-dev/sqlsh/internal/config"
	"github.com/sqlsh-dev/sqlsh/internal/shell"
	"github.com/sqlsh-dev/sqlsh/pkg/dialect"

	// Register the built-in dialects and their drivers.
	_ "github.com/sqlsh-dev/sqlsh/pkg/dialects/duckdb"
	_ "github.com/sqlsh-dev/sqlsh/pkg/dialects/oracle"
	_ "github.com/sqlsh-dev/sqlsh/pkg/dialects/postgres"
	_ "github.com/sqlsh-dev/sqlsh/pkg/dialects/sqlite"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

var (
	cfgFile     string
	dsnFlag     string
	dialectFlag string
	cfg         *config.Config
)

// NewRootCmd creates the root command. With no subcommand it opens an
// interactive shell against the named connection.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sqlsh [connection]",
		Short: "An interactive SQL shell with context-aware completion",
		Long: `sqlsh is an interactive SQL shell for Oracle, PostgreSQL, SQLite and
DuckDB with context-aware tab completion: it learns the connected
database's schemas, tables, views, columns and functions and offers
only the candidates that fit the statement being typed.

Connections are defined in sqlsh.yaml (or ~/.config/sqlsh/sqlsh.yaml)
and picked by name, or given directly with --dialect and --dsn.`,
		Args:    cobra.MaximumNArgs(1),
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			return cfg.Validate()
		},
		RunE:          runShell,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./sqlsh.yaml)")
	rootCmd.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "Connect with this DSN instead of a named connection")
	rootCmd.PersistentFlags().StringVar(&dialectFlag, "dialect", "", "Dialect for --dsn (oracle|postgres|sqlite|duckdb)")
	rootCmd.PersistentFlags().StringP("output-format", "o", "", "Result format (table|csv|json|markdown)")
	rootCmd.PersistentFlags().String("prompt", "", "Prompt template (%d expands to the current schema)")
	rootCmd.PersistentFlags().Bool("smart-completion", true, "Context-aware completion (disable for plain prefix matching)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose logging")

	_ = rootCmd.RegisterFlagCompletionFunc("output-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return dialect.List(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newDialectsCommand())

	return rootCmd
}

// resolveTarget picks the dialect and DSN from flags or the config.
func resolveTarget(args []string) (string, string, error) {
	if dsnFlag != "" {
		if dialectFlag == "" {
			return "", "", errors.New("--dsn requires --dialect")
		}
		return dialectFlag, dsnFlag, nil
	}

	name := cfg.Connection
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		return "", "", errors.New("no connection given: name one on the command line, set a default in the config, or pass --dialect and --dsn")
	}
	conn, ok := cfg.Connections[name]
	if !ok {
		return "", "", fmt.Errorf("connection %q is not defined in the config", name)
	}
	return conn.Dialect, conn.DSN, nil
}

func runShell(cmd *cobra.Command, args []string) error {
	dialectName, dsn, err := resolveTarget(args)
	if err != nil {
		return err
	}
	d, ok := dialect.Get(dialectName)
	if !ok {
		return fmt.Errorf("%w: %s (known: %s)",
			dialect.ErrUnknownDialect, dialectName, strings.Join(dialect.List(), ", "))
	}

	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx := cmd.Context()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	sh := shell.New(shell.Options{
		DB:      db,
		Dialect: d,
		Config:  cfg,
		Logger:  logger,
	})
	return sh.Run(ctx)
}
