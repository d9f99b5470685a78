// Package config defines the shell configuration: saved connections,
// prompt and history settings, completion behavior, and favorite
// queries. Configuration is layered from defaults, a YAML file,
// SQLSH_-prefixed environment variables, and CLI flags, in increasing
// precedence.
package config

// Connection is one saved connection target.
type Connection struct {
	// Dialect names a registered dialect ("oracle", "postgres",
	// "sqlite", "duckdb").
	Dialect string `koanf:"dialect"`
	// DSN is passed verbatim to the dialect's database/sql driver.
	DSN string `koanf:"dsn"`
}

// Config is the root configuration structure.
type Config struct {
	// Connections maps a short name to a saved target.
	Connections map[string]Connection `koanf:"connections"`

	// Connection is the name of the connection to open when none is
	// given on the command line.
	Connection string `koanf:"connection"`

	// Prompt is the interactive prompt. The sequence %d expands to the
	// current schema.
	Prompt string `koanf:"prompt"`

	// HistoryFile stores readline history. A leading ~ expands to the
	// user's home directory.
	HistoryFile string `koanf:"history_file"`

	// SmartCompletion toggles context-aware completion. When false the
	// shell falls back to plain prefix matching over the whole
	// vocabulary.
	SmartCompletion bool `koanf:"smart_completion"`

	// OutputFormat selects the result renderer: table, csv, json or
	// markdown.
	OutputFormat string `koanf:"output_format"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	// Favorites maps a name to a saved query, runnable with \f <name>.
	Favorites map[string]string `koanf:"favorites"`
}
