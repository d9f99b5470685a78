// Package metadata populates the completion catalog from a live database
// connection using the dialect's discovery queries. Population is
// best-effort: a failing query is logged and skipped so a flaky
// connection degrades completion instead of killing the shell. Discovery
// runs in dependency order (schemas, then relations, then columns, then
// functions) because the completer treats columns for an unknown
// relation as a contract violation.
package metadata

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/sqlsh-dev/sqlsh/pkg/completer"
	"github.com/sqlsh-dev/sqlsh/pkg/dialect"
)

// Refresher wires one connection, its dialect, and the completer it
// feeds. The caller must not run Refresh concurrently with completion
// requests; the shell serializes the two.
type Refresher struct {
	db     *sql.DB
	d      *dialect.Dialect
	comp   *completer.Completer
	logger *slog.Logger
}

// NewRefresher builds a Refresher. A nil logger falls back to the
// default.
func NewRefresher(db *sql.DB, d *dialect.Dialect, comp *completer.Completer, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{db: db, d: d, comp: comp, logger: logger}
}

// Refresh wipes the completer's session state and rebuilds it from the
// connection. Environment failures degrade to partial metadata and a nil
// return; the error return is reserved for context cancellation and for
// discovery-ordering violations, which indicate a dialect bug (its
// column query covering relations its relation query does not).
func (r *Refresher) Refresh(ctx context.Context) error {
	r.comp.Reset()

	if name, ok := r.queryOne(ctx, r.d.Queries.CurrentSchema); ok {
		r.comp.SetDatabase(name)
	}
	r.comp.ExtendDatabases(r.queryList(ctx, "databases", r.d.Queries.Databases))
	r.comp.ExtendUsers(r.queryList(ctx, "users", r.d.Queries.Users))
	if len(r.d.ShowItems) > 0 {
		r.comp.ExtendShowItems(r.d.ShowItems)
	}

	schemas := r.queryList(ctx, "schemas", r.d.Queries.Schemas)
	if len(schemas) == 0 && r.comp.Database() != "" {
		// No schema enumeration; at least make the default schema known.
		schemas = []string{r.comp.Database()}
	}
	r.comp.ExtendSchemas(schemas)

	for _, schema := range schemas {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.extendRelations(ctx, r.d.Queries.Tables, completer.KindTable, schema)
		r.extendRelations(ctx, r.d.Queries.Views, completer.KindView, schema)
		if err := r.extendColumns(ctx, r.d.Queries.TableColumns, completer.KindTable, schema); err != nil {
			return err
		}
		if err := r.extendColumns(ctx, r.d.Queries.ViewColumns, completer.KindView, schema); err != nil {
			return err
		}
		r.extendFunctions(ctx, schema)
	}
	return nil
}

// queryOne runs a single-value query; a failure or empty result reports
// not-ok rather than an error.
func (r *Refresher) queryOne(ctx context.Context, query string) (string, bool) {
	if query == "" {
		return "", false
	}
	var value string
	if err := r.db.QueryRowContext(ctx, query).Scan(&value); err != nil {
		r.logger.Warn("discovery query failed", "query", "current schema", "error", err)
		return "", false
	}
	return value, true
}

// queryList drains a one-column query into a slice, best-effort.
func (r *Refresher) queryList(ctx context.Context, what, query string) []string {
	if query == "" {
		return nil
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Warn("discovery query failed", "query", what, "error", err)
		return nil
	}
	defer func() { _ = rows.Close() }()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			r.logger.Warn("discovery scan failed", "query", what, "error", err)
			return values
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		r.logger.Warn("discovery enumeration failed", "query", what, "applied", len(values), "error", err)
	}
	return values
}

func (r *Refresher) extendRelations(ctx context.Context, query string, kind completer.ObjectKind, schema string) {
	if query == "" {
		return
	}
	rows, err := r.db.QueryContext(ctx, query, schema)
	if err != nil {
		r.logger.Warn("discovery query failed", "kind", kind.String(), "schema", schema, "error", err)
		return
	}
	defer func() { _ = rows.Close() }()
	// Enumeration failures are contained and logged by the completer.
	r.comp.ExtendRelations(rows, kind, schema)
}

func (r *Refresher) extendColumns(ctx context.Context, query string, kind completer.ObjectKind, schema string) error {
	if query == "" {
		return nil
	}
	rows, err := r.db.QueryContext(ctx, query, schema)
	if err != nil {
		r.logger.Warn("discovery query failed", "kind", kind.String(), "schema", schema, "error", err)
		return nil
	}
	defer func() { _ = rows.Close() }()

	if _, err := r.comp.ExtendColumns(rows, kind, schema); err != nil {
		return fmt.Errorf("%s dialect column discovery out of order: %w", r.d.Name, err)
	}
	return nil
}

func (r *Refresher) extendFunctions(ctx context.Context, schema string) {
	query := r.d.Queries.Functions
	if query == "" {
		return
	}
	rows, err := r.db.QueryContext(ctx, query, schema)
	if err != nil {
		r.logger.Warn("discovery query failed", "kind", "function", "schema", schema, "error", err)
		return
	}
	defer func() { _ = rows.Close() }()
	r.comp.ExtendFunctions(rows, schema)
}
