package completer

import (
	"fmt"
	"strings"
)

// Rows is the row-iteration surface the extension operations consume.
// *sql.Rows satisfies it. The source is lazy and may fail mid-iteration
// (a dropped connection, typically); the engine contains such failures
// instead of propagating them.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// ExtendResult reports how much of a lazy enumeration was applied before
// it ended or failed. Err is the enumeration error, if any; entries
// applied before the failure stay applied and are not rolled back.
type ExtendResult struct {
	Applied int
	Err     error
}

// ExtendRelations registers the relations enumerated by rows (one name
// column per row) under schema as tables or views. Relations naming an
// unregistered schema are logged and skipped without aborting the batch.
// Enumeration failure degrades to the entries read so far; it never
// crashes the shell, which treats metadata population as best-effort.
func (c *Completer) ExtendRelations(rows Rows, kind ObjectKind, schema string) ExtendResult {
	var res ExtendResult
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			res.Err = fmt.Errorf("scanning %s name: %w", kind, err)
			break
		}
		if err := c.catalog.AddRelation(kind, schema, name); err != nil {
			c.logger.Warn("relation listed in unrecognized schema",
				"kind", kind.String(), "schema", strings.ToUpper(schema), "relation", name)
			continue
		}
		c.all[name] = struct{}{}
		res.Applied++
	}
	if res.Err == nil && rows.Err() != nil {
		res.Err = fmt.Errorf("enumerating %ss: %w", kind, rows.Err())
	}
	if res.Err != nil {
		c.logger.Error("relation discovery degraded",
			"kind", kind.String(), "schema", strings.ToUpper(schema),
			"applied", res.Applied, "error", res.Err)
	}
	return res
}

// ExtendColumns appends the (relation, column) pairs enumerated by rows
// to relations registered under schema. Enumeration failure is contained
// like in ExtendRelations. A pair naming a relation that was never
// registered is different: relation discovery must run first, so that is
// a caller-ordering bug and is returned as an error rather than hidden.
func (c *Completer) ExtendColumns(rows Rows, kind ObjectKind, schema string) (ExtendResult, error) {
	var res ExtendResult
	for rows.Next() {
		var relation, column string
		if err := rows.Scan(&relation, &column); err != nil {
			res.Err = fmt.Errorf("scanning %s column: %w", kind, err)
			break
		}
		if err := c.catalog.AppendColumn(kind, schema, relation, column); err != nil {
			return res, fmt.Errorf("column %q of %s %s.%s: %w",
				column, kind, strings.ToUpper(schema), relation, err)
		}
		c.all[column] = struct{}{}
		res.Applied++
	}
	if res.Err == nil && rows.Err() != nil {
		res.Err = fmt.Errorf("enumerating %s columns: %w", kind, rows.Err())
	}
	if res.Err != nil {
		c.logger.Error("column discovery degraded",
			"kind", kind.String(), "schema", strings.ToUpper(schema),
			"applied", res.Applied, "error", res.Err)
	}
	return res, nil
}

// ExtendFunctions registers the functions enumerated by rows (one name
// column per row) under schema. Only presence is recorded; signatures are
// not tracked. Same containment policy as ExtendRelations.
func (c *Completer) ExtendFunctions(rows Rows, schema string) ExtendResult {
	return c.ExtendRelations(rows, KindFunction, schema)
}
