package completer

import "strings"

// ScopedColumns resolves the columns visible through the given relation
// references, in reference order, duplicates preserved. Each reference is
// looked up as a table first (as written, then unquoted), then as a view;
// tables and views cannot share a name, so a table hit skips the view
// lookup. References to relations the catalog does not know contribute
// nothing; half-typed queries name missing tables all the time.
//
// With sharedOnly set the result is filtered to column names appearing in
// two or more of the referenced relations, excluding the wildcard
// sentinel.
func (c *Completer) ScopedColumns(refs []TableRef, sharedOnly bool) []string {
	var columns []string
	for _, ref := range refs {
		schema := ref.Schema
		if schema == "" {
			schema = c.database
		}
		schema = strings.ToUpper(schema)

		if cols, err := c.catalog.Columns(KindTable, schema, ref.Name); err == nil {
			columns = append(columns, cols...)
			continue
		}
		if unquoted := unquoteIdent(ref.Name); unquoted != ref.Name {
			if cols, err := c.catalog.Columns(KindTable, schema, unquoted); err == nil {
				columns = append(columns, cols...)
				continue
			}
		}
		if cols, err := c.catalog.Columns(KindView, schema, ref.Name); err == nil {
			columns = append(columns, cols...)
		}
	}

	if sharedOnly {
		columns = sharedColumns(columns)
	}
	return columns
}

// sharedColumns keeps the column names that occur at least twice across
// the concatenated scope, in first-occurrence order. The wildcard
// sentinel never counts as shared.
func sharedColumns(columns []string) []string {
	counts := make(map[string]int, len(columns))
	for _, col := range columns {
		counts[col]++
	}
	var shared []string
	seen := make(map[string]struct{})
	for _, col := range columns {
		if col == Wildcard || counts[col] < 2 {
			continue
		}
		if _, ok := seen[col]; ok {
			continue
		}
		seen[col] = struct{}{}
		shared = append(shared, col)
	}
	return shared
}
