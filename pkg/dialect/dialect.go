// Package dialect describes the database flavors the shell can connect
// to: keyword and built-in function vocabularies, identifier quoting, the
// database/sql driver binding, and the metadata-discovery queries that
// populate the completion catalog. Concrete dialect implementations live
// under pkg/dialects and register themselves in their init functions.
package dialect

// Category classifies built-in function vocabularies. The completer
// merges all categories into one flat function vocabulary; the split
// exists so dialects can be assembled from reusable groups.
type Category string

// Built-in function categories.
const (
	CategoryString     Category = "string"
	CategoryNumeric    Category = "numeric"
	CategoryDate       Category = "date"
	CategoryConversion Category = "conversion"
	CategoryAnalytic   Category = "analytic"
	CategoryMisc       Category = "miscellaneous"
)

// categoryOrder fixes the order FunctionGroups emits categories in.
var categoryOrder = []Category{
	CategoryString,
	CategoryNumeric,
	CategoryDate,
	CategoryConversion,
	CategoryAnalytic,
	CategoryMisc,
}

// Queries holds the metadata-discovery SQL for a dialect. The per-schema
// queries (Tables, Views, TableColumns, ViewColumns, Functions) take the
// schema name as their single bind parameter, written in the driver's
// placeholder style. An empty query marks the capability unsupported and
// is skipped during refresh.
type Queries struct {
	// CurrentSchema returns one row with the session's default schema.
	CurrentSchema string
	// Databases, Schemas and Users enumerate one name per row, no
	// parameters.
	Databases string
	Schemas   string
	Users     string
	// Tables and Views enumerate relation names under the bound schema.
	Tables string
	Views  string
	// TableColumns and ViewColumns enumerate (relation, column) pairs
	// under the bound schema. They must only cover relations their
	// corresponding relation query returns, since column discovery for an
	// unknown relation is a contract violation.
	TableColumns string
	ViewColumns  string
	// Functions enumerates function names under the bound schema.
	Functions string
}

// Dialect describes one supported database flavor.
type Dialect struct {
	Name string

	// Driver is the database/sql driver name to open connections with.
	// The dialect package links the driver in; empty means the dialect is
	// vocabulary-only.
	Driver string

	// Quote is the identifier quote character.
	Quote rune

	// Keywords is the keyword vocabulary; multi-word phrases allowed.
	Keywords []string

	// Functions are the built-in function vocabularies by category.
	Functions map[Category][]string

	// ShowItems are the arguments of the dialect's SHOW command, if it
	// has one.
	ShowItems []string

	Queries Queries
}

// FunctionGroups returns the function vocabularies in a stable category
// order, shaped for the completer's construction options.
func (d *Dialect) FunctionGroups() [][]string {
	groups := make([][]string, 0, len(d.Functions))
	for _, cat := range categoryOrder {
		if fns := d.Functions[cat]; len(fns) > 0 {
			groups = append(groups, fns)
		}
	}
	return groups
}
