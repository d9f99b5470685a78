// Package sqlite registers the SQLite dialect, backed by the pure-Go
// modernc driver and pragma-table discovery.
package sqlite

import (
	"github.com/sqlsh-dev/sqlsh/pkg/dialect"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

var keywords = dialect.MergeKeywords(
	"ATTACH DATABASE",
	"AUTOINCREMENT",
	"CREATE TRIGGER",
	"CREATE VIRTUAL TABLE",
	"DETACH DATABASE",
	"IF EXISTS",
	"IF NOT EXISTS",
	"INSERT OR IGNORE",
	"INSERT OR REPLACE",
	"PRAGMA",
	"REINDEX",
	"WITHOUT ROWID",
)

var functions = map[dialect.Category][]string{
	dialect.CategoryString: {
		"CHAR", "HEX", "INSTR", "LENGTH", "LIKE", "LOWER", "LTRIM",
		"PRINTF", "QUOTE", "REPLACE", "RTRIM", "SUBSTR", "TRIM",
		"UNICODE", "UPPER",
	},
	dialect.CategoryNumeric: {
		"ABS", "AVG", "COUNT", "MAX", "MIN", "RANDOM", "ROUND", "SUM",
		"TOTAL",
	},
	dialect.CategoryDate: {
		"DATE", "DATETIME", "JULIANDAY", "STRFTIME", "TIME", "UNIXEPOCH",
	},
	dialect.CategoryConversion: {
		"CAST",
	},
	dialect.CategoryAnalytic: {
		"CUME_DIST", "DENSE_RANK", "LAG", "LEAD", "NTILE", "PERCENT_RANK",
		"RANK", "ROW_NUMBER",
	},
	dialect.CategoryMisc: {
		"COALESCE", "GROUP_CONCAT", "IFNULL", "LAST_INSERT_ROWID",
		"NULLIF", "SQLITE_VERSION", "TYPEOF",
	},
}

func init() {
	dialect.Register(&dialect.Dialect{
		Name:      "sqlite",
		Driver:    "sqlite",
		Quote:     '"',
		Keywords:  keywords,
		Functions: functions,
		Queries: dialect.Queries{
			// Attached databases act as schemas ("main", "temp", ...).
			CurrentSchema: `SELECT 'main'`,
			Schemas:       `SELECT name FROM pragma_database_list ORDER BY name`,
			Tables: `SELECT name FROM pragma_table_list
WHERE schema = ? AND type IN ('table', 'virtual') AND name NOT LIKE 'sqlite_%'
ORDER BY name`,
			Views: `SELECT name FROM pragma_table_list
WHERE schema = ? AND type = 'view'
ORDER BY name`,
			TableColumns: `SELECT tl.name, ti.name
FROM pragma_table_list AS tl
JOIN pragma_table_info(tl.name, tl.schema) AS ti
WHERE tl.schema = ? AND tl.type IN ('table', 'virtual') AND tl.name NOT LIKE 'sqlite_%'
ORDER BY tl.name, ti.cid`,
			ViewColumns: `SELECT tl.name, ti.name
FROM pragma_table_list AS tl
JOIN pragma_table_info(tl.name, tl.schema) AS ti
WHERE tl.schema = ? AND tl.type = 'view'
ORDER BY tl.name, ti.cid`,
		},
	})
}
