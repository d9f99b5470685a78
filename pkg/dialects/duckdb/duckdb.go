// Package duckdb registers the DuckDB dialect, backed by the go-duckdb
// driver and duckdb_* catalog discovery.
package duckdb

import (
	"github.com/sqlsh-dev/sqlsh/pkg/dialect"

	// Registers the "duckdb" database/sql driver.
	_ "github.com/marcboeker/go-duckdb"
)

var keywords = dialect.MergeKeywords(
	"ATTACH",
	"COPY",
	"CREATE MACRO",
	"CREATE SEQUENCE",
	"DESCRIBE",
	"DETACH",
	"EXCLUDE",
	"EXPORT DATABASE",
	"ILIKE",
	"IMPORT DATABASE",
	"INSTALL",
	"LOAD",
	"PIVOT",
	"POSITIONAL JOIN",
	"QUALIFY",
	"REPLACE",
	"SUMMARIZE",
	"UNPIVOT",
	"USE",
)

var functions = map[dialect.Category][]string{
	dialect.CategoryString: {
		"CONCAT", "CONCAT_WS", "FORMAT", "LEFT", "LENGTH", "LOWER",
		"LPAD", "LTRIM", "REGEXP_EXTRACT", "REGEXP_MATCHES",
		"REGEXP_REPLACE", "REPEAT", "REPLACE", "REVERSE", "RIGHT",
		"RPAD", "RTRIM", "SPLIT_PART", "STRING_SPLIT", "SUBSTRING",
		"TRIM", "UPPER",
	},
	dialect.CategoryNumeric: {
		"ABS", "AVG", "CEIL", "COUNT", "FLOOR", "GREATEST", "LEAST",
		"LN", "LOG", "MAX", "MEDIAN", "MIN", "MOD", "POWER", "QUANTILE",
		"RANDOM", "ROUND", "SIGN", "SQRT", "STDDEV", "SUM", "TRUNC",
	},
	dialect.CategoryDate: {
		"AGE", "CURRENT_DATE", "CURRENT_TIMESTAMP", "DATE_DIFF",
		"DATE_PART", "DATE_TRUNC", "DAYNAME", "EPOCH", "MAKE_DATE",
		"NOW", "STRFTIME", "STRPTIME", "TODAY",
	},
	dialect.CategoryConversion: {
		"CAST", "TRY_CAST",
	},
	dialect.CategoryAnalytic: {
		"CUME_DIST", "DENSE_RANK", "FIRST_VALUE", "LAG", "LAST_VALUE",
		"LEAD", "NTH_VALUE", "NTILE", "PERCENT_RANK", "RANK",
		"ROW_NUMBER",
	},
	dialect.CategoryMisc: {
		"COALESCE", "CURRENT_SCHEMA", "IFNULL", "LIST_VALUE", "NULLIF",
		"STRUCT_PACK", "TYPEOF", "UUID", "VERSION",
	},
}

func init() {
	dialect.Register(&dialect.Dialect{
		Name:      "duckdb",
		Driver:    "duckdb",
		Quote:     '"',
		Keywords:  keywords,
		Functions: functions,
		Queries: dialect.Queries{
			CurrentSchema: `SELECT current_schema()`,
			Databases:     `SELECT database_name FROM duckdb_databases() ORDER BY database_name`,
			Schemas:       `SELECT schema_name FROM information_schema.schemata ORDER BY schema_name`,
			Tables: `SELECT table_name FROM information_schema.tables
WHERE table_schema = ? AND table_type = 'BASE TABLE'
ORDER BY table_name`,
			Views: `SELECT table_name FROM information_schema.tables
WHERE table_schema = ? AND table_type = 'VIEW'
ORDER BY table_name`,
			TableColumns: `SELECT c.table_name, c.column_name
FROM information_schema.columns c
JOIN information_schema.tables t
  ON t.table_schema = c.table_schema AND t.table_name = c.table_name
WHERE c.table_schema = ? AND t.table_type = 'BASE TABLE'
ORDER BY c.table_name, c.ordinal_position`,
			ViewColumns: `SELECT c.table_name, c.column_name
FROM information_schema.columns c
JOIN information_schema.tables t
  ON t.table_schema = c.table_schema AND t.table_name = c.table_name
WHERE c.table_schema = ? AND t.table_type = 'VIEW'
ORDER BY c.table_name, c.ordinal_position`,
			Functions: `SELECT DISTINCT function_name FROM duckdb_functions()
WHERE schema_name = ?
ORDER BY function_name`,
		},
	})
}
