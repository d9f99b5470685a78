// Package postgres registers the PostgreSQL dialect, backed by the pgx
// stdlib driver and information_schema/pg_catalog discovery.
package postgres

import (
	"github.com/sqlsh-dev/sqlsh/pkg/dialect"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
)

var keywords = dialect.MergeKeywords(
	"CREATE EXTENSION",
	"CREATE MATERIALIZED VIEW",
	"CREATE SCHEMA",
	"CREATE SEQUENCE",
	"ILIKE",
	"LATERAL",
	"OFFSET",
	"ON CONFLICT",
	"RETURNING",
	"TABLESAMPLE",
	"TRUNCATE",
	"VACUUM",
)

var functions = map[dialect.Category][]string{
	dialect.CategoryString: {
		"ASCII", "BTRIM", "CHAR_LENGTH", "CHR", "CONCAT", "CONCAT_WS",
		"INITCAP", "LEFT", "LENGTH", "LOWER", "LPAD", "LTRIM", "MD5",
		"POSITION", "REGEXP_MATCH", "REGEXP_REPLACE", "REPEAT", "REPLACE",
		"REVERSE", "RIGHT", "RPAD", "RTRIM", "SPLIT_PART", "SUBSTRING",
		"TRANSLATE", "TRIM", "UPPER",
	},
	dialect.CategoryNumeric: {
		"ABS", "AVG", "CEIL", "CEILING", "COUNT", "DIV", "EXP", "FLOOR",
		"GREATEST", "LEAST", "LN", "LOG", "MAX", "MIN", "MOD", "PI",
		"POWER", "RANDOM", "ROUND", "SIGN", "SQRT", "SUM", "TRUNC",
		"WIDTH_BUCKET",
	},
	dialect.CategoryDate: {
		"AGE", "CLOCK_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME",
		"CURRENT_TIMESTAMP", "DATE_PART", "DATE_TRUNC", "EXTRACT",
		"LOCALTIME", "LOCALTIMESTAMP", "MAKE_DATE", "MAKE_INTERVAL",
		"NOW", "STATEMENT_TIMESTAMP",
	},
	dialect.CategoryConversion: {
		"CAST", "TO_CHAR", "TO_DATE", "TO_NUMBER", "TO_TIMESTAMP",
	},
	dialect.CategoryAnalytic: {
		"CUME_DIST", "DENSE_RANK", "FIRST_VALUE", "LAG", "LAST_VALUE",
		"LEAD", "NTH_VALUE", "NTILE", "PERCENT_RANK", "RANK",
		"ROW_NUMBER", "STDDEV", "VARIANCE",
	},
	dialect.CategoryMisc: {
		"COALESCE", "CURRENT_SCHEMA", "CURRENT_USER", "GEN_RANDOM_UUID",
		"NULLIF", "PG_TYPEOF", "SESSION_USER", "VERSION",
	},
}

func init() {
	dialect.Register(&dialect.Dialect{
		Name:      "postgres",
		Driver:    "pgx",
		Quote:     '"',
		Keywords:  keywords,
		Functions: functions,
		Queries: dialect.Queries{
			CurrentSchema: `SELECT current_schema()`,
			Databases:     `SELECT datname FROM pg_catalog.pg_database WHERE NOT datistemplate ORDER BY datname`,
			Schemas:       `SELECT schema_name FROM information_schema.schemata ORDER BY schema_name`,
			Users:         `SELECT usename FROM pg_catalog.pg_user ORDER BY usename`,
			Tables: `SELECT table_name FROM information_schema.tables
WHERE table_schema = $1 AND table_type = 'BASE TABLE'
ORDER BY table_name`,
			Views: `SELECT table_name FROM information_schema.tables
WHERE table_schema = $1 AND table_type = 'VIEW'
ORDER BY table_name`,
			TableColumns: `SELECT c.table_name, c.column_name
FROM information_schema.columns c
JOIN information_schema.tables t
  ON t.table_schema = c.table_schema AND t.table_name = c.table_name
WHERE c.table_schema = $1 AND t.table_type = 'BASE TABLE'
ORDER BY c.table_name, c.ordinal_position`,
			ViewColumns: `SELECT c.table_name, c.column_name
FROM information_schema.columns c
JOIN information_schema.tables t
  ON t.table_schema = c.table_schema AND t.table_name = c.table_name
WHERE c.table_schema = $1 AND t.table_type = 'VIEW'
ORDER BY c.table_name, c.ordinal_position`,
			Functions: `SELECT DISTINCT routine_name FROM information_schema.routines
WHERE routine_schema = $1
ORDER BY routine_name`,
		},
	})
}
