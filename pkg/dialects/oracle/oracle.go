// Package oracle registers the Oracle dialect: SQL*Plus-flavored
// vocabularies, ALL_* data dictionary discovery, and the go-ora driver.
package oracle

import (
	"github.com/sqlsh-dev/sqlsh/pkg/dialect"

	// Registers the "oracle" database/sql driver.
	_ "github.com/sijms/go-ora/v2"
)

var stringFunctions = []string{
	"ASCII", "ASCIISTR", "CHR", "COMPOSE", "CONCAT", "CONVERT",
	"DECOMPOSE", "DUMP", "INITCAP", "INSTR", "INSTR2", "INSTR4",
	"INSTRB", "INSTRC", "LENGTH", "LENGTH2", "LENGTH4", "LENGTHB",
	"LENGTHC", "LOWER", "LPAD", "LTRIM", "NCHR", "REGEXP_INSTR",
	"REGEXP_REPLACE", "REGEXP_SUBSTR", "REPLACE", "RPAD", "RTRIM",
	"SOUNDEX", "SUBSTR", "TRANSLATE", "TRIM", "UPPER", "VSIZE",
}

var numericFunctions = []string{
	"ABS", "ACOS", "ASIN", "ATAN", "ATAN2", "AVG", "BITAND", "CEIL",
	"COS", "COSH", "COUNT", "EXP", "FLOOR", "GREATEST", "LEAST", "LN",
	"LOG", "MAX", "MEDIAN", "MIN", "MOD", "POWER", "REGEXP_COUNT",
	"REMAINDER", "ROUND", "ROWNUM", "SIGN", "SIN", "SINH", "SQRT",
	"SUM", "TAN", "TANH", "TRUNC",
}

var dateFunctions = []string{
	"ADD_MONTHS", "CURRENT_DATE", "CURRENT_TIMESTAMP", "DBTIMEZONE",
	"EXTRACT", "LAST_DAY", "LOCALTIMESTAMP", "MONTHS_BETWEEN",
	"NEW_TIME", "NEXT_DAY", "ROUND", "SESSIONTIMEZONE", "SYSDATE",
	"SYSTIMESTAMP", "TRUNC", "TZ_OFFSET",
}

var conversionFunctions = []string{
	"BIN_TO_NUM", "CAST", "CHARTOROWID", "FROM_TZ", "HEXTORAW",
	"NUMTODSINTERVAL", "NUMTOYMINTERVAL", "RAWTOHEX", "TO_CHAR",
	"TO_CLOB", "TO_DATE", "TO_DSINTERVAL", "TO_LOB", "TO_MULTI_BYTE",
	"TO_NCLOB", "TO_NUMBER", "TO_SINGLE_BYTE", "TO_TIMESTAMP",
	"TO_TIMESTAMP_TZ", "TO_YMINTERVAL",
}

var analyticFunctions = []string{
	"CORR", "COVAR_POP", "COVAR_SAMP", "CUME_DIST", "DENSE_RANK",
	"FIRST_VALUE", "LAG", "LAST_VALUE", "LEAD", "LISTAGG", "NTH_VALUE",
	"RANK", "STDDEV", "VAR_POP", "VAR_SAMP", "VARIANCE",
}

var miscFunctions = []string{
	"BFILENAME", "CARDINALITY", "CASE", "COALESCE", "DECODE",
	"EMPTY_BLOB", "EMPTY_CLOB", "GROUP_ID", "LNNVL", "NANVL", "NULLIF",
	"NVL", "NVL2", "SYS_CONTEXT", "UID", "USER", "USERENV",
}

var keywords = dialect.MergeKeywords(
	"CONNECT BY",
	"CREATE MATERIALIZED VIEW",
	"CREATE OR REPLACE",
	"CREATE SEQUENCE",
	"CREATE SYNONYM",
	"DUAL",
	"FETCH FIRST",
	"MERGE INTO",
	"MINUS",
	"PARTITION BY",
	"PIVOT",
	"ROWID",
	"ROWNUM",
	"START WITH",
	"TRUNCATE TABLE",
	"UNPIVOT",
)

// showItems mirror the SQL*Plus SHOW command arguments.
var showItems = []string{
	"ALL", "CON_ID", "CON_NAME", "EDITION", "ERRORS", "PARAMETERS",
	"PDBS", "RELEASE", "SGA", "SPOOL", "SQLCODE", "USER",
}

func init() {
	dialect.Register(&dialect.Dialect{
		Name:     "oracle",
		Driver:   "oracle",
		Quote:    '"',
		Keywords: keywords,
		Functions: map[dialect.Category][]string{
			dialect.CategoryString:     stringFunctions,
			dialect.CategoryNumeric:    numericFunctions,
			dialect.CategoryDate:       dateFunctions,
			dialect.CategoryConversion: conversionFunctions,
			dialect.CategoryAnalytic:   analyticFunctions,
			dialect.CategoryMisc:       miscFunctions,
		},
		ShowItems: showItems,
		Queries: dialect.Queries{
			CurrentSchema: `SELECT SYS_CONTEXT('USERENV', 'CURRENT_SCHEMA') FROM DUAL`,
			Databases:     `SELECT GLOBAL_NAME FROM GLOBAL_NAME`,
			Schemas:       `SELECT USERNAME FROM ALL_USERS ORDER BY USERNAME`,
			Users:         `SELECT USERNAME FROM ALL_USERS ORDER BY USERNAME`,
			Tables:        `SELECT TABLE_NAME FROM ALL_TABLES WHERE OWNER = :1 ORDER BY TABLE_NAME`,
			Views:         `SELECT VIEW_NAME FROM ALL_VIEWS WHERE OWNER = :1 ORDER BY VIEW_NAME`,
			TableColumns: `SELECT C.TABLE_NAME, C.COLUMN_NAME
FROM ALL_TAB_COLUMNS C
JOIN ALL_TABLES T ON T.OWNER = C.OWNER AND T.TABLE_NAME = C.TABLE_NAME
WHERE C.OWNER = :1
ORDER BY C.TABLE_NAME, C.COLUMN_ID`,
			ViewColumns: `SELECT C.TABLE_NAME, C.COLUMN_NAME
FROM ALL_TAB_COLUMNS C
JOIN ALL_VIEWS V ON V.OWNER = C.OWNER AND V.VIEW_NAME = C.TABLE_NAME
WHERE C.OWNER = :1
ORDER BY C.TABLE_NAME, C.COLUMN_ID`,
			Functions: `SELECT DISTINCT OBJECT_NAME FROM ALL_PROCEDURES WHERE OWNER = :1 ORDER BY OBJECT_NAME`,
		},
	})
}
