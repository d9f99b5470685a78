package dialect

// CommonKeywords is the ANSI-ish keyword base shared by every dialect.
// Dialects append their own extensions. Multi-word phrases are kept
// whole; the completer splits them into reserved tokens itself.
var CommonKeywords = []string{
	"ALL",
	"ALTER TABLE",
	"AND",
	"AS",
	"ASC",
	"BETWEEN",
	"CASE",
	"COMMIT",
	"CREATE INDEX",
	"CREATE TABLE",
	"CREATE VIEW",
	"CROSS JOIN",
	"DELETE FROM",
	"DESC",
	"DISTINCT",
	"DROP TABLE",
	"DROP VIEW",
	"ELSE",
	"END",
	"EXCEPT",
	"EXISTS",
	"FROM",
	"FULL OUTER JOIN",
	"GRANT",
	"GROUP BY",
	"HAVING",
	"IN",
	"INNER JOIN",
	"INSERT INTO",
	"INTERSECT",
	"IS NOT NULL",
	"IS NULL",
	"JOIN",
	"LEFT JOIN",
	"LIKE",
	"LIMIT",
	"NOT",
	"NULL",
	"ON",
	"OR",
	"ORDER BY",
	"OUTER JOIN",
	"PRIMARY KEY",
	"REVOKE",
	"RIGHT JOIN",
	"ROLLBACK",
	"SELECT",
	"SET",
	"THEN",
	"UNION",
	"UNION ALL",
	"UPDATE",
	"USING",
	"VALUES",
	"WHEN",
	"WHERE",
	"WITH",
}

// MergeKeywords appends extensions to the common base without mutating
// either input.
func MergeKeywords(extra ...string) []string {
	merged := make([]string, 0, len(CommonKeywords)+len(extra))
	merged = append(merged, CommonKeywords...)
	merged = append(merged, extra...)
	return merged
}
