package completer

import (
	"regexp"
	"strings"
)

// bareIdentPattern matches identifiers that can appear unquoted in SQL.
var bareIdentPattern = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9$]*$`)

// IsBareIdent reports whether name needs no quoting.
func IsBareIdent(name string) bool {
	return bareIdentPattern.MatchString(name)
}

// unquoteIdent strips one level of double quotes from a quoted
// identifier; anything else is returned unchanged.
func unquoteIdent(name string) string {
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		return name[1 : len(name)-1]
	}
	return name
}

// QuoteIdent wraps name in quote characters when it cannot appear bare.
// Already-quoted and well-formed identifiers pass through untouched.
func QuoteIdent(name string, quote rune) string {
	if IsBareIdent(name) {
		return name
	}
	q := string(quote)
	if strings.HasPrefix(name, q) && strings.HasSuffix(name, q) && len(name) >= 2 {
		return name
	}
	return q + name + q
}
