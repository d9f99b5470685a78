package shell

import (
	"strings"
	"unicode"

	"github.com/sqlsh-dev/sqlsh/pkg/completer"
)

// Suggester maps the text before the cursor to the kinds of completions
// that make sense there. It is a keyword-driven classifier, not a SQL
// parser: it looks at the last significant token and, for column
// contexts, at the FROM/JOIN clauses of the whole statement.
type Suggester struct {
	comp *completer.Completer
}

func NewSuggester(comp *completer.Completer) *Suggester {
	return &Suggester{comp: comp}
}

// tableSources introduce table references.
var tableSources = map[string]bool{
	"FROM":   true,
	"JOIN":   true,
	"UPDATE": true,
	"INTO":   true,
}

// clauseBoundaries end a table-reference list.
var clauseBoundaries = map[string]bool{
	"WHERE": true, "GROUP": true, "ORDER": true, "HAVING": true,
	"LIMIT": true, "OFFSET": true, "UNION": true, "INTERSECT": true,
	"EXCEPT": true, "ON": true, "USING": true, "SET": true,
	"VALUES": true, "SELECT": true, "JOIN": true, "LEFT": true,
	"RIGHT": true, "FULL": true, "INNER": true, "OUTER": true,
	"CROSS": true, "NATURAL": true, "WHEN": true, "RETURNING": true,
	";": true, "(": true, ")": true,
}

// Suggest classifies the cursor position. fullText is the whole
// statement buffered so far including the current line; beforeCursor is
// the text up to the cursor.
func (s *Suggester) Suggest(fullText, beforeCursor string) []completer.Suggestion {
	if strings.TrimSpace(beforeCursor) == "" && strings.TrimSpace(fullText) == "" {
		return []completer.Suggestion{
			completer.KeywordSuggestion{},
			completer.SpecialSuggestion{},
		}
	}
	if strings.HasPrefix(strings.TrimLeft(fullText, " \t"), `\`) {
		return s.suggestSpecial(beforeCursor)
	}

	word := wordWithQualifier(beforeCursor)
	qualifier := ""
	if idx := strings.LastIndex(word, "."); idx >= 0 {
		qualifier = word[:idx]
	}

	tokens := tokenize(beforeCursor[:len(beforeCursor)-len(word)])
	if len(tokens) == 0 {
		return []completer.Suggestion{
			completer.KeywordSuggestion{},
			completer.SpecialSuggestion{},
		}
	}
	last := strings.ToUpper(tokens[len(tokens)-1])

	switch last {
	case "FROM", "JOIN", "INTO", "UPDATE", "TABLE", "DESCRIBE", "DESC", "TRUNCATE":
		if qualifier != "" {
			return []completer.Suggestion{
				completer.TableSuggestion{Schema: qualifier},
				completer.ViewSuggestion{Schema: qualifier},
				completer.FunctionSuggestion{Schema: qualifier},
			}
		}
		return []completer.Suggestion{
			completer.SchemaSuggestion{},
			completer.TableSuggestion{},
			completer.ViewSuggestion{},
		}

	case "SELECT", "WHERE", "HAVING", "BY", "ON", "AND", "OR", "NOT",
		"DISTINCT", "ALL", "SET", "CASE", "WHEN", "THEN", "ELSE",
		"LIKE", "IN", "BETWEEN", "IS",
		"=", "<", ">", "<=", ">=", "<>", "!=", "+", "-", "*", "/":
		return s.suggestColumns(fullText, qualifier, false)

	case "USING":
		return s.suggestColumns(fullText, qualifier, true)

	case "(":
		if len(tokens) >= 2 && strings.EqualFold(tokens[len(tokens)-2], "USING") {
			return s.suggestColumns(fullText, qualifier, true)
		}
		return s.suggestColumns(fullText, qualifier, false)

	case ",":
		// A comma continues whatever list the nearest clause opened.
		if tableSources[lastClauseKeyword(tokens)] {
			return []completer.Suggestion{
				completer.SchemaSuggestion{},
				completer.TableSuggestion{},
				completer.ViewSuggestion{},
			}
		}
		return s.suggestColumns(fullText, qualifier, false)

	case "USE", "DATABASE", "CONNECT":
		return []completer.Suggestion{completer.DatabaseSuggestion{}}

	case "SHOW":
		return []completer.Suggestion{completer.ShowSuggestion{}}

	case "CHANGE":
		return []completer.Suggestion{completer.ChangeSuggestion{}}

	case "TO":
		if strings.EqualFold(tokens[0], "GRANT") || strings.EqualFold(tokens[0], "REVOKE") {
			return []completer.Suggestion{completer.UserSuggestion{}}
		}
		return []completer.Suggestion{completer.KeywordSuggestion{}}

	case "USER":
		return []completer.Suggestion{completer.UserSuggestion{}}

	case "AS":
		// The user is naming an alias; nothing sensible to offer.
		return nil
	}
	return []completer.Suggestion{completer.KeywordSuggestion{}}
}

// suggestSpecial handles lines starting with a backslash command.
func (s *Suggester) suggestSpecial(beforeCursor string) []completer.Suggestion {
	trimmed := strings.TrimSpace(beforeCursor)
	// An empty trimmed prefix means the cursor is still in the leading
	// whitespace before the command word.
	onFirstWord := trimmed == "" ||
		(!strings.ContainsAny(trimmed, " \t") &&
			!strings.HasSuffix(beforeCursor, " ") && !strings.HasSuffix(beforeCursor, "\t"))
	if onFirstWord {
		return []completer.Suggestion{completer.SpecialSuggestion{}}
	}
	switch strings.ToLower(strings.Fields(trimmed)[0]) {
	case `\f`, `\favorites`:
		return []completer.Suggestion{completer.FavoriteQuerySuggestion{}}
	case `\format`:
		return []completer.Suggestion{completer.TableFormatSuggestion{}}
	case `\columns`, `\d`:
		return []completer.Suggestion{
			completer.TableSuggestion{},
			completer.ViewSuggestion{},
		}
	case `\use`, `\connect`:
		return []completer.Suggestion{completer.DatabaseSuggestion{}}
	}
	return nil
}

// suggestColumns builds the suggestion set for a column position,
// resolving a dotted qualifier against the statement's table aliases.
func (s *Suggester) suggestColumns(fullText, qualifier string, shared bool) []completer.Suggestion {
	refs := extractTableRefs(fullText, s.comp.IsReserved)

	if qualifier != "" {
		for _, ref := range refs {
			if strings.EqualFold(ref.Alias, qualifier) ||
				(ref.Alias == "" && strings.EqualFold(ref.Name, qualifier)) {
				return []completer.Suggestion{
					completer.ColumnSuggestion{Tables: []completer.TableRef{ref}},
				}
			}
		}
		// Not an alias in scope: could be a bare table name or a schema.
		return []completer.Suggestion{
			completer.ColumnSuggestion{Tables: []completer.TableRef{{Name: qualifier}}},
			completer.TableSuggestion{Schema: qualifier},
			completer.ViewSuggestion{Schema: qualifier},
			completer.FunctionSuggestion{Schema: qualifier},
		}
	}

	suggestions := []completer.Suggestion{
		completer.ColumnSuggestion{Tables: refs, SharedOnly: shared},
	}
	if shared {
		return suggestions
	}
	if aliases := aliasNames(refs); len(aliases) > 0 {
		suggestions = append(suggestions, completer.AliasSuggestion{Aliases: aliases})
	}
	return append(suggestions,
		completer.FunctionSuggestion{},
		completer.KeywordSuggestion{},
	)
}

// aliasNames collects the name each table reference answers to.
func aliasNames(refs []completer.TableRef) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.Alias != "" {
			names = append(names, ref.Alias)
		} else if ref.Name != "" {
			names = append(names, ref.Name)
		}
	}
	return names
}

// lastClauseKeyword finds the nearest preceding clause keyword, so a
// comma can be attributed to the list it continues.
func lastClauseKeyword(tokens []string) string {
	for i := len(tokens) - 1; i >= 0; i-- {
		upper := strings.ToUpper(tokens[i])
		if tableSources[upper] || upper == "SELECT" || upper == "WHERE" ||
			upper == "BY" || upper == "SET" || upper == "USING" {
			return upper
		}
	}
	return ""
}

// extractTableRefs scans the statement for FROM/JOIN/UPDATE/INTO
// clauses and collects the referenced relations with their aliases.
// Parenthesized subqueries are skipped wholesale.
func extractTableRefs(text string, isReserved func(string) bool) []completer.TableRef {
	tokens := tokenize(text)
	var refs []completer.TableRef

	i := 0
	for i < len(tokens) {
		if !tableSources[strings.ToUpper(tokens[i])] {
			i++
			continue
		}
		i++
		for i < len(tokens) {
			tok := tokens[i]
			if tok == "(" {
				i = skipParens(tokens, i)
				break
			}
			if clauseBoundaries[strings.ToUpper(tok)] || tok == "," {
				break
			}
			ref := parseTableRef(tok)
			i++
			if i < len(tokens) && strings.EqualFold(tokens[i], "AS") {
				i++
			}
			if i < len(tokens) && isAliasCandidate(tokens[i], isReserved) {
				ref.Alias = tokens[i]
				i++
			}
			refs = append(refs, ref)
			if i < len(tokens) && tokens[i] == "," {
				i++
				continue
			}
			break
		}
	}
	return refs
}

// skipParens advances past a balanced parenthesized group starting at
// tokens[open] == "(".
func skipParens(tokens []string, open int) int {
	depth := 0
	for i := open; i < len(tokens); i++ {
		switch tokens[i] {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(tokens)
}

func parseTableRef(tok string) completer.TableRef {
	if idx := strings.LastIndex(tok, "."); idx >= 0 {
		return completer.TableRef{Schema: tok[:idx], Name: tok[idx+1:]}
	}
	return completer.TableRef{Name: tok}
}

func isAliasCandidate(tok string, isReserved func(string) bool) bool {
	return completer.IsBareIdent(tok) &&
		!clauseBoundaries[strings.ToUpper(tok)] &&
		!isReserved(tok)
}

// tokenize splits on whitespace, keeping commas, parens and semicolons
// as their own tokens.
func tokenize(text string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			flush()
		case r == ',' || r == '(' || r == ')' || r == ';':
			flush()
			tokens = append(tokens, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// wordWithQualifier returns the token under the cursor including any
// dotted qualifier, unlike the completer's own word scan which stops at
// the dot.
func wordWithQualifier(text string) string {
	i := len(text)
	for i > 0 {
		switch text[i-1] {
		case ' ', '\t', '\n', '\r', '(', ')', ',', ';', ':':
			return text[i:]
		}
		i--
	}
	return text[i:]
}
