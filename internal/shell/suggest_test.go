package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlsh-dev/sqlsh/pkg/completer"
	"github.com/sqlsh-dev/sqlsh/pkg/dialect"
)

func newTestSuggester() *Suggester {
	comp := completer.New(completer.Options{
		Keywords:        dialect.CommonKeywords,
		SmartCompletion: true,
	})
	return NewSuggester(comp)
}

// suggest classifies with the cursor at the end of the text.
func suggest(t *testing.T, text string) []completer.Suggestion {
	t.Helper()
	return newTestSuggester().Suggest(text, text)
}

func TestSuggestEmptyInput(t *testing.T) {
	got := suggest(t, "")
	assert.Equal(t, []completer.Suggestion{
		completer.KeywordSuggestion{},
		completer.SpecialSuggestion{},
	}, got)
}

func TestSuggestAfterFrom(t *testing.T) {
	got := suggest(t, "SELECT * FROM ")
	assert.Equal(t, []completer.Suggestion{
		completer.SchemaSuggestion{},
		completer.TableSuggestion{},
		completer.ViewSuggestion{},
	}, got)
}

func TestSuggestAfterFromWithSchemaQualifier(t *testing.T) {
	got := suggest(t, "SELECT * FROM hr.")
	assert.Equal(t, []completer.Suggestion{
		completer.TableSuggestion{Schema: "hr"},
		completer.ViewSuggestion{Schema: "hr"},
		completer.FunctionSuggestion{Schema: "hr"},
	}, got)
}

func TestSuggestAfterInsertInto(t *testing.T) {
	got := suggest(t, "INSERT INTO ")
	assert.Equal(t, []completer.Suggestion{
		completer.SchemaSuggestion{},
		completer.TableSuggestion{},
		completer.ViewSuggestion{},
	}, got)
}

func TestSuggestSelectListSeesFromClause(t *testing.T) {
	got := newTestSuggester().Suggest(
		"SELECT  FROM employees WHERE id = 1",
		"SELECT ",
	)
	require.NotEmpty(t, got)
	assert.Equal(t, completer.ColumnSuggestion{
		Tables: []completer.TableRef{{Name: "employees"}},
	}, got[0])
	assert.Contains(t, got, completer.FunctionSuggestion{})
	assert.Contains(t, got, completer.KeywordSuggestion{})
}

func TestSuggestWhereClauseKeywordIsNotAnAlias(t *testing.T) {
	got := suggest(t, "SELECT * FROM employees WHERE ")
	require.NotEmpty(t, got)
	col, ok := got[0].(completer.ColumnSuggestion)
	require.True(t, ok)
	require.Len(t, col.Tables, 1)
	assert.Equal(t, completer.TableRef{Name: "employees"}, col.Tables[0])
}

func TestSuggestAliasQualifierResolvesToItsTable(t *testing.T) {
	got := newTestSuggester().Suggest(
		"SELECT e. FROM employees e",
		"SELECT e.",
	)
	assert.Equal(t, []completer.Suggestion{
		completer.ColumnSuggestion{
			Tables: []completer.TableRef{{Name: "employees", Alias: "e"}},
		},
	}, got)
}

func TestSuggestUnknownQualifierFallsBack(t *testing.T) {
	got := newTestSuggester().Suggest(
		"SELECT x. FROM employees e",
		"SELECT x.",
	)
	require.NotEmpty(t, got)
	assert.Equal(t, completer.ColumnSuggestion{
		Tables: []completer.TableRef{{Name: "x"}},
	}, got[0])
	assert.Contains(t, got, completer.TableSuggestion{Schema: "x"})
	assert.Contains(t, got, completer.FunctionSuggestion{Schema: "x"})
}

func TestSuggestJoinCollectsAllTables(t *testing.T) {
	text := "SELECT * FROM employees e JOIN departments d ON "
	got := suggest(t, text)
	require.NotEmpty(t, got)
	col, ok := got[0].(completer.ColumnSuggestion)
	require.True(t, ok)
	assert.Equal(t, []completer.TableRef{
		{Name: "employees", Alias: "e"},
		{Name: "departments", Alias: "d"},
	}, col.Tables)
	assert.Contains(t, got, completer.AliasSuggestion{Aliases: []string{"e", "d"}})
}

func TestSuggestUsingWantsSharedColumns(t *testing.T) {
	text := "SELECT * FROM employees JOIN departments USING ("
	got := suggest(t, text)
	require.Len(t, got, 1)
	col, ok := got[0].(completer.ColumnSuggestion)
	require.True(t, ok)
	assert.True(t, col.SharedOnly)
	assert.Len(t, col.Tables, 2)
}

func TestSuggestCommaContinuesTheOpenList(t *testing.T) {
	got := suggest(t, "SELECT * FROM employees, ")
	assert.Contains(t, got, completer.TableSuggestion{})

	got = suggest(t, "SELECT id, ")
	require.NotEmpty(t, got)
	_, ok := got[0].(completer.ColumnSuggestion)
	assert.True(t, ok)
}

func TestSuggestUseWantsDatabases(t *testing.T) {
	got := suggest(t, "USE ")
	assert.Equal(t, []completer.Suggestion{completer.DatabaseSuggestion{}}, got)
}

func TestSuggestShowWantsShowItems(t *testing.T) {
	got := suggest(t, "SHOW ")
	assert.Equal(t, []completer.Suggestion{completer.ShowSuggestion{}}, got)
}

func TestSuggestGrantToWantsUsers(t *testing.T) {
	got := suggest(t, "GRANT SELECT ON employees TO ")
	assert.Equal(t, []completer.Suggestion{completer.UserSuggestion{}}, got)
}

func TestSuggestDefaultIsKeyword(t *testing.T) {
	got := suggest(t, "SELECT 1 UNION ")
	assert.Equal(t, []completer.Suggestion{completer.KeywordSuggestion{}}, got)
}

func TestSuggestSpecialCommands(t *testing.T) {
	assert.Equal(t, []completer.Suggestion{completer.SpecialSuggestion{}},
		suggest(t, `\ta`))
	assert.Equal(t, []completer.Suggestion{completer.TableFormatSuggestion{}},
		suggest(t, `\format `))
	assert.Equal(t, []completer.Suggestion{completer.FavoriteQuerySuggestion{}},
		suggest(t, `\f `))
	assert.Equal(t, []completer.Suggestion{
		completer.TableSuggestion{},
		completer.ViewSuggestion{},
	}, suggest(t, `\columns emp`))
	assert.Equal(t, []completer.Suggestion{completer.DatabaseSuggestion{}},
		suggest(t, `\use `))
}

func TestSuggestSpecialCursorInLeadingWhitespace(t *testing.T) {
	// The command starts after indentation and the cursor sits inside
	// it, so the text before the cursor trims to nothing. Must not
	// panic and must still offer the command vocabulary.
	got := newTestSuggester().Suggest(` \format json`, " ")
	assert.Equal(t, []completer.Suggestion{completer.SpecialSuggestion{}}, got)
}

func TestExtractTableRefs(t *testing.T) {
	isReserved := newTestSuggester().comp.IsReserved
	tests := []struct {
		name string
		text string
		want []completer.TableRef
	}{
		{
			name: "single table",
			text: "SELECT * FROM employees",
			want: []completer.TableRef{{Name: "employees"}},
		},
		{
			name: "schema qualified with alias",
			text: "SELECT * FROM hr.employees e",
			want: []completer.TableRef{{Schema: "hr", Name: "employees", Alias: "e"}},
		},
		{
			name: "explicit AS",
			text: "SELECT * FROM employees AS emp",
			want: []completer.TableRef{{Name: "employees", Alias: "emp"}},
		},
		{
			name: "comma separated list",
			text: "SELECT * FROM employees e, departments d WHERE",
			want: []completer.TableRef{
				{Name: "employees", Alias: "e"},
				{Name: "departments", Alias: "d"},
			},
		},
		{
			name: "joins",
			text: "SELECT * FROM a JOIN b ON a.x = b.x LEFT JOIN c ON b.y = c.y",
			want: []completer.TableRef{{Name: "a"}, {Name: "b"}, {Name: "c"}},
		},
		{
			name: "update target",
			text: "UPDATE employees SET salary = 0",
			want: []completer.TableRef{{Name: "employees"}},
		},
		{
			name: "subquery is skipped",
			text: "SELECT * FROM (SELECT id FROM employees)",
			want: nil,
		},
		{
			name: "no from clause",
			text: "SELECT 1 + 1",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractTableRefs(tt.text, isReserved))
		})
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t,
		[]string{"SELECT", "a", ",", "b", "FROM", "(", "t", ")", ";"},
		tokenize("SELECT a, b FROM (t);"))
}

func TestWordWithQualifier(t *testing.T) {
	assert.Equal(t, "e.fir", wordWithQualifier("SELECT e.fir"))
	assert.Equal(t, "", wordWithQualifier("SELECT e.fir "))
	assert.Equal(t, `\ta`, wordWithQualifier(`\ta`))
	assert.Equal(t, "hr.", wordWithQualifier("FROM hr."))
}
