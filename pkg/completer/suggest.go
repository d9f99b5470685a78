package completer

// TableRef identifies one relation referenced by the statement being
// typed: an optional schema qualifier, the relation name as written, and
// the alias it was given, if any.
type TableRef struct {
	Schema string
	Name   string
	Alias  string
}

// Suggestion describes one kind of completion expected at the cursor.
// Values are produced by the SQL-context classifier; one cursor position
// can yield several at once (for example columns, functions and keywords
// inside a WHERE clause). The interface is sealed: the dispatch table in
// Complete covers every variant.
type Suggestion interface {
	suggestion()
}

// ColumnSuggestion asks for columns visible through the referenced
// relations.
type ColumnSuggestion struct {
	Tables []TableRef

	// SharedOnly restricts candidates to column names occurring in two or
	// more of the referenced relations, for JOIN ... USING (...) where
	// only columns present on both sides make sense.
	SharedOnly bool
}

// FunctionSuggestion asks for functions: user-defined ones under Schema
// (or the current database when empty), plus built-ins when unqualified.
type FunctionSuggestion struct {
	Schema string
}

// TableSuggestion asks for tables under Schema or the current database.
type TableSuggestion struct {
	Schema string
}

// ViewSuggestion asks for views under Schema or the current database.
type ViewSuggestion struct {
	Schema string
}

// AliasSuggestion asks for the aliases already introduced by the
// statement; the classifier carries them in.
type AliasSuggestion struct {
	Aliases []string
}

// DatabaseSuggestion asks for known database names.
type DatabaseSuggestion struct{}

// SchemaSuggestion asks for known schema names: the database vocabulary
// plus the schemas registered in the catalog.
type SchemaSuggestion struct{}

// KeywordSuggestion asks for SQL keywords.
type KeywordSuggestion struct{}

// ShowSuggestion asks for SHOW command arguments.
type ShowSuggestion struct{}

// ChangeSuggestion asks for CHANGE command arguments.
type ChangeSuggestion struct{}

// UserSuggestion asks for known user names.
type UserSuggestion struct{}

// SpecialSuggestion asks for shell special commands.
type SpecialSuggestion struct{}

// FavoriteQuerySuggestion asks for saved favorite query names.
type FavoriteQuerySuggestion struct{}

// TableFormatSuggestion asks for result output format names.
type TableFormatSuggestion struct{}

func (ColumnSuggestion) suggestion()        {}
func (FunctionSuggestion) suggestion()      {}
func (TableSuggestion) suggestion()         {}
func (ViewSuggestion) suggestion()          {}
func (AliasSuggestion) suggestion()         {}
func (DatabaseSuggestion) suggestion()      {}
func (SchemaSuggestion) suggestion()        {}
func (KeywordSuggestion) suggestion()       {}
func (ShowSuggestion) suggestion()          {}
func (ChangeSuggestion) suggestion()        {}
func (UserSuggestion) suggestion()          {}
func (SpecialSuggestion) suggestion()       {}
func (FavoriteQuerySuggestion) suggestion() {}
func (TableFormatSuggestion) suggestion()   {}
