// Package completer implements the context-aware completion engine behind
// the shell's tab completion. It keeps a session-scoped catalog of
// discovered schema objects (databases, schemas, tables, views, columns,
// functions, users) plus flat vocabularies (keywords, built-in functions,
// special commands, output formats), resolves which candidates are visible
// for a given suggestion context, and ranks them with a uniform
// fuzzy/prefix matcher.
//
// The engine does no I/O of its own: metadata arrives through the Extend*
// operations, driven by the connection layer, and completion requests
// arrive as already-classified Suggestion values. It is not safe for
// concurrent use; the host serializes metadata refresh against completion
// requests.
package completer

import (
	"log/slog"
	"sort"
	"strings"
)

// FavoriteLister supplies the names of saved favorite queries. The engine
// only reads the list; storage is the caller's concern.
type FavoriteLister interface {
	List() []string
}

// Options is the immutable construction-time configuration of a Completer.
// Everything here survives Reset; only session-discovered state is cleared.
type Options struct {
	// Keywords is the dialect keyword vocabulary. Multi-word phrases are
	// allowed ("GROUP BY"); their individual tokens populate the reserved
	// word set.
	Keywords []string

	// FunctionGroups are the built-in function vocabularies by category.
	// They are merged, deduplicated and sorted once at construction.
	FunctionGroups [][]string

	// SpecialCommands seeds the shell command vocabulary. More can be
	// added later with ExtendSpecialCommands.
	SpecialCommands []string

	// TableFormats is the list of supported result output formats.
	TableFormats []string

	// SmartCompletion enables context-aware completion. When disabled,
	// Complete falls back to prefix matching against every known name.
	SmartCompletion bool

	// Favorites supplies favorite query names, if the shell has any.
	Favorites FavoriteLister

	Logger *slog.Logger
}

// Completer is the completion engine. One instance per connection; the
// catalog is wiped by Reset on reconnect and repopulated incrementally.
type Completer struct {
	logger *slog.Logger
	smart  bool

	keywords  []string
	functions []string
	reserved  map[string]struct{}
	special   []string
	formats   []string
	favorites FavoriteLister

	catalog     *Catalog
	database    string
	databases   []string
	users       []string
	showItems   []string
	changeItems []string

	// all is the flat set of every known identifier, used only by the
	// non-context-aware fallback.
	all map[string]struct{}
}

// New builds a Completer from its static configuration and leaves it in
// the post-Reset state.
func New(opts Options) *Completer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Completer{
		logger:    logger,
		smart:     opts.SmartCompletion,
		keywords:  append([]string(nil), opts.Keywords...),
		functions: mergeFunctionGroups(opts.FunctionGroups),
		reserved:  make(map[string]struct{}),
		special:   append([]string(nil), opts.SpecialCommands...),
		formats:   append([]string(nil), opts.TableFormats...),
		favorites: opts.Favorites,
	}
	for _, kw := range c.keywords {
		for _, word := range strings.Fields(kw) {
			c.reserved[strings.ToUpper(word)] = struct{}{}
		}
	}
	c.Reset()
	return c
}

// mergeFunctionGroups flattens the per-category built-in function lists
// into one deduplicated, sorted vocabulary.
func mergeFunctionGroups(groups [][]string) []string {
	seen := make(map[string]struct{})
	var merged []string
	for _, group := range groups {
		for _, fn := range group {
			if _, ok := seen[fn]; ok {
				continue
			}
			seen[fn] = struct{}{}
			merged = append(merged, fn)
		}
	}
	sort.Strings(merged)
	return merged
}

// Reset clears all session-discovered state: the object catalog, the
// current database, and the database/user/show/change vocabularies. The
// flat completion set is reinitialized to exactly keywords plus built-in
// functions. Safe to call at any time, typically on (re)connect.
func (c *Completer) Reset() {
	c.catalog = NewCatalog()
	c.database = ""
	c.databases = nil
	c.users = nil
	c.showItems = nil
	c.changeItems = nil

	c.all = make(map[string]struct{}, len(c.keywords)+len(c.functions))
	for _, kw := range c.keywords {
		c.all[kw] = struct{}{}
	}
	for _, fn := range c.functions {
		c.all[fn] = struct{}{}
	}
}

// SetDatabase records the current database (or Oracle-style current
// schema); it is the default namespace for unqualified references.
func (c *Completer) SetDatabase(name string) {
	c.database = strings.ToUpper(name)
}

// Database returns the current database name, uppercased.
func (c *Completer) Database() string { return c.database }

// SmartCompletion reports whether context-aware completion is enabled.
func (c *Completer) SmartCompletion() bool { return c.smart }

// SetSmartCompletion toggles context-aware completion at runtime.
func (c *Completer) SetSmartCompletion(on bool) { c.smart = on }

// IsReserved reports whether word is a reserved token of the keyword
// vocabulary (individual tokens of multi-word keywords count).
func (c *Completer) IsReserved(word string) bool {
	_, ok := c.reserved[strings.ToUpper(word)]
	return ok
}

// ReservedWords returns the reserved token set, sorted.
func (c *Completer) ReservedWords() []string {
	words := make([]string, 0, len(c.reserved))
	for w := range c.reserved {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Keywords returns the current keyword vocabulary.
func (c *Completer) Keywords() []string { return c.keywords }

// ExtendSchemas registers schema names in the catalog so later relation
// discovery has somewhere to land.
func (c *Completer) ExtendSchemas(names []string) {
	for _, name := range names {
		c.catalog.AddSchema(name)
		c.all[name] = struct{}{}
	}
}

// ExtendDatabases appends to the known database name vocabulary.
func (c *Completer) ExtendDatabases(names []string) {
	c.databases = append(c.databases, names...)
	c.addAll(names)
}

// ExtendUsers appends to the known user name vocabulary.
func (c *Completer) ExtendUsers(names []string) {
	c.users = append(c.users, names...)
	c.addAll(names)
}

// ExtendShowItems appends to the SHOW argument vocabulary.
func (c *Completer) ExtendShowItems(items []string) {
	c.showItems = append(c.showItems, items...)
	c.addAll(items)
}

// ExtendChangeItems appends to the CHANGE argument vocabulary.
func (c *Completer) ExtendChangeItems(items []string) {
	c.changeItems = append(c.changeItems, items...)
	c.addAll(items)
}

// ExtendKeywords appends session-specific keywords, updating the reserved
// word set as well.
func (c *Completer) ExtendKeywords(keywords []string) {
	c.keywords = append(c.keywords, keywords...)
	for _, kw := range keywords {
		for _, word := range strings.Fields(kw) {
			c.reserved[strings.ToUpper(word)] = struct{}{}
		}
	}
	c.addAll(keywords)
}

// ExtendSpecialCommands appends shell command names. They are not added
// to the flat completion set since they are only valid at the start of a
// line.
func (c *Completer) ExtendSpecialCommands(names []string) {
	c.special = append(c.special, names...)
}

func (c *Completer) addAll(names []string) {
	for _, name := range names {
		c.all[name] = struct{}{}
	}
}

// schemaObjects lists the catalog objects of one kind under the given
// schema, defaulting to the current database when schema is empty. An
// unknown schema yields no candidates.
func (c *Completer) schemaObjects(kind ObjectKind, schema string) []string {
	if schema == "" {
		schema = c.database
	}
	return c.catalog.Objects(kind, strings.ToUpper(schema))
}

// Complete returns ranked completions for the word being typed, given the
// suggestion contexts the classifier derived from the cursor position.
// Results are concatenated in suggestion order, each internally ranked;
// there is no cross-kind re-ranking.
func (c *Completer) Complete(word string, suggestions []Suggestion) []Completion {
	if !c.smart {
		return findMatches(word, c.allCompletions(), true, false)
	}

	var out []Completion
	for _, s := range suggestions {
		switch s := s.(type) {
		case ColumnSuggestion:
			cols := c.ScopedColumns(s.Tables, s.SharedOnly)
			out = append(out, findMatches(word, cols, false, true)...)

		case FunctionSuggestion:
			funcs := c.schemaObjects(KindFunction, s.Schema)
			out = append(out, findMatches(word, funcs, false, true)...)
			// Built-ins only when unqualified: a qualifier almost always
			// names a table, not a function schema.
			if s.Schema == "" {
				out = append(out, findMatches(word, c.functions, true, false)...)
			}

		case TableSuggestion:
			tables := c.schemaObjects(KindTable, s.Schema)
			out = append(out, findMatches(word, tables, false, true)...)

		case ViewSuggestion:
			views := c.schemaObjects(KindView, s.Schema)
			out = append(out, findMatches(word, views, false, true)...)

		case AliasSuggestion:
			out = append(out, findMatches(word, s.Aliases, false, true)...)

		case DatabaseSuggestion:
			out = append(out, findMatches(word, c.databases, false, true)...)

		case SchemaSuggestion:
			out = append(out, findMatches(word, c.schemaNames(), false, true)...)

		case KeywordSuggestion:
			out = append(out, findMatches(word, c.keywords, true, false)...)

		case ShowSuggestion:
			out = append(out, findMatches(word, c.showItems, false, true)...)

		case ChangeSuggestion:
			out = append(out, findMatches(word, c.changeItems, false, true)...)

		case UserSuggestion:
			out = append(out, findMatches(word, c.users, false, true)...)

		case SpecialSuggestion:
			out = append(out, findMatches(word, c.special, true, false)...)

		case FavoriteQuerySuggestion:
			if c.favorites != nil {
				out = append(out, findMatches(word, c.favorites.List(), false, true)...)
			}

		case TableFormatSuggestion:
			out = append(out, findMatches(word, c.formats, true, false)...)

		default:
			// Unrecognized suggestion kinds contribute nothing.
			c.logger.Debug("unhandled suggestion kind", "suggestion", s)
		}
	}
	return out
}

// schemaNames is the union of known database names and catalog schemas;
// dialects that expose only one of the two still complete both ways.
func (c *Completer) schemaNames() []string {
	seen := make(map[string]struct{}, len(c.databases))
	var names []string
	for _, name := range c.databases {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for _, name := range c.catalog.Schemas() {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

func (c *Completer) allCompletions() []string {
	names := make([]string, 0, len(c.all))
	for name := range c.all {
		names = append(names, name)
	}
	return names
}
