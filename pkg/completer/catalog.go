package completer

import (
	"errors"
	"strings"
)

// ObjectKind selects which class of catalog objects an operation targets.
type ObjectKind int

// Catalog object kinds.
const (
	KindTable ObjectKind = iota
	KindView
	KindFunction
)

func (k ObjectKind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindView:
		return "view"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Catalog lookup errors. ErrSchemaNotFound means the schema was never
// registered; ErrRelationNotFound means columns were added for a relation
// that relation discovery never produced, which is a caller-ordering bug.
var (
	ErrSchemaNotFound   = errors.New("schema not found")
	ErrRelationNotFound = errors.New("relation not found")
)

// Wildcard is the sentinel column registered for relations whose column
// list has not been discovered yet, so completing from them still offers
// something.
const Wildcard = "*"

// Catalog is the session store of discovered schema objects, keyed
// kind -> schema (uppercased) -> object name -> column names. Functions
// carry a nil column list; only their presence matters.
type Catalog struct {
	objects map[ObjectKind]map[string]map[string][]string
}

// NewCatalog returns an empty catalog with all object kinds initialized.
func NewCatalog() *Catalog {
	return &Catalog{
		objects: map[ObjectKind]map[string]map[string][]string{
			KindTable:    make(map[string]map[string][]string),
			KindView:     make(map[string]map[string][]string),
			KindFunction: make(map[string]map[string][]string),
		},
	}
}

// AddSchema registers a schema under every object kind. Registering twice
// is a no-op; existing objects are kept.
func (c *Catalog) AddSchema(name string) {
	name = strings.ToUpper(name)
	for _, schemas := range c.objects {
		if _, ok := schemas[name]; !ok {
			schemas[name] = make(map[string][]string)
		}
	}
}

// HasSchema reports whether the schema has been registered.
func (c *Catalog) HasSchema(name string) bool {
	_, ok := c.objects[KindTable][strings.ToUpper(name)]
	return ok
}

// AddRelation registers a table or view with an undiscovered column list
// (the wildcard sentinel), or a function by presence. Returns
// ErrSchemaNotFound when the schema was never registered.
func (c *Catalog) AddRelation(kind ObjectKind, schema, name string) error {
	relations, ok := c.objects[kind][strings.ToUpper(schema)]
	if !ok {
		return ErrSchemaNotFound
	}
	if kind == KindFunction {
		relations[name] = nil
	} else {
		relations[name] = []string{Wildcard}
	}
	return nil
}

// AppendColumn adds a column to an already-registered relation. The
// relation must exist: relation discovery runs before column discovery,
// and a miss here indicates the caller broke that ordering.
func (c *Catalog) AppendColumn(kind ObjectKind, schema, relation, column string) error {
	relations, ok := c.objects[kind][strings.ToUpper(schema)]
	if !ok {
		return ErrSchemaNotFound
	}
	columns, ok := relations[relation]
	if !ok {
		return ErrRelationNotFound
	}
	relations[relation] = append(columns, column)
	return nil
}

// Columns returns the column list of a relation.
func (c *Catalog) Columns(kind ObjectKind, schema, relation string) ([]string, error) {
	relations, ok := c.objects[kind][strings.ToUpper(schema)]
	if !ok {
		return nil, ErrSchemaNotFound
	}
	columns, ok := relations[relation]
	if !ok {
		return nil, ErrRelationNotFound
	}
	return columns, nil
}

// Schemas lists the registered schema names.
func (c *Catalog) Schemas() []string {
	names := make([]string, 0, len(c.objects[KindTable]))
	for name := range c.objects[KindTable] {
		names = append(names, name)
	}
	return names
}

// Objects lists the object names of one kind under a schema. An unknown
// schema is not an error; it simply has no objects yet.
func (c *Catalog) Objects(kind ObjectKind, schema string) []string {
	relations, ok := c.objects[kind][strings.ToUpper(schema)]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(relations))
	for name := range relations {
		names = append(names, name)
	}
	return names
}
