package completer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRows drives the Rows interface from a slice, optionally failing
// after a given number of rows the way a dropped connection would.
type fakeRows struct {
	rows   [][]string
	failAt int // fail before yielding this row index; -1 disables
	pos    int
	err    error
}

func (r *fakeRows) Next() bool {
	if r.failAt >= 0 && r.pos == r.failAt {
		r.err = errors.New("connection reset during fetch")
		return false
	}
	return r.pos < len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos]
	r.pos++
	for i := range dest {
		*(dest[i].(*string)) = row[i]
	}
	return nil
}

func (r *fakeRows) Err() error { return r.err }

func relationRows(names ...string) *fakeRows {
	rows := make([][]string, len(names))
	for i, name := range names {
		rows[i] = []string{name}
	}
	return &fakeRows{rows: rows, failAt: -1}
}

func columnRows(pairs ...[2]string) *fakeRows {
	rows := make([][]string, len(pairs))
	for i, pair := range pairs {
		rows[i] = []string{pair[0], pair[1]}
	}
	return &fakeRows{rows: rows, failAt: -1}
}

func TestExtendRelationsRegistersWithWildcard(t *testing.T) {
	c := New(Options{})
	c.ExtendSchemas([]string{"HR"})

	res := c.ExtendRelations(relationRows("EMPLOYEES", "DEPARTMENTS"), KindTable, "hr")
	require.NoError(t, res.Err)
	assert.Equal(t, 2, res.Applied)

	cols, err := c.catalog.Columns(KindTable, "HR", "EMPLOYEES")
	require.NoError(t, err)
	assert.Equal(t, []string{Wildcard}, cols)
	assert.Contains(t, c.all, "DEPARTMENTS")
}

func TestExtendRelationsSkipsUnknownSchema(t *testing.T) {
	c := New(Options{})
	c.ExtendSchemas([]string{"HR"})

	// One bad schema entry must not abort the batch, and must not panic.
	res := c.ExtendRelations(relationRows("ORPHAN"), KindTable, "GHOST")
	require.NoError(t, res.Err)
	assert.Equal(t, 0, res.Applied)
}

func TestExtendRelationsEnumerationFailureDegrades(t *testing.T) {
	c := New(Options{})
	c.ExtendSchemas([]string{"HR"})

	rows := relationRows("A", "B", "C")
	rows.failAt = 2
	res := c.ExtendRelations(rows, KindTable, "HR")

	// Entries before the failure stay; nothing after it is applied, and
	// the failure does not escape as a panic or partial corruption.
	assert.Error(t, res.Err)
	assert.Equal(t, 2, res.Applied)
	assert.ElementsMatch(t, []string{"A", "B"}, c.catalog.Objects(KindTable, "HR"))

	for _, name := range c.catalog.Objects(KindTable, "HR") {
		cols, err := c.catalog.Columns(KindTable, "HR", name)
		require.NoError(t, err)
		assert.Equal(t, []string{Wildcard}, cols, "no partial entries")
	}
}

func TestExtendColumnsAppends(t *testing.T) {
	c := New(Options{})
	c.ExtendSchemas([]string{"HR"})
	require.NoError(t, c.ExtendRelations(relationRows("EMPLOYEES"), KindTable, "HR").Err)

	res, err := c.ExtendColumns(columnRows(
		[2]string{"EMPLOYEES", "EMPLOYEE_ID"},
		[2]string{"EMPLOYEES", "FIRST_NAME"},
	), KindTable, "HR")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Applied)

	cols, err := c.catalog.Columns(KindTable, "HR", "EMPLOYEES")
	require.NoError(t, err)
	assert.Equal(t, []string{Wildcard, "EMPLOYEE_ID", "FIRST_NAME"}, cols)
	assert.Contains(t, c.all, "FIRST_NAME")
}

func TestExtendColumnsBeforeRelationIsAnError(t *testing.T) {
	c := New(Options{})
	c.ExtendSchemas([]string{"HR"})

	// Columns for a relation that discovery never produced: an ordering
	// bug in the caller, surfaced rather than swallowed.
	_, err := c.ExtendColumns(columnRows([2]string{"MISSING", "ID"}), KindTable, "HR")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRelationNotFound)
}

func TestExtendColumnsEnumerationFailureDegrades(t *testing.T) {
	c := New(Options{})
	c.ExtendSchemas([]string{"HR"})
	require.NoError(t, c.ExtendRelations(relationRows("EMPLOYEES"), KindTable, "HR").Err)

	rows := columnRows([2]string{"EMPLOYEES", "A"}, [2]string{"EMPLOYEES", "B"})
	rows.failAt = 1
	res, err := c.ExtendColumns(rows, KindTable, "HR")
	require.NoError(t, err)
	assert.Error(t, res.Err)
	assert.Equal(t, 1, res.Applied)

	cols, catErr := c.catalog.Columns(KindTable, "HR", "EMPLOYEES")
	require.NoError(t, catErr)
	assert.Equal(t, []string{Wildcard, "A"}, cols)
}

func TestExtendFunctionsRegistersPresence(t *testing.T) {
	c := New(Options{})
	c.ExtendSchemas([]string{"HR"})

	res := c.ExtendFunctions(relationRows("GET_BONUS", "FIRE_EMPLOYEE"), "HR")
	require.NoError(t, res.Err)
	assert.Equal(t, 2, res.Applied)
	assert.ElementsMatch(t, []string{"GET_BONUS", "FIRE_EMPLOYEE"}, c.catalog.Objects(KindFunction, "HR"))
}
