package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlsh-dev/sqlsh/internal/testutil"
	"github.com/sqlsh-dev/sqlsh/pkg/completer"
	"github.com/sqlsh-dev/sqlsh/pkg/dialect"
)

// testDialect keeps mock expectations short: one query per capability.
var testDialect = &dialect.Dialect{
	Name:  "mockdb",
	Quote: '"',
	Queries: dialect.Queries{
		CurrentSchema: "SELECT CURRENT_SCHEMA",
		Databases:     "SELECT DBNAME",
		Users:         "SELECT USERNAME",
		Schemas:       "SELECT SCHEMANAME",
		Tables:        "SELECT TABLENAME",
		Views:         "SELECT VIEWNAME",
		TableColumns:  "SELECT TABLECOLS",
		ViewColumns:   "SELECT VIEWCOLS",
		Functions:     "SELECT FUNCNAME",
	},
	ShowItems: []string{"PARAMETERS"},
}

func newRefresher(t *testing.T) (*Refresher, sqlmock.Sqlmock, *completer.Completer) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	comp := completer.New(completer.Options{
		Keywords:        []string{"SELECT", "FROM"},
		SmartCompletion: true,
		Logger:          testutil.NewTestLogger(t),
	})
	return NewRefresher(db, testDialect, comp, testutil.NewTestLogger(t)), mock, comp
}

func names(rows ...string) *sqlmock.Rows {
	r := sqlmock.NewRows([]string{"name"})
	for _, row := range rows {
		r.AddRow(row)
	}
	return r
}

func pairs(rows ...[2]string) *sqlmock.Rows {
	r := sqlmock.NewRows([]string{"relation", "column"})
	for _, row := range rows {
		r.AddRow(row[0], row[1])
	}
	return r
}

func TestRefreshPopulatesCatalog(t *testing.T) {
	r, mock, comp := newRefresher(t)

	mock.ExpectQuery("SELECT CURRENT_SCHEMA").WillReturnRows(names("HR"))
	mock.ExpectQuery("SELECT DBNAME").WillReturnRows(names("PRODDB"))
	mock.ExpectQuery("SELECT USERNAME").WillReturnRows(names("SCOTT"))
	mock.ExpectQuery("SELECT SCHEMANAME").WillReturnRows(names("HR"))
	mock.ExpectQuery("SELECT TABLENAME").WithArgs("HR").WillReturnRows(names("EMPLOYEES"))
	mock.ExpectQuery("SELECT VIEWNAME").WithArgs("HR").WillReturnRows(names("EMP_V"))
	mock.ExpectQuery("SELECT TABLECOLS").WithArgs("HR").WillReturnRows(pairs(
		[2]string{"EMPLOYEES", "EMPLOYEE_ID"},
		[2]string{"EMPLOYEES", "FIRST_NAME"},
	))
	mock.ExpectQuery("SELECT VIEWCOLS").WithArgs("HR").WillReturnRows(pairs(
		[2]string{"EMP_V", "FULL_NAME"},
	))
	mock.ExpectQuery("SELECT FUNCNAME").WithArgs("HR").WillReturnRows(names("GET_BONUS"))

	require.NoError(t, r.Refresh(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, "HR", comp.Database())

	got := comp.Complete("fir", []completer.Suggestion{
		completer.ColumnSuggestion{Tables: []completer.TableRef{{Name: "EMPLOYEES"}}},
	})
	require.NotEmpty(t, got)
	assert.Equal(t, "FIRST_NAME", got[0].Text)

	got = comp.Complete("emp", []completer.Suggestion{completer.ViewSuggestion{}})
	require.NotEmpty(t, got)
	assert.Equal(t, "EMP_V", got[0].Text)
}

func TestRefreshSurvivesFailingQueries(t *testing.T) {
	r, mock, comp := newRefresher(t)

	boom := errors.New("ORA-03113: end-of-file on communication channel")
	mock.ExpectQuery("SELECT CURRENT_SCHEMA").WillReturnRows(names("HR"))
	mock.ExpectQuery("SELECT DBNAME").WillReturnError(boom)
	mock.ExpectQuery("SELECT USERNAME").WillReturnError(boom)
	mock.ExpectQuery("SELECT SCHEMANAME").WillReturnRows(names("HR"))
	mock.ExpectQuery("SELECT TABLENAME").WithArgs("HR").WillReturnError(boom)
	mock.ExpectQuery("SELECT VIEWNAME").WithArgs("HR").WillReturnError(boom)
	mock.ExpectQuery("SELECT TABLECOLS").WithArgs("HR").WillReturnError(boom)
	mock.ExpectQuery("SELECT VIEWCOLS").WithArgs("HR").WillReturnError(boom)
	mock.ExpectQuery("SELECT FUNCNAME").WithArgs("HR").WillReturnError(boom)

	// Every discovery query failing still must not error or panic.
	require.NoError(t, r.Refresh(context.Background()))
	assert.Equal(t, "HR", comp.Database())
}

func TestRefreshEnumerationFailureKeepsPartialMetadata(t *testing.T) {
	r, mock, comp := newRefresher(t)

	rows := names("EMPLOYEES", "DEPARTMENTS", "JOBS")
	rows.RowError(1, errors.New("connection reset"))

	mock.ExpectQuery("SELECT CURRENT_SCHEMA").WillReturnRows(names("HR"))
	mock.ExpectQuery("SELECT DBNAME").WillReturnRows(names("PRODDB"))
	mock.ExpectQuery("SELECT USERNAME").WillReturnRows(names("SCOTT"))
	mock.ExpectQuery("SELECT SCHEMANAME").WillReturnRows(names("HR"))
	mock.ExpectQuery("SELECT TABLENAME").WithArgs("HR").WillReturnRows(rows)
	mock.ExpectQuery("SELECT VIEWNAME").WithArgs("HR").WillReturnRows(names())
	mock.ExpectQuery("SELECT TABLECOLS").WithArgs("HR").WillReturnRows(pairs(
		[2]string{"EMPLOYEES", "EMPLOYEE_ID"},
	))
	mock.ExpectQuery("SELECT VIEWCOLS").WithArgs("HR").WillReturnRows(pairs())
	mock.ExpectQuery("SELECT FUNCNAME").WithArgs("HR").WillReturnRows(names())

	require.NoError(t, r.Refresh(context.Background()))

	// The table read before the failure is present and completable; the
	// ones after the failure are simply absent.
	got := comp.Complete("", []completer.Suggestion{completer.TableSuggestion{}})
	require.Len(t, got, 1)
	assert.Equal(t, "EMPLOYEES", got[0].Text)
}

func TestRefreshColumnsForUnknownRelationIsAnError(t *testing.T) {
	r, mock, _ := newRefresher(t)

	mock.ExpectQuery("SELECT CURRENT_SCHEMA").WillReturnRows(names("HR"))
	mock.ExpectQuery("SELECT DBNAME").WillReturnRows(names("PRODDB"))
	mock.ExpectQuery("SELECT USERNAME").WillReturnRows(names("SCOTT"))
	mock.ExpectQuery("SELECT SCHEMANAME").WillReturnRows(names("HR"))
	mock.ExpectQuery("SELECT TABLENAME").WithArgs("HR").WillReturnRows(names("EMPLOYEES"))
	mock.ExpectQuery("SELECT VIEWNAME").WithArgs("HR").WillReturnRows(names())
	// The column query covers a relation the table query never returned.
	mock.ExpectQuery("SELECT TABLECOLS").WithArgs("HR").WillReturnRows(pairs(
		[2]string{"GHOST_TABLE", "ID"},
	))

	err := r.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, completer.ErrRelationNotFound)
}

func TestRefreshFallsBackToCurrentSchema(t *testing.T) {
	r, mock, comp := newRefresher(t)

	boom := errors.New("permission denied")
	mock.ExpectQuery("SELECT CURRENT_SCHEMA").WillReturnRows(names("HR"))
	mock.ExpectQuery("SELECT DBNAME").WillReturnRows(names())
	mock.ExpectQuery("SELECT USERNAME").WillReturnRows(names())
	mock.ExpectQuery("SELECT SCHEMANAME").WillReturnError(boom)
	mock.ExpectQuery("SELECT TABLENAME").WithArgs("HR").WillReturnRows(names("EMPLOYEES"))
	mock.ExpectQuery("SELECT VIEWNAME").WithArgs("HR").WillReturnRows(names())
	mock.ExpectQuery("SELECT TABLECOLS").WithArgs("HR").WillReturnRows(pairs())
	mock.ExpectQuery("SELECT VIEWCOLS").WithArgs("HR").WillReturnRows(pairs())
	mock.ExpectQuery("SELECT FUNCNAME").WithArgs("HR").WillReturnRows(names())

	require.NoError(t, r.Refresh(context.Background()))

	got := comp.Complete("emp", []completer.Suggestion{completer.TableSuggestion{}})
	require.Len(t, got, 1)
	assert.Equal(t, "EMPLOYEES", got[0].Text)
}
