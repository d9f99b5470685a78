package completer

import (
	"errors"
	"testing"
)

func TestCatalogAddSchemaIsIdempotent(t *testing.T) {
	cat := NewCatalog()
	cat.AddSchema("hr")
	if err := cat.AddRelation(KindTable, "HR", "EMPLOYEES"); err != nil {
		t.Fatalf("AddRelation: %v", err)
	}

	// Re-registering the schema must not drop existing objects.
	cat.AddSchema("HR")
	if got := cat.Objects(KindTable, "HR"); len(got) != 1 || got[0] != "EMPLOYEES" {
		t.Fatalf("Objects = %v, want [EMPLOYEES]", got)
	}
}

func TestCatalogSchemaKeysAreUppercased(t *testing.T) {
	cat := NewCatalog()
	cat.AddSchema("sales")
	if !cat.HasSchema("SALES") || !cat.HasSchema("sales") {
		t.Fatal("schema lookup should be case-insensitive")
	}
}

func TestCatalogUnknownSchemaLookups(t *testing.T) {
	cat := NewCatalog()

	if got := cat.Objects(KindTable, "NOPE"); got != nil {
		t.Fatalf("Objects for unknown schema = %v, want nil", got)
	}
	if _, err := cat.Columns(KindTable, "NOPE", "T"); !errors.Is(err, ErrSchemaNotFound) {
		t.Fatalf("Columns error = %v, want ErrSchemaNotFound", err)
	}
	if err := cat.AddRelation(KindTable, "NOPE", "T"); !errors.Is(err, ErrSchemaNotFound) {
		t.Fatalf("AddRelation error = %v, want ErrSchemaNotFound", err)
	}
}

func TestCatalogRelationDefaultsToWildcard(t *testing.T) {
	cat := NewCatalog()
	cat.AddSchema("HR")
	if err := cat.AddRelation(KindTable, "HR", "EMPLOYEES"); err != nil {
		t.Fatal(err)
	}

	cols, err := cat.Columns(KindTable, "HR", "EMPLOYEES")
	if err != nil {
		t.Fatal(err)
	}
	if len(cols) != 1 || cols[0] != Wildcard {
		t.Fatalf("Columns = %v, want [%s]", cols, Wildcard)
	}
}

func TestCatalogAppendColumnRequiresRelation(t *testing.T) {
	cat := NewCatalog()
	cat.AddSchema("HR")

	err := cat.AppendColumn(KindTable, "HR", "MISSING", "ID")
	if !errors.Is(err, ErrRelationNotFound) {
		t.Fatalf("AppendColumn error = %v, want ErrRelationNotFound", err)
	}
}

func TestCatalogFunctionsHaveNoColumns(t *testing.T) {
	cat := NewCatalog()
	cat.AddSchema("HR")
	if err := cat.AddRelation(KindFunction, "HR", "GET_SALARY"); err != nil {
		t.Fatal(err)
	}

	cols, err := cat.Columns(KindFunction, "HR", "GET_SALARY")
	if err != nil {
		t.Fatal(err)
	}
	if len(cols) != 0 {
		t.Fatalf("function columns = %v, want none", cols)
	}
}
