package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeInvalidPrice, status: http.StatusBadRequest, publicMsg: "price is not a valid amount", detailsOK: true},
		{code: CodeInvalidIndex, status: http.StatusNotFound, publicMsg: "cart position out of range", detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing name")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing name" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "name"})
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeDependency, cause, "save slot")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsAndIs(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeInvalidIndex, "index 4 out of range"))
	if got := As(err); got == nil || got.Code() != CodeInvalidIndex {
		t.Fatalf("As failed to return typed error")
	}
	if !Is(err, CodeInvalidIndex) {
		t.Fatalf("Is should match wrapped code")
	}
	if Is(err, CodeInvalidPrice) {
		t.Fatalf("Is should not match a different code")
	}
	if As(nil) != nil || Is(nil, CodeInternal) {
		t.Fatalf("nil errors carry no code")
	}
}

func TestDumpWalksChain(t *testing.T) {
	err := Wrap(CodeDependency, fmt.Errorf("redis: %w", stdErrors.New("timeout")), "load slot")
	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("expected dependency code in dump, got %s", dump.Code)
	}
	if len(dump.Chain) != 3 {
		t.Fatalf("expected 3 chain entries, got %d: %v", len(dump.Chain), dump.Chain)
	}
	if Dump(nil).TopMessage != "" {
		t.Fatalf("nil dump should be empty")
	}
}

func TestDumpMarksRetryableAndDriverErrors(t *testing.T) {
	if !Dump(Wrap(CodeDependency, stdErrors.New("down"), "ping")).Retryable {
		t.Fatalf("dependency errors should be retryable")
	}
	plain := Dump(stdErrors.New("boom"))
	if plain.Code != CodeInternal || !plain.Retryable {
		t.Fatalf("untyped errors should dump as internal, got %+v", plain)
	}
	if Dump(New(CodeInvalidIndex, "no row")).Retryable {
		t.Fatalf("invalid index should not be retryable")
	}

	liteErr := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}
	dump := Dump(Wrap(CodeDependency, liteErr, "insert product"))
	if dump.SQLiteCode != int(sqlite3.ErrConstraint) || dump.SQLiteExtended != int(sqlite3.ErrConstraintUnique) {
		t.Fatalf("expected sqlite codes in dump, got %+v", dump)
	}

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "products_name_key", TableName: "products"}
	dump = Dump(Wrap(CodeDependency, pgErr, "insert product"))
	if dump.PGCode != "23505" || dump.PGConstraint != "products_name_key" || dump.PGTable != "products" {
		t.Fatalf("expected pg details in dump, got %+v", dump)
	}
}
