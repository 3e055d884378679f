package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeInvalidID, http.StatusBadRequest},
		{CodeInvalidQuery, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeInternal, http.StatusInternalServerError},
		{CodeDependency, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		meta := MetadataFor(tc.code)
		if meta.HTTPStatus != tc.status {
			t.Fatalf("code %s: expected status %d, got %d", tc.code, tc.status, meta.HTTPStatus)
		}
		if meta.PublicMessage == "" {
			t.Fatalf("code %s: missing public message", tc.code)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(CodeDependency, cause, "database unavailable")

	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to survive errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	inner := New(CodeNotFound, "Listing not found").WithReason("No listing exists with ID: abc")
	wrapped := fmt.Errorf("loading listing: %w", inner)

	typed := As(wrapped)
	if typed == nil {
		t.Fatalf("expected typed error in chain")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("unexpected code %s", typed.Code())
	}
	if typed.Reason() != "No listing exists with ID: abc" {
		t.Fatalf("unexpected reason %q", typed.Reason())
	}
}

func TestAsReturnsNilForUntypedError(t *testing.T) {
	if As(errors.New("boom")) != nil {
		t.Fatalf("expected nil for untyped error")
	}
	if As(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestIsCode(t *testing.T) {
	err := New(CodeForbidden, "Access denied")
	if !IsCode(err, CodeForbidden) {
		t.Fatalf("expected IsCode to match")
	}
	if IsCode(err, CodeNotFound) {
		t.Fatalf("expected IsCode mismatch")
	}
}

func TestWithDetailsAndReasonChain(t *testing.T) {
	err := New(CodeConflict, "Agent already exists").
		WithReason("An agent with this email address is already registered").
		WithDetails(map[string]string{"email": "jane@example.com"})

	details, ok := err.Details().(map[string]string)
	if !ok || details["email"] != "jane@example.com" {
		t.Fatalf("unexpected details %v", err.Details())
	}
	if err.Error() == "" {
		t.Fatalf("expected non-empty error string")
	}
}
