package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := New(NotFound, "blog not found")
	if got := KindOf(err); got != NotFound {
		t.Errorf("KindOf: got %q, want %q", got, NotFound)
	}

	// Wrapped errors keep their kind.
	wrapped := fmt.Errorf("handler: %w", New(Conflict, "duplicate slug"))
	if got := KindOf(wrapped); got != Conflict {
		t.Errorf("KindOf(wrapped): got %q, want %q", got, Conflict)
	}

	// Unclassified errors default to Internal.
	if got := KindOf(errors.New("boom")); got != Internal {
		t.Errorf("KindOf(plain): got %q, want %q", got, Internal)
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{NotFound, http.StatusNotFound},
		{ValidationFailed, http.StatusBadRequest},
		{Unauthorized, http.StatusUnauthorized},
		{Forbidden, http.StatusForbidden},
		{Conflict, http.StatusConflict},
		{Internal, http.StatusInternalServerError},
		{Kind("unknown"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := Status(tt.kind); got != tt.want {
			t.Errorf("Status(%q) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	err := Newf(ValidationFailed, "field %q is required", "title")
	if err.Error() != `field "title" is required` {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
