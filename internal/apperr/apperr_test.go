package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindConflict, http.StatusConflict},
		{KindInvalidCredentials, http.StatusUnauthorized},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindStore, http.StatusInternalServerError},
		{KindUpstream, http.StatusBadGateway},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.kind.Status(); got != tt.want {
			t.Errorf("%s.Status(): got %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("create user: %w", Store("failed to create user", cause))

	if KindOf(err) != KindStore {
		t.Errorf("KindOf: got %s, want store", KindOf(err))
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to remain reachable through Unwrap")
	}
	if KindOf(errors.New("plain")) != KindInternal {
		t.Error("plain errors should be internal")
	}
	if Is(nil, KindInternal) {
		t.Error("nil error must not match any kind")
	}
}

func TestInvalidCredentials_MessageIsGeneric(t *testing.T) {
	a, b := InvalidCredentials(), InvalidCredentials()
	if a.Message != b.Message || a.Message == "" {
		t.Errorf("expected identical non-empty messages, got %q and %q", a.Message, b.Message)
	}
}
