package validation

import (
	"testing"

	"github.com/sidelines/sidelines/internal/apperr"
)

type signup struct {
	Username string `json:"username" validate:"required,max=10"`
	Email    string `json:"email" validate:"required,email"`
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(signup{Username: "alice", Email: "a@x.com"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStruct_FieldsUseJSONNames(t *testing.T) {
	err := Struct(signup{Username: "a-very-long-name", Email: ""})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	e := err.(*apperr.Error)
	if e.Fields["username"] != "is too long" {
		t.Errorf("username: got %q", e.Fields["username"])
	}
	if e.Fields["email"] != "is required" {
		t.Errorf("email: got %q", e.Fields["email"])
	}
	if e.Message != "all required fields must be provided" {
		t.Errorf("message: got %q", e.Message)
	}
}

func TestStruct_BadEmail(t *testing.T) {
	err := Struct(signup{Username: "alice", Email: "not-an-email"})
	e, ok := err.(*apperr.Error)
	if !ok || e.Fields["email"] != "must be a valid email address" {
		t.Errorf("unexpected error: %v", err)
	}
}
