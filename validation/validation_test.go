package validation

import (
	"errors"
	"testing"
)

type tokenInfoPayload struct {
	UserID string   `json:"user_id" validate:"required"`
	Scope  []string `json:"scope" validate:"required"`
}

func TestValidate_OK(t *testing.T) {
	err := Validate(&tokenInfoPayload{UserID: "bob", Scope: []string{"current_time"}})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_MissingFieldUsesJSONTag(t *testing.T) {
	err := Validate(&tokenInfoPayload{Scope: []string{"current_time"}})
	if err == nil {
		t.Fatal("expected validation failure")
	}
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if verr.First() != "user_id" {
		t.Errorf("expected offending field user_id, got %q", verr.First())
	}
}

func TestValidate_NilSlice(t *testing.T) {
	err := Validate(&tokenInfoPayload{UserID: "bob"})
	if err == nil {
		t.Fatal("expected validation failure for missing scope")
	}
	var verr *Error
	if !errors.As(err, &verr) || verr.First() != "scope" {
		t.Errorf("expected offending field scope, got %v", err)
	}
}
