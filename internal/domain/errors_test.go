package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("username", "required")

	if got := err.Error(); got != "validation: username: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "username", Message: "required"},
		{Field: "password", Message: "required"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrUnauthorized, ErrForbidden, ErrConflict, ErrTokenCollision,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}

func TestImportErrors_UnwrapToValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"missing field", &MissingFieldError{Column: "Conta"}, `missing required field "Conta"`},
		{"invalid date", &InvalidDateError{Raw: "31/02"}, `invalid date "31/02"`},
		{"invalid amount", &InvalidAmountError{Raw: "abc"}, `invalid amount "abc"`},
		{"unknown column", &UnknownColumnError{Column: "Foo"}, `unknown column "Foo"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, ErrValidation) {
				t.Errorf("%T should unwrap to ErrValidation", tt.err)
			}
			if got := tt.err.Error(); got != tt.msg {
				t.Errorf("Error() = %q, want %q", got, tt.msg)
			}
		})
	}
}

func TestRowError_CarriesPosition(t *testing.T) {
	t.Parallel()

	inner := &InvalidAmountError{Raw: "1,2,3"}
	err := error(&RowError{Line: 4, Column: "Valor previsto", Raw: "1,2,3", Err: inner})

	if got, want := err.Error(), `line 4, column "Valor previsto": invalid amount "1,2,3"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	var amountErr *InvalidAmountError
	if !errors.As(err, &amountErr) {
		t.Fatal("errors.As should find InvalidAmountError")
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("RowError should unwrap down to ErrValidation")
	}

	noColumn := &RowError{Line: 2, Err: errors.New("wrong number of fields")}
	if got := noColumn.Error(); got != "line 2: wrong number of fields" {
		t.Errorf("Error() = %q", got)
	}
}

func TestStoreError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("person 42: %w", ErrAlreadyExists)
	err := &StoreError{Op: "create person", Err: cause}

	if !errors.Is(err, ErrAlreadyExists) {
		t.Error("StoreError should unwrap to its cause")
	}
	if errors.Is(err, ErrValidation) {
		t.Error("StoreError must not look like a validation error")
	}
}
