package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidRoster, "roster has %d names", 3)

	if err.Code != ErrCodeInvalidRoster {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidRoster)
	}

	if err.Message != "roster has 3 names" {
		t.Errorf("Message = %v, want %v", err.Message, "roster has 3 names")
	}

	expected := "INVALID_ROSTER: roster has 3 names"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeNetwork, cause, "failed to fetch")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if err.Error() != "NETWORK_ERROR: failed to fetch: underlying error" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidAlias, "x"), ErrCodeInvalidAlias, true},
		{"non-matching code", New(ErrCodeInvalidAlias, "x"), ErrCodeNetwork, false},
		{"outer code", Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeNetwork, true},
		{"inner code", Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInvalidInput, true},
		{"fmt wrapped", fmt.Errorf("ctx: %w", New(ErrCodeFileNotFound, "x")), ErrCodeFileNotFound, true},
		{"non-Error type", errors.New("plain error"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeAliasNotCurated, "x")); got != ErrCodeAliasNotCurated {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeAliasNotCurated)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidConfig, "bad value")); got != "bad value" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(Wrap(ErrCodeInvalidConfig, errors.New("eof"), "parse")); got != "parse: eof" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q", got)
	}
}
