// pkg/logging/logger_test.go
package logging

import (
	"context"
	"errors"
	"os"
	"testing"
)

// TestNewLogger tests logger construction
func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	if logger == nil || logger.Logger == nil {
		t.Fatal("NewLogger() returned an unusable logger")
	}
}

// TestGetLogLevelFromEnv tests ARENA_LOG_LEVEL parsing
func TestGetLogLevelFromEnv(t *testing.T) {
	original := os.Getenv("ARENA_LOG_LEVEL")
	defer func() {
		if original != "" {
			os.Setenv("ARENA_LOG_LEVEL", original)
		} else {
			os.Unsetenv("ARENA_LOG_LEVEL")
		}
	}()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"Debug", "DEBUG", "DEBUG"},
		{"LowercaseWarn", "warn", "WARN"},
		{"Warning", "WARNING", "WARN"},
		{"Error", "ERROR", "ERROR"},
		{"Unset", "", "INFO"},
		{"Garbage", "LOUD", "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value == "" {
				os.Unsetenv("ARENA_LOG_LEVEL")
			} else {
				os.Setenv("ARENA_LOG_LEVEL", tt.value)
			}
			if got := getLogLevelFromEnv().String(); got != tt.want {
				t.Errorf("getLogLevelFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCorrelationID tests context propagation of correlation IDs
func TestCorrelationID(t *testing.T) {
	ctx := context.Background()
	if got := GetCorrelationID(ctx); got != "" {
		t.Errorf("GetCorrelationID(empty ctx) = %q, want empty", got)
	}

	ctx = WithCorrelationID(ctx, "abc123")
	if got := GetCorrelationID(ctx); got != "abc123" {
		t.Errorf("GetCorrelationID() = %q, want abc123", got)
	}

	generated := WithCorrelationID(context.Background(), "")
	if got := GetCorrelationID(generated); got == "" {
		t.Error("WithCorrelationID(\"\") did not generate an ID")
	}
}

// TestGenerateCorrelationID tests ID format and uniqueness
func TestGenerateCorrelationID(t *testing.T) {
	a := GenerateCorrelationID()
	b := GenerateCorrelationID()
	if len(a) != 16 {
		t.Errorf("len(GenerateCorrelationID()) = %d, want 16", len(a))
	}
	if a == b {
		t.Error("consecutive correlation IDs collided")
	}
}

// TestWrapError tests error wrapping and the nil passthrough
func TestWrapError(t *testing.T) {
	if got := WrapError(nil, "context"); got != nil {
		t.Errorf("WrapError(nil) = %v, want nil", got)
	}

	base := errors.New("boom")
	wrapped := WrapError(base, "loading ship %d", 7)
	if wrapped == nil {
		t.Fatal("WrapError() = nil")
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error lost the original")
	}
	if wrapped.Error() != "loading ship 7: boom" {
		t.Errorf("wrapped message = %q, want 'loading ship 7: boom'", wrapped.Error())
	}
}
