package catalog

import (
	"strings"
	"testing"
)

func TestExpandEnvStrict_Expands(t *testing.T) {
	t.Setenv("REDIS_PASSWORD", "hunter2")

	out, err := expandEnvStrict("redis://:${REDIS_PASSWORD}@localhost:6379/0")
	if err != nil {
		t.Fatalf("expandEnvStrict() error = %v", err)
	}
	if out != "redis://:hunter2@localhost:6379/0" {
		t.Errorf("unexpected expansion: %q", out)
	}
}

func TestExpandEnvStrict_MissingVarErrors(t *testing.T) {
	t.Setenv("PRESENT", "ok")

	_, err := expandEnvStrict("a=${PRESENT} b=${MISSING}")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "MISSING") {
		t.Fatalf("expected missing var name in error, got: %v", err)
	}
}

func TestExpandEnvStrict_DollarEscape(t *testing.T) {
	t.Setenv("X", "y")

	out, err := expandEnvStrict("$$${X}")
	if err != nil {
		t.Fatalf("expandEnvStrict() error = %v", err)
	}
	if out != "$y" {
		t.Fatalf("expandEnvStrict() = %q, want %q", out, "$y")
	}
}
