package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		problems map[string]string
		path     []string
		wantMsg  string
	}{
		{
			name: "single problem",
			problems: map[string]string{
				"name": "'name' is required",
			},
			path:    []string{"laptop"},
			wantMsg: "validation errors found in 'laptop'",
		},
		{
			name: "nested path",
			problems: map[string]string{
				"interval": "interval should be more than zero",
				"type":     "'type' is required",
			},
			path:    []string{"laptop", "cpu"},
			wantMsg: "validation errors found in 'laptop.cpu'",
		},
		{
			name:     "empty path segments are dropped",
			problems: map[string]string{"hosts": "cannot be empty"},
			path:     []string{"", "ping"},
			wantMsg:  "validation errors found in 'ping'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.problems, tt.path...)
			msg := err.Error()
			if !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("expected error message to contain %q, got %q", tt.wantMsg, msg)
			}
			for field, problem := range tt.problems {
				if !strings.Contains(msg, field+": "+problem) {
					t.Errorf("expected error message to contain %q, got %q", field+": "+problem, msg)
				}
			}
		})
	}
}

func TestValidationError_SortedOutput(t *testing.T) {
	err := NewValidationError(map[string]string{
		"type":     "b",
		"interval": "a",
	}, "cfg")

	msg := err.Error()
	if strings.Index(msg, "interval") > strings.Index(msg, "type") {
		t.Errorf("expected fields in sorted order, got %q", msg)
	}
}

func TestValidationError_Is(t *testing.T) {
	var err error = NewValidationError(map[string]string{"name": "required"}, "cfg")

	if !errors.Is(err, &ValidationError{}) {
		t.Error("expected errors.Is to match any ValidationError")
	}

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatal("expected errors.As to succeed")
	}

	var cfgErr ConfigError
	if !errors.As(err, &cfgErr) {
		t.Error("expected ValidationError to satisfy ConfigError")
	}
}

func TestValidationError_Paths(t *testing.T) {
	err := NewValidationError(map[string]string{"x": "y"}, "probe")
	err.PrependPath("laptop")
	if err.Path != "laptop.probe" {
		t.Errorf("PrependPath: got %q", err.Path)
	}
	err.AppendPath("hosts")
	if err.Path != "laptop.probe.hosts" {
		t.Errorf("AppendPath: got %q", err.Path)
	}
}

func TestMerge(t *testing.T) {
	dst := map[string]string{"name": "'name' is required"}
	Merge(dst, "probes[1]", map[string]string{"interval": "must be positive"})

	if dst["probes[1].interval"] != "must be positive" {
		t.Errorf("expected merged problem, got %v", dst)
	}
	if len(dst) != 2 {
		t.Errorf("expected 2 problems, got %d", len(dst))
	}
}

func TestNoNameError(t *testing.T) {
	err := NewNoNameError("probes")
	if got := err.Error(); got != "entity in 'probes' has no name" {
		t.Errorf("unexpected message %q", got)
	}

	err.SetIndex(3)
	err.PrependPath("laptop")
	if got := err.Error(); got != "entity in 'laptop.probes[3]' has no name" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestDuplicateFoundError(t *testing.T) {
	err := NewDuplicateFoundError("probes", "cpu")
	err.PrependPath("laptop")
	if got := err.Error(); got != "duplicate entity in 'laptop.probes.cpu'" {
		t.Errorf("unexpected message %q", got)
	}
}
