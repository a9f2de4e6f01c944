package validation

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

type ConfigError interface {
	error
	PrependPath(path string) ConfigError
}

type ValidationError struct {
	Path     string
	Problems map[string]string
}

func NewValidationError(problems map[string]string, path ...string) *ValidationError {
	return &ValidationError{joinPath(path...), problems}
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Problems))
	for field := range e.Problems {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	fmt.Fprintf(&b, "validation errors found in '%s':\n", e.Path)
	for _, field := range fields {
		fmt.Fprintf(&b, "  %s: %s\n", field, e.Problems[field])
	}
	return b.String()
}

func (e *ValidationError) Is(other error) bool {
	_, ok := other.(*ValidationError)
	return ok
}

func (e *ValidationError) PrependPath(path string) ConfigError {
	e.Path = joinPath(path, e.Path)
	return e
}

func (e *ValidationError) AppendPath(path string) ConfigError {
	e.Path = joinPath(e.Path, path)
	return e
}

type Validator interface {
	// Returns a map of field and human readable explanation of what's wrong
	Valid(ctx context.Context) (problems map[string]string)
}

// Merge copies nested problems into dst, prefixing every field with prefix.
func Merge(dst map[string]string, prefix string, nested map[string]string) {
	for field, problem := range nested {
		dst[prefix+"."+field] = problem
	}
}

type DuplicateFoundError struct {
	Path string
}

func NewDuplicateFoundError(path ...string) *DuplicateFoundError {
	return &DuplicateFoundError{joinPath(path...)}
}

func (e *DuplicateFoundError) Error() string {
	return fmt.Sprintf("duplicate entity in '%s'", e.Path)
}

func (e *DuplicateFoundError) PrependPath(path string) ConfigError {
	e.Path = joinPath(path, e.Path)
	return e
}

type NoNameError struct {
	Path  string
	Index int
}

func NewNoNameError(path ...string) *NoNameError {
	return &NoNameError{joinPath(path...), -1}
}

func (e *NoNameError) Error() string {
	var path string
	if e.Index >= 0 {
		path = fmt.Sprintf("%s[%d]", e.Path, e.Index)
	} else {
		path = e.Path
	}

	return fmt.Sprintf("entity in '%s' has no name", path)
}

func (e *NoNameError) SetIndex(i int) {
	e.Index = i
}

func (e *NoNameError) PrependPath(path string) ConfigError {
	e.Path = joinPath(path, e.Path)
	return e
}

func joinPath(parts ...string) string {
	nonEmpty := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ".")
}
