package utils

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

const IDSeparator = "|"

var (
	EmptyNameError   = errors.New("'name' is required")
	InvalidNameError = errors.New("'name' cannot contain '|', '=' or whitespace")
)

// CheckName validates a probe or instance name. Names end up inside
// canonical IDs, so separator characters are rejected.
func CheckName(name string) error {
	if len(name) == 0 {
		return EmptyNameError
	}
	if strings.ContainsAny(name, IDSeparator+"= \t\n") {
		return InvalidNameError
	}

	return nil
}

func formatKV(w io.Writer, key string, value string) (int, error) {
	return fmt.Fprintf(w, "%s=%s", key, value)
}

func printSep(w io.Writer) (int, error) {
	return fmt.Fprintf(w, "%s", IDSeparator)
}

// EntityID identifies a configured entity (instance, probe) by kind and labels.
type EntityID struct {
	Kind   string
	Labels map[string]string
}

// Label returns the value of a label or "" when absent.
func (e EntityID) Label(key string) string {
	if e.Labels == nil {
		return ""
	}
	return e.Labels[key]
}

// Canonical renders the ID with sorted keys, e.g.
// kind=probe|instance=laptop|name=cpu|type=cpu.
func (e EntityID) Canonical() string {
	keys := make([]string, 0, len(e.Labels)+1)
	for k := range e.Labels {
		keys = append(keys, k)
	}
	keys = append(keys, "kind")

	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			printSep(&b)
		}
		if k == "kind" {
			formatKV(&b, k, e.Kind)
			continue
		}
		formatKV(&b, k, e.Labels[k])
	}

	return b.String()
}

func (e EntityID) String() string {
	return e.Canonical()
}

func ParseEntityID(str string) EntityID {
	e := EntityID{
		Kind:   "",
		Labels: make(map[string]string),
	}

	if str == "" {
		return e
	}

	for label := range strings.SplitSeq(str, IDSeparator) {
		key, value, ok := strings.Cut(label, "=")
		if !ok {
			continue
		}
		if key == "kind" {
			e.Kind = value
			continue
		}
		e.Labels[key] = value
	}
	return e
}
