package domain

import "slices"

// ValueKind tells the display layer how to render a published value
type ValueKind string

const (
	KindScalar  ValueKind = "scalar"
	KindMapping ValueKind = "mapping"
	KindList    ValueKind = "list"
	KindTable   ValueKind = "table"
)

// NoData is shown for values that were never measured
const NoData = "-"

// Value is the published result of one probe run.
// Mapping keys are kept in Keys to give the display a stable row order.
type Value struct {
	Kind    ValueKind         `json:"kind"`
	Scalar  string            `json:"scalar,omitempty"`
	Keys    []string          `json:"keys,omitempty"`
	Mapping map[string]string `json:"mapping,omitempty"`
	List    []string          `json:"list,omitempty"`
	Table   [][]string        `json:"table,omitempty"`
}

// Scalar creates a single-string value
func Scalar(s string) Value {
	return Value{Kind: KindScalar, Scalar: s}
}

// List creates an ordered list value
func List(items []string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{Kind: KindList, List: items}
}

// Table creates an ordered table value
func Table(rows [][]string) Value {
	if rows == nil {
		rows = [][]string{}
	}
	return Value{Kind: KindTable, Table: rows}
}

// EmptyMapping creates a mapping with no rows
func EmptyMapping() Value {
	return Value{Kind: KindMapping, Keys: []string{}, Mapping: map[string]string{}}
}

// Set adds or replaces a mapping row. New keys are appended to the row order.
func (v *Value) Set(key, val string) {
	if v.Mapping == nil {
		v.Kind = KindMapping
		v.Mapping = make(map[string]string)
	}
	if _, ok := v.Mapping[key]; !ok {
		v.Keys = append(v.Keys, key)
	}
	v.Mapping[key] = val
}

// Get returns a mapping row
func (v Value) Get(key string) (string, bool) {
	val, ok := v.Mapping[key]
	return val, ok
}

// Clone returns a deep copy so published values never share memory with
// the state a probe keeps mutating.
func (v Value) Clone() Value {
	out := Value{
		Kind:   v.Kind,
		Scalar: v.Scalar,
		Keys:   slices.Clone(v.Keys),
		List:   slices.Clone(v.List),
	}
	if v.Mapping != nil {
		out.Mapping = make(map[string]string, len(v.Mapping))
		for k, val := range v.Mapping {
			out.Mapping[k] = val
		}
	}
	if v.Table != nil {
		out.Table = make([][]string, len(v.Table))
		for i, row := range v.Table {
			out.Table[i] = slices.Clone(row)
		}
	}
	return out
}
