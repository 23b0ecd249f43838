package declaration

import (
	"encoding/json"
	"sort"
	"strings"
)

// Field describes a single property extracted from a declaration body.
type Field struct {
	Name     string `json:"name"`
	Optional bool   `json:"optional"`
	Type     string `json:"type"`
}

// Type is a named declaration together with the fields found in its body.
// Types produced from bodiless declarations (type aliases, empty enums)
// carry a nil field slice.
type Type struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Model is an ordered collection of extracted types. Order follows first
// appearance in the input text; redeclaring a name replaces its fields but
// keeps the original position.
type Model struct {
	types []Type
	index map[string]int
}

// Len reports the number of types in the model.
func (m Model) Len() int {
	return len(m.types)
}

// Names returns the type names in declaration order.
func (m Model) Names() []string {
	names := make([]string, len(m.types))
	for i, t := range m.types {
		names[i] = t.Name
	}
	return names
}

// Types returns a copy of the typed entries in declaration order.
func (m Model) Types() []Type {
	out := make([]Type, len(m.types))
	copy(out, m.types)
	return out
}

// Type looks up a declaration by name.
func (m Model) Type(name string) (Type, bool) {
	if m.index == nil {
		return Type{}, false
	}
	i, ok := m.index[name]
	if !ok {
		return Type{}, false
	}
	return m.types[i], true
}

// Equal reports whether two models contain the same types in the same
// order. It exists so cmp.Diff can compare models without reaching into
// unexported fields.
func (m Model) Equal(other Model) bool {
	if len(m.types) != len(other.types) {
		return false
	}
	for i, t := range m.types {
		o := other.types[i]
		if t.Name != o.Name || len(t.Fields) != len(o.Fields) {
			return false
		}
		for j, f := range t.Fields {
			if f != o.Fields[j] {
				return false
			}
		}
	}
	return true
}

// Filter returns a model reduced to the named types, keeping declaration
// order. Names match case-insensitively; blank entries are ignored. An
// empty filter returns the model unchanged.
func (m Model) Filter(names ...string) Model {
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		token := strings.ToLower(strings.TrimSpace(name))
		if token == "" {
			continue
		}
		wanted[token] = struct{}{}
	}
	if len(wanted) == 0 {
		return m
	}

	var filtered Model
	for _, t := range m.types {
		if _, ok := wanted[strings.ToLower(t.Name)]; ok {
			filtered.upsert(t)
		}
	}
	return filtered
}

// MarshalJSON encodes the model as an ordered array of types.
func (m Model) MarshalJSON() ([]byte, error) {
	if m.types == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(m.types)
}

func (m *Model) upsert(t Type) {
	if m.index == nil {
		m.index = map[string]int{}
	}
	if i, ok := m.index[t.Name]; ok {
		m.types[i] = t
		return
	}
	m.index[t.Name] = len(m.types)
	m.types = append(m.types, t)
}

// FieldNames returns the field names of a type sorted alphabetically.
// Useful for assertions that should not depend on declaration order.
func (t Type) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	sort.Strings(names)
	return names
}
