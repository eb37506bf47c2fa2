// Package album reconciles album-level tag values across the tracks of one album.
package album

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the shape of a Value.
type Kind uint8

// Value kinds.
const (
	KindEmpty Kind = iota
	KindScalar
	KindTuple
)

// Value is the normalized form of one field's value on one track.
//
// A Value is Empty, a Scalar holding one string, or a Tuple holding two or
// more strings in tag order. A single-element list and a bare string normalize
// to the same Scalar. The zero Value is Empty.
type Value struct {
	parts []string
	kind  Kind
}

// Empty is the value of a missing or blank field.
var Empty = Value{}

// Scalar returns the normalized value of a bare string.
func Scalar(s string) Value {
	if s == "" {
		return Empty
	}
	return Value{kind: KindScalar, parts: []string{s}}
}

// Of returns the normalized value of an ordered list of strings.
// Order and duplicates are preserved for lists of two or more.
func Of(values ...string) Value {
	switch len(values) {
	case 0:
		return Empty
	case 1:
		return Scalar(values[0])
	default:
		parts := make([]string, len(values))
		copy(parts, values)
		return Value{kind: KindTuple, parts: parts}
	}
}

// Kind reports the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsEmpty reports whether v is Empty.
func (v Value) IsEmpty() bool {
	return v.kind == KindEmpty
}

// Strings returns a copy of the raw parts. Empty returns nil.
func (v Value) Strings() []string {
	if v.kind == KindEmpty {
		return nil
	}
	out := make([]string, len(v.parts))
	copy(out, v.parts)
	return out
}

// Equal reports structural equality.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind || len(v.parts) != len(other.parts) {
		return false
	}
	for i := range v.parts {
		if v.parts[i] != other.parts[i] {
			return false
		}
	}
	return true
}

// Key returns a string that is equal for two values iff the values are Equal.
// Parts are length-prefixed so no separator can be forged from tag content.
func (v Value) Key() string {
	var b strings.Builder
	b.WriteByte(byte('0' + v.kind))
	for _, p := range v.parts {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(len(p)))
		b.WriteByte(':')
		b.WriteString(p)
	}
	return b.String()
}

// String renders the value for reports.
func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return v.parts[0]
	case KindTuple:
		quoted := make([]string, len(v.parts))
		for i, p := range v.parts {
			quoted[i] = strconv.Quote(p)
		}
		return "(" + strings.Join(quoted, ", ") + ")"
	default:
		return ""
	}
}

// MarshalJSON encodes Empty as null, Scalar as a string and Tuple as an array.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindScalar:
		return json.Marshal(v.parts[0])
	case KindTuple:
		return json.Marshal(v.parts)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, a string or an array of strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = Empty
	case string:
		*v = Scalar(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("album value: array element is %T, not string", e)
			}
			parts = append(parts, s)
		}
		*v = Of(parts...)
	default:
		return fmt.Errorf("album value: cannot decode %s", data)
	}
	return nil
}
