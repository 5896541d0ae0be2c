// Package value defines the literal values that can appear in statement IR
// nodes and be bound as SQL parameters.
//
// Value is a sealed interface. Only Null, String, Int and Bool implement it.
// Floats are deliberately absent: they break canonical encoding and content
// addressing of compiled queries. Use Int or a decimal String instead.
package value

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Value is a sealed interface representing a SQL literal.
type Value interface {
	value() // Sealed - only types in this package implement it
}

// Null represents SQL NULL.
type Null struct{}

func (Null) value() {}

// MarshalJSON encodes Null as JSON null for CLI output.
func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// String represents a text literal.
type String string

func (String) value() {}

// Int represents an integer literal. Always int64.
type Int int64

func (Int) value() {}

// Bool represents a boolean literal.
type Bool bool

func (Bool) value() {}

// FromAny converts a decoded Go value (YAML, CUE, JSON with UseNumber, or a
// database/sql driver value) into a Value.
func FromAny(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case []byte:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint64:
		if val > 1<<63-1 {
			return nil, fmt.Errorf("integer out of int64 range: %d", val)
		}
		return Int(val), nil
	case json.Number:
		s := string(val)
		if strings.ContainsAny(s, ".eE") {
			return nil, fmt.Errorf("floats are not supported as values: %s", s)
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("number out of int64 range: %s", s)
		}
		return Int(n), nil
	case float64:
		// YAML and CUE decode whole numbers into float64 in some paths.
		if val == float64(int64(val)) {
			return Int(int64(val)), nil
		}
		return nil, fmt.Errorf("floats are not supported as values: %v", val)
	case float32:
		return nil, fmt.Errorf("floats are not supported as values: %v", val)
	default:
		return nil, fmt.Errorf("unsupported value type: %T", v)
	}
}

// ToAny converts a Value to the Go type handed to database/sql.
func ToAny(v Value) any {
	switch val := v.(type) {
	case String:
		return string(val)
	case Int:
		return int64(val)
	case Bool:
		return bool(val)
	default:
		return nil
	}
}

// Equal reports whether two values are the same literal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a == b
}

// Format renders a value for diagnostics (not for SQL).
func Format(v Value) string {
	switch val := v.(type) {
	case nil, Null:
		return "null"
	case String:
		return strconv.Quote(string(val))
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Bool:
		return strconv.FormatBool(bool(val))
	default:
		return fmt.Sprintf("%v", val)
	}
}
