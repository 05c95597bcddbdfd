package node

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
)

// Values carries node inputs and outputs as loosely typed key/value pairs,
// matching what arrives from JSON. The typed accessors normalize the usual
// JSON decodings (float64 numbers, base64 strings for bytes).
type Values map[string]any

// Has reports whether a non-nil value is present under name.
func (v Values) Has(name string) bool {
	val, ok := v[name]
	return ok && val != nil
}

// String returns the string value under name, or "" when absent.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Int returns the integer value under name. JSON numbers decode as float64;
// both representations are accepted. Returns 0 when absent.
func (v Values) Int(name string) (int, error) {
	val, ok := v[name]
	if !ok || val == nil {
		return 0, nil
	}
	switch n := val.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("node: input %q: %v is not an integer", name, n)
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("node: input %q: %w", name, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("node: input %q: unexpected type %T", name, val)
	}
}

// Bool returns the boolean value under name, or false when absent.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Bytes returns the binary value under name. []byte values pass through;
// strings are decoded as standard base64. Returns nil when absent.
func (v Values) Bytes(name string) ([]byte, error) {
	val, ok := v[name]
	if !ok || val == nil {
		return nil, nil
	}
	switch b := val.(type) {
	case []byte:
		return b, nil
	case string:
		raw, err := base64.StdEncoding.DecodeString(b)
		if err != nil {
			return nil, fmt.Errorf("node: input %q: invalid base64: %w", name, err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("node: input %q: unexpected type %T", name, val)
	}
}
