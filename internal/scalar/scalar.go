// Package scalar provides the GraphQL built-in scalars as Go types that decode
// leniently from fixture JSON and serialize back unchanged.
//
// Decoding follows GraphQL result coercion: a numeric string is accepted for
// Int and Float, a number for String, and so on. Values that coercion rejects
// fail with ErrNotRepresentable.
package scalar

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotRepresentable reports a JSON value that cannot be coerced into the
// target scalar.
var ErrNotRepresentable = errors.New("scalar: value not representable")

// Int is the GraphQL Int scalar (signed 32-bit).
type Int int32

// Float is the GraphQL Float scalar.
type Float float64

// String is the GraphQL String scalar.
type String string

// Boolean is the GraphQL Boolean scalar.
type Boolean bool

// NewInt returns a pointer to v as an Int.
func NewInt(v int32) *Int {
	i := Int(v)
	return &i
}

// NewFloat returns a pointer to v as a Float.
func NewFloat(v float64) *Float {
	f := Float(v)
	return &f
}

// NewString returns a pointer to v as a String.
func NewString(v string) *String {
	s := String(v)
	return &s
}

// NewBoolean returns a pointer to v as a Boolean.
func NewBoolean(v bool) *Boolean {
	b := Boolean(v)
	return &b
}

// ImplementsGraphQLType binds Int to the built-in Int type.
func (*Int) ImplementsGraphQLType(name string) bool { return name == "Int" }

// UnmarshalGraphQL accepts Int input values. The schema has no arguments, so
// this only runs if a future field takes one.
func (i *Int) UnmarshalGraphQL(input interface{}) error {
	switch v := input.(type) {
	case int32:
		*i = Int(v)
	case int:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return notRepresentable("Int", v)
		}
		*i = Int(v)
	default:
		return notRepresentable("Int", input)
	}
	return nil
}

// UnmarshalJSON decodes integral numbers, numeric strings and booleans.
func (i *Int) UnmarshalJSON(data []byte) error {
	f, err := decodeNumber("Int", data)
	if err != nil {
		return err
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return notRepresentable("Int", string(data))
	}
	*i = Int(int32(f))
	return nil
}

// MarshalJSON writes the integer as a JSON number.
func (i Int) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(i), 10), nil
}

// ImplementsGraphQLType binds Float to the built-in Float type.
func (*Float) ImplementsGraphQLType(name string) bool { return name == "Float" }

// UnmarshalGraphQL accepts Float input values.
func (f *Float) UnmarshalGraphQL(input interface{}) error {
	switch v := input.(type) {
	case float64:
		*f = Float(v)
	case int32:
		*f = Float(v)
	case int:
		*f = Float(v)
	default:
		return notRepresentable("Float", input)
	}
	return nil
}

// UnmarshalJSON decodes numbers, numeric strings and booleans.
func (f *Float) UnmarshalJSON(data []byte) error {
	v, err := decodeNumber("Float", data)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// MarshalJSON writes the shortest representation that round-trips.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, notRepresentable("Float", v)
	}
	return json.Marshal(v)
}

// ImplementsGraphQLType binds String to the built-in String type.
func (*String) ImplementsGraphQLType(name string) bool { return name == "String" }

// UnmarshalGraphQL accepts String input values.
func (s *String) UnmarshalGraphQL(input interface{}) error {
	v, ok := input.(string)
	if !ok {
		return notRepresentable("String", input)
	}
	*s = String(v)
	return nil
}

// UnmarshalJSON decodes strings, and renders numbers and booleans as text.
func (s *String) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return notRepresentable("String", "")
	}
	switch data[0] {
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = String(v)
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = String(strconv.FormatBool(v))
	case '{', '[':
		return notRepresentable("String", string(data))
	default:
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return notRepresentable("String", string(data))
		}
		*s = String(formatNumber(v))
	}
	return nil
}

// MarshalJSON writes the value as a JSON string.
func (s String) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// ImplementsGraphQLType binds Boolean to the built-in Boolean type.
func (*Boolean) ImplementsGraphQLType(name string) bool { return name == "Boolean" }

// UnmarshalGraphQL accepts Boolean input values.
func (b *Boolean) UnmarshalGraphQL(input interface{}) error {
	v, ok := input.(bool)
	if !ok {
		return notRepresentable("Boolean", input)
	}
	*b = Boolean(v)
	return nil
}

// UnmarshalJSON decodes booleans; numbers are true when non-zero.
func (b *Boolean) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return notRepresentable("Boolean", "")
	}
	switch data[0] {
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*b = Boolean(v)
	case '"', '{', '[':
		return notRepresentable("Boolean", string(data))
	default:
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return notRepresentable("Boolean", string(data))
		}
		*b = Boolean(v != 0)
	}
	return nil
}

// MarshalJSON writes the value as a JSON boolean.
func (b Boolean) MarshalJSON() ([]byte, error) {
	return strconv.AppendBool(nil, bool(b)), nil
}

// decodeNumber reads a JSON number, a numeric string or a boolean as float64.
func decodeNumber(kind string, data []byte) (float64, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0, notRepresentable(kind, "")
	}
	switch data[0] {
	case '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return 0, err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return 0, notRepresentable(kind, `""`)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, notRepresentable(kind, raw)
		}
		return v, nil
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(data, &v); err != nil {
			return 0, err
		}
		if v {
			return 1, nil
		}
		return 0, nil
	case '{', '[':
		return 0, notRepresentable(kind, string(data))
	default:
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return 0, notRepresentable(kind, string(data))
		}
		return v, nil
	}
}

// formatNumber renders v the way JavaScript's Number#toString does: plain
// decimals for magnitudes in [1e-6, 1e21), exponent notation otherwise.
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	if abs := math.Abs(v); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + exp[:1] + digits
}

func notRepresentable(kind string, value interface{}) error {
	return fmt.Errorf("%w: %s cannot represent %v", ErrNotRepresentable, kind, value)
}
