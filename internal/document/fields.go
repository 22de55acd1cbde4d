package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/etaxql/etaxql/internal/scalar"
)

// ErrNotObject reports a value that should hold a nested record but does not.
var ErrNotObject = errors.New("document: not an object")

// ErrNotList reports a value that should hold a list but does not.
var ErrNotList = errors.New("document: not a list")

// FieldError reports a fixture value that cannot be served as its declared
// type. It surfaces as a GraphQL error on the field alone.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// object is a fixture record kept in raw form. Values are coerced when a
// field is resolved, never at load time.
type object map[string]json.RawMessage

func parseObject(raw json.RawMessage) (object, error) {
	if isNull(raw) {
		return nil, nil
	}
	if first(raw) != '{' {
		return nil, ErrNotObject
	}
	var o object
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, err
	}
	if o == nil {
		o = object{}
	}
	return o, nil
}

// value returns the raw value stored under name; nil when absent or null.
func (o object) value(name string) json.RawMessage {
	raw, ok := o[name]
	if !ok || isNull(raw) {
		return nil
	}
	return raw
}

func decodeScalar[T any](o object, name string) (*T, error) {
	raw := o.value(name)
	if raw == nil {
		return nil, nil
	}
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, &FieldError{Field: name, Err: err}
	}
	return v, nil
}

func (o object) str(name string) (*scalar.String, error) {
	return decodeScalar[scalar.String](o, name)
}

func (o object) integer(name string) (*scalar.Int, error) {
	return decodeScalar[scalar.Int](o, name)
}

func (o object) float(name string) (*scalar.Float, error) {
	return decodeScalar[scalar.Float](o, name)
}

func (o object) boolean(name string) (*scalar.Boolean, error) {
	return decodeScalar[scalar.Boolean](o, name)
}

func (o object) child(name string) (object, error) {
	raw := o.value(name)
	if raw == nil {
		return nil, nil
	}
	child, err := parseObject(raw)
	if err != nil {
		return nil, &FieldError{Field: name, Err: err}
	}
	return child, nil
}

// list decodes a list of records. Null elements stay nil.
func (o object) list(name string) ([]object, error) {
	raw := o.value(name)
	if raw == nil {
		return nil, nil
	}
	if first(raw) != '[' {
		return nil, &FieldError{Field: name, Err: ErrNotList}
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, &FieldError{Field: name, Err: err}
	}
	out := make([]object, len(elems))
	for i, elem := range elems {
		child, err := parseObject(elem)
		if err != nil {
			return nil, &FieldError{Field: fmt.Sprintf("%s[%d]", name, i), Err: err}
		}
		out[i] = child
	}
	return out, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func first(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
