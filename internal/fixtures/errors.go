package fixtures

import (
	"errors"
	"fmt"
)

var (
	// ErrFixtureMissing indicates the fixture file does not exist.
	ErrFixtureMissing = errors.New("fixture file missing")
	// ErrFixtureUnreadable indicates the file exists but could not be read.
	ErrFixtureUnreadable = errors.New("fixture file unreadable")
	// ErrFixtureMalformed indicates the file is not a JSON object.
	ErrFixtureMalformed = errors.New("fixture is not a valid JSON object")
	// ErrEnvelopeMissing indicates the envelope key is absent.
	ErrEnvelopeMissing = errors.New("fixture envelope key missing")
)

// LoadError ties a load failure to the fixture that caused it.
type LoadError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("fixtures: load %s from %s: %v", e.Kind, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
