// Package fixtures loads the static document fixtures once at startup and
// keeps their payloads in an immutable store.
package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sync/errgroup"
)

// Store holds the unwrapped payload of every loaded fixture. It is safe for
// concurrent use because nothing mutates it after Load returns.
type Store struct {
	catalog  Catalog
	payloads map[Kind]json.RawMessage
}

// LoadDir loads the default catalog from a directory on disk.
func LoadDir(ctx context.Context, dir string) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("fixtures: stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fixtures: %s is not a directory", dir)
	}
	return Load(ctx, os.DirFS(dir), DefaultCatalog)
}

// Load reads every catalog entry from fsys. Either all fixtures load or an
// error is returned; a partial store is never produced.
func Load(ctx context.Context, fsys fs.FS, catalog Catalog) (*Store, error) {
	if len(catalog) == 0 {
		return nil, errors.New("fixtures: empty catalog")
	}
	payloads := make([]json.RawMessage, len(catalog))

	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range catalog {
		i, entry := i, entry
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			payload, err := readPayload(fsys, entry.File)
			if err != nil {
				return &LoadError{Kind: entry.Kind, Path: entry.File, Err: err}
			}
			payloads[i] = payload
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	store := &Store{catalog: catalog, payloads: make(map[Kind]json.RawMessage, len(catalog))}
	for i, entry := range catalog {
		store.payloads[entry.Kind] = payloads[i]
	}
	return store, nil
}

func readPayload(fsys fs.FS, name string) (json.RawMessage, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFixtureMissing
		}
		return nil, fmt.Errorf("%w: %v", ErrFixtureUnreadable, err)
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFixtureMalformed, err)
	}
	if envelope == nil {
		return nil, fmt.Errorf("%w: top-level value is null", ErrFixtureMalformed)
	}
	payload, ok := envelope[EnvelopeKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrEnvelopeMissing, EnvelopeKey)
	}
	return payload, nil
}

// Payload returns a copy of the payload loaded for kind.
func (s *Store) Payload(kind Kind) (json.RawMessage, bool) {
	if s == nil {
		return nil, false
	}
	payload, ok := s.payloads[kind]
	if !ok {
		return nil, false
	}
	out := make(json.RawMessage, len(payload))
	copy(out, payload)
	return out, true
}

// Kinds lists the loaded kinds in catalog order.
func (s *Store) Kinds() []Kind {
	if s == nil {
		return nil
	}
	return s.catalog.Kinds()
}

// Size reports the payload size in bytes for kind.
func (s *Store) Size(kind Kind) int {
	if s == nil {
		return 0
	}
	return len(s.payloads[kind])
}

// Len reports how many fixtures are held.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.payloads)
}
