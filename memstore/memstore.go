// Package memstore is an in-memory storage backend for tests and
// examples. It implements the engine's lookup contract and performs the
// persistence marking a real storage layer would do, without any of the
// transactional machinery.
package memstore

import (
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/fadine/modelrest"
)

// Store holds instances of a single entity type. The zero value is not
// usable; create one with [New].
type Store struct {
	mu       sync.RWMutex
	rows     []any
	exporter *modelrest.Exporter
}

// New returns an empty store.
func New() *Store {
	return &Store{exporter: modelrest.NewExporter()}
}

// Insert stores an entity instance and marks it persisted. When the
// primary key is an empty string it is assigned a fresh ULID first.
// The instance must be a struct pointer embedding [modelrest.Record].
func (s *Store) Insert(rec any) error {
	d, err := modelrest.DescriptorFor(rec)
	if err != nil {
		return err
	}

	if pk := d.PrimaryKey(); pk != nil && pk.Type == modelrest.String {
		// An unpersisted instance exports an unset string pk as nil.
		if cur, ok := fieldValue(rec, pk.Name); !ok || cur == nil || cur == "" {
			schema, err := modelrest.GenerateSchema(d, modelrest.Include(pk.Name), modelrest.WithoutRules("readonly"))
			if err != nil {
				return err
			}
			if err := modelrest.Apply(schema, rec, map[string]any{pk.Name: ulid.Make().String()}); err != nil {
				return err
			}
		}
	}

	marker, ok := rec.(interface{ MarkPersisted() })
	if !ok {
		return fmt.Errorf("memstore: %T does not carry persistence state", rec)
	}
	marker.MarkPersisted()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rec)
	return nil
}

// Lookup returns the engine's uniqueness-lookup capability bound to
// this store: it scans for an instance whose exported field equals the
// value.
func (s *Store) Lookup() modelrest.LookupFunc {
	return func(field string, value any) (any, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		for _, rec := range s.rows {
			data, err := s.exporter.Export(rec, modelrest.Include(field))
			if err != nil {
				return nil, err
			}
			m, ok := data.(map[string]any)
			if !ok {
				continue
			}
			if got, ok := m[field]; ok && equal(got, value) {
				return rec, nil
			}
		}
		return nil, nil
	}
}

// Get returns the first instance whose field equals value, or nil.
func (s *Store) Get(field string, value any) any {
	rec, _ := s.Lookup()(field, value)
	return rec
}

// All returns the stored instances in insertion order.
func (s *Store) All() []any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]any, len(s.rows))
	copy(out, s.rows)
	return out
}

// Len returns the number of stored instances.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

func fieldValue(rec any, name string) (any, bool) {
	data, err := modelrest.NewExporter().Export(rec, modelrest.Include(name))
	if err != nil {
		return nil, false
	}
	m, ok := data.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[name]
	return v, ok
}

// equal compares loosely across numeric types, the way values come
// back from a decoded JSON document versus a Go field.
func equal(a, b any) bool {
	return a == b || fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}
