package modelrest

// Record is the embeddable persistence-state base for entity structs.
// The storage layer marks instances persisted after a write and marks
// relationships loaded after fetching them; the engine only reads this
// state. The zero value is an unpersisted instance with no loaded
// relationships.
type Record struct {
	persisted bool
	loaded    map[string]bool
}

// Persisted reports whether the instance has a backing storage record.
func (r *Record) Persisted() bool { return r.persisted }

// MarkPersisted marks the instance as backed by a storage record.
func (r *Record) MarkPersisted() { r.persisted = true }

// MarkLoaded marks the named relationships as materialized in memory.
// Unmarked relationships are skipped entirely during export, so a lazy
// storage layer is never queried behind the caller's back.
func (r *Record) MarkLoaded(names ...string) {
	if r.loaded == nil {
		r.loaded = make(map[string]bool, len(names))
	}
	for _, n := range names {
		r.loaded[n] = true
	}
}

// RelationshipLoaded reports whether the named relationship is loaded.
func (r *Record) RelationshipLoaded(name string) bool { return r.loaded[name] }

type persister interface {
	Persisted() bool
}

type relationshipLoader interface {
	RelationshipLoaded(name string) bool
}

// Persisted is the persistence-state boundary query. It returns
// [NotAnEntityError] when obj does not carry persistence state (it
// neither embeds [Record] nor implements the same methods).
func Persisted(obj any) (bool, error) {
	if p, ok := obj.(persister); ok {
		return p.Persisted(), nil
	}
	return false, &NotAnEntityError{Value: obj}
}
