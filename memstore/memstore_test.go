package memstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadine/modelrest"
	"github.com/fadine/modelrest/memstore"
)

type note struct {
	modelrest.Record `json:"-" model:"-"`

	ID   string `json:"id" model:"primary"`
	Slug string `json:"slug" model:"unique"`
	Body string `json:"body" model:"null"`
}

func TestInsertAssignsULIDAndMarksPersisted(t *testing.T) {
	s := memstore.New()
	n := &note{Slug: "first"}

	require.NoError(t, s.Insert(n))
	assert.True(t, n.Persisted())
	assert.Len(t, n.ID, 26, "empty string primary keys get a fresh ULID")

	// An explicit primary key is kept.
	m := &note{ID: "fixed", Slug: "second"}
	require.NoError(t, s.Insert(m))
	assert.Equal(t, "fixed", m.ID)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []any{n, m}, s.All())
}

func TestLookup(t *testing.T) {
	s := memstore.New()
	n := &note{Slug: "hello"}
	require.NoError(t, s.Insert(n))

	lookup := s.Lookup()

	match, err := lookup("slug", "hello")
	require.NoError(t, err)
	assert.Same(t, any(n), match)

	match, err = lookup("slug", "missing")
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestLookupDrivesUniqueValidation(t *testing.T) {
	s := memstore.New()
	require.NoError(t, s.Insert(&note{Slug: "taken"}))

	d, err := modelrest.DescriptorFor(note{})
	require.NoError(t, err)
	schema, err := modelrest.GenerateSchema(d)
	require.NoError(t, err)
	val := modelrest.NewValidator(schema,
		modelrest.WithDescriptor(d),
		modelrest.WithLookup(s.Lookup()),
	)

	err = val.Validate(map[string]any{"slug": "taken"}, nil)
	var rej *modelrest.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, []string{"slug"}, rej.Fields())

	assert.NoError(t, val.Validate(map[string]any{"slug": "free"}, nil))
}

func TestGet(t *testing.T) {
	s := memstore.New()
	n := &note{Slug: "x"}
	require.NoError(t, s.Insert(n))

	assert.Same(t, any(n), s.Get("id", n.ID))
	assert.Nil(t, s.Get("id", "nope"))
}

func TestInsertRejectsNonEntities(t *testing.T) {
	s := memstore.New()
	assert.Error(t, s.Insert(42))
	assert.Error(t, s.Insert(&struct{ X int }{1}))
	assert.Equal(t, 0, s.Len())
}
