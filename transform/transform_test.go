package transform_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fadine/modelrest/transform"
)

func TestDocTrimSpace(t *testing.T) {
	doc := map[string]any{
		"email": "  ada@example.com ",
		"count": 3,
		"tags":  []any{" a ", 1, " b"},
		"nested": map[string]any{
			"name": " Ada ",
		},
	}
	transform.DocTrimSpace(doc)

	assert.Equal(t, map[string]any{
		"email": "ada@example.com",
		"count": 3,
		"tags":  []any{"a", 1, "b"},
		"nested": map[string]any{
			"name": "Ada",
		},
	}, doc)
}

func TestDocToLower(t *testing.T) {
	doc := map[string]any{"email": "Ada@Example.COM", "active": true}
	transform.DocToLower(doc)
	assert.Equal(t, "ada@example.com", doc["email"])
	assert.Equal(t, true, doc["active"])
}

func TestDocFieldFunc(t *testing.T) {
	doc := map[string]any{"email": "Ada@Example.COM", "name": "Ada", "id": 1}
	transform.DocFieldFunc(doc, strings.ToLower, "email", "id", "missing")

	assert.Equal(t, "ada@example.com", doc["email"])
	assert.Equal(t, "Ada", doc["name"], "untouched, not named")
	assert.Equal(t, 1, doc["id"], "non-string fields are left alone")
}

func TestDocMulti(t *testing.T) {
	doc := map[string]any{"email": "  Ada@Example.COM "}
	transform.DocMulti(doc, transform.DocTrimSpace, func(d map[string]any) {
		transform.DocFieldFunc(d, strings.ToLower, "email")
	})
	assert.Equal(t, "ada@example.com", doc["email"])
}
