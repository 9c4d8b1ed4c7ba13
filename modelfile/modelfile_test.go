package modelfile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadine/modelrest"
	"github.com/fadine/modelrest/modelfile"
)

const userYAML = `
entities:
  - name: user
    fields:
      - name: id
        type: integer
        primary: true
      - name: email
        type: string
        unique: true
        maxlength: 120
      - name: active
        type: boolean
        default: false
      - name: role
        type: string
        enum: [admin, member]
        default: member
      - name: born
        type: date
        nullable: true
    relationships:
      - name: posts
        many: true
`

func TestLoad(t *testing.T) {
	descriptors, err := modelfile.Load(strings.NewReader(userYAML))
	require.NoError(t, err)
	require.Len(t, descriptors, 1)

	d := descriptors[0]
	assert.Equal(t, "user", d.Name)
	assert.Equal(t, []string{"id", "email", "active", "role", "born"}, d.FieldNames())

	id := d.PrimaryKey()
	require.NotNil(t, id)
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, modelrest.Integer, id.Type)

	email := d.Field("email")
	require.NotNil(t, email)
	assert.True(t, email.Unique)
	assert.Equal(t, 120, email.MaxLength)

	active := d.Field("active")
	require.NotNil(t, active)
	assert.True(t, active.HasDefault)
	assert.Equal(t, false, active.Default)

	role := d.Field("role")
	require.NotNil(t, role)
	assert.Equal(t, []string{"admin", "member"}, role.Enum)
	assert.Equal(t, "member", role.Default)

	posts := d.Relationship("posts")
	require.NotNil(t, posts)
	assert.True(t, posts.Many)
}

func TestLoadedDescriptorValidates(t *testing.T) {
	descriptors, err := modelfile.Load(strings.NewReader(userYAML))
	require.NoError(t, err)

	schema, err := modelrest.GenerateSchema(descriptors[0])
	require.NoError(t, err)
	assert.True(t, schema["email"].Required)
	assert.True(t, schema["id"].ReadOnly)

	val := modelrest.NewValidator(schema,
		modelrest.WithDescriptor(descriptors[0]),
		modelrest.WithLookup(func(string, any) (any, error) { return nil, nil }),
	)
	assert.NoError(t, val.Validate(map[string]any{"email": "a@b.c", "born": nil}, nil))

	err = val.Validate(map[string]any{"email": "a@b.c", "role": "root"}, nil)
	var rej *modelrest.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, []string{"role"}, rej.Fields())
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"unknown type":   "entities:\n  - name: user\n    fields:\n      - name: total\n        type: decimal\n",
		"no name":        "entities:\n  - fields:\n      - name: id\n        type: integer\n",
		"no fields":      "entities:\n  - name: user\n",
		"unknown yaml":   "entities:\n  - name: user\n    fields:\n      - name: id\n        type: integer\n        widget: true\n",
		"malformed yaml": "entities: [",
	}
	for name, src := range cases {
		_, err := modelfile.Load(strings.NewReader(src))
		assert.Error(t, err, name)
	}

	_, err := modelfile.Load(strings.NewReader(cases["unknown type"]))
	assert.Contains(t, err.Error(), `unknown type "decimal"`)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte(userYAML), 0o644))

	descriptors, err := modelfile.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal(t, "user", descriptors[0].Name)

	_, err = modelfile.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
