package modelrest_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v "github.com/fadine/modelrest"
)

func userValidator(t *testing.T, opts ...v.ValidatorOption) *v.Validator {
	t.Helper()
	d, err := v.DescriptorFor(testUser{})
	require.NoError(t, err)
	schema, err := v.GenerateSchema(d)
	require.NoError(t, err)
	opts = append([]v.ValidatorOption{v.WithDescriptor(d), v.WithLookup(lookupNone)}, opts...)
	return v.NewValidator(schema, opts...)
}

func rejectionOf(t *testing.T, err error) *v.Rejection {
	t.Helper()
	var rej *v.Rejection
	require.ErrorAs(t, err, &rej)
	return rej
}

func TestValidateAccepts(t *testing.T) {
	val := userValidator(t)
	err := val.Validate(map[string]any{
		"email":  "ada@example.com",
		"active": true,
		"role":   "admin",
		"born":   "1990-01-02",
	}, nil)
	assert.NoError(t, err)
}

func TestValidateRequired(t *testing.T) {
	val := userValidator(t)
	rej := rejectionOf(t, val.Validate(map[string]any{}, nil))

	require.Len(t, rej.Violations, 1)
	assert.Equal(t, "email", rej.Violations[0].Field)
	assert.Equal(t, v.KindRequired, rej.Violations[0].Kind)
}

func TestValidateCollectsAllViolationsInFieldOrder(t *testing.T) {
	val := userValidator(t)
	rej := rejectionOf(t, val.Validate(map[string]any{
		"email": 7,
		"role":  "root",
		"born":  "yesterday",
	}, nil))

	require.Len(t, rej.Violations, 3)
	assert.Equal(t, []string{"email", "role", "born"}, rej.Fields())
	assert.Equal(t, v.KindType, rej.Violations[0].Kind)
	assert.Equal(t, v.KindEnum, rej.Violations[1].Kind)
	assert.Equal(t, v.KindType, rej.Violations[2].Kind)
	assert.Contains(t, rej.Violations[1].Message, "got 'root'")
}

func TestValidateTypeMismatches(t *testing.T) {
	val := userValidator(t)

	cases := map[string]map[string]any{
		"string":   {"email": "a@b.c", "active": "yes"},
		"integer":  {"email": "a@b.c", "id": 1.5},
		"fraction": {"email": "a@b.c", "id": "one"},
		"date":     {"email": "a@b.c", "born": "02.01.1990"},
		"datetime": {"email": "a@b.c", "created_at": "not-a-time"},
	}
	for name, doc := range cases {
		rej := rejectionOf(t, val.Validate(doc, nil))
		require.Len(t, rej.Violations, 1, name)
		assert.Equal(t, v.KindType, rej.Violations[0].Kind, name)
	}

	// Integral floats are how encoding/json delivers integers.
	assert.NoError(t, val.Validate(map[string]any{"email": "a@b.c", "id": float64(3)}, nil))
	assert.NoError(t, val.Validate(map[string]any{
		"email":      "a@b.c",
		"created_at": "2024-05-01T10:00:00Z",
	}, nil))
}

func TestValidateMaxLength(t *testing.T) {
	val := userValidator(t)
	long := make([]byte, 121)
	for i := range long {
		long[i] = 'a'
	}
	rej := rejectionOf(t, val.Validate(map[string]any{"email": string(long)}, nil))

	require.Len(t, rej.Violations, 1)
	assert.Equal(t, v.KindMaxLength, rej.Violations[0].Kind)
}

func TestValidateNull(t *testing.T) {
	val := userValidator(t)

	// Nullable fields accept explicit null.
	assert.NoError(t, val.Validate(map[string]any{
		"email":    "a@b.c",
		"born":     nil,
		"nickname": nil,
		"org_id":   nil,
	}, nil))

	rej := rejectionOf(t, val.Validate(map[string]any{"email": nil}, nil))
	require.Len(t, rej.Violations, 1)
	assert.Equal(t, v.KindType, rej.Violations[0].Kind)
	assert.Equal(t, "must not be null", rej.Violations[0].Message)
}

func TestValidateIgnoresUnknownFields(t *testing.T) {
	val := userValidator(t)
	assert.NoError(t, val.Validate(map[string]any{
		"email":   "a@b.c",
		"unknown": "whatever",
		"posts":   []any{"not", "checked"},
	}, nil))
}

func TestValidateReadOnlyOnUpdateOnly(t *testing.T) {
	val := userValidator(t)
	doc := map[string]any{"email": "a@b.c", "id": 1}

	// Create: the readonly rule does not fire.
	assert.NoError(t, val.Validate(doc, nil))

	// Update: it does.
	current := &testUser{ID: 1, Email: "a@b.c"}
	rej := rejectionOf(t, val.Validate(doc, current))
	require.Len(t, rej.Violations, 1)
	assert.Equal(t, "id", rej.Violations[0].Field)
	assert.Equal(t, v.KindReadOnly, rej.Violations[0].Kind)
}

func TestValidateUniqueViolation(t *testing.T) {
	other := &testUser{ID: 2, Email: "taken@example.com"}
	val := userValidator(t, v.WithLookup(func(field string, value any) (any, error) {
		if field == "email" && value == "taken@example.com" {
			return other, nil
		}
		return nil, nil
	}))

	rej := rejectionOf(t, val.Validate(map[string]any{"email": "taken@example.com"}, nil))
	require.Len(t, rej.Violations, 1)
	assert.Equal(t, v.KindUnique, rej.Violations[0].Kind)
	assert.Contains(t, rej.Violations[0].Message, "taken@example.com")

	assert.NoError(t, val.Validate(map[string]any{"email": "free@example.com"}, nil))
}

func TestValidateUniqueExcusesSameIdentity(t *testing.T) {
	current := &testUser{ID: 7, Email: "me@example.com"}

	// The lookup may return an entity instance...
	val := userValidator(t, v.WithLookup(func(string, any) (any, error) {
		return &testUser{ID: 7, Email: "me@example.com"}, nil
	}))
	assert.NoError(t, val.Validate(map[string]any{"email": "me@example.com"}, current))

	// ...or a map keyed by wire field names, with a storage-flavored
	// numeric type for the key.
	val = userValidator(t, v.WithLookup(func(string, any) (any, error) {
		return map[string]any{"id": int64(7)}, nil
	}))
	assert.NoError(t, val.Validate(map[string]any{"email": "me@example.com"}, current))

	// A different identity is still a violation.
	val = userValidator(t, v.WithLookup(func(string, any) (any, error) {
		return map[string]any{"id": int64(8)}, nil
	}))
	rej := rejectionOf(t, val.Validate(map[string]any{"email": "me@example.com"}, current))
	require.Len(t, rej.Violations, 1)
	assert.Equal(t, v.KindUnique, rej.Violations[0].Kind)
}

func TestValidateConfigurationError(t *testing.T) {
	d, err := v.DescriptorFor(testUser{})
	require.NoError(t, err)
	schema, err := v.GenerateSchema(d)
	require.NoError(t, err)

	val := v.NewValidator(schema, v.WithDescriptor(d))
	verr := val.Validate(map[string]any{"email": 42}, nil)

	var cfg *v.ConfigurationError
	require.ErrorAs(t, verr, &cfg, "missing lookup fails before any field check")

	// Without a unique rule in the schema, no lookup is needed.
	schema, err = v.GenerateSchema(d, v.WithoutRules("unique"))
	require.NoError(t, err)
	val = v.NewValidator(schema, v.WithDescriptor(d))
	assert.NoError(t, val.Validate(map[string]any{"email": "a@b.c"}, nil))
}

func TestValidateLookupErrorPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	val := userValidator(t, v.WithLookup(func(string, any) (any, error) {
		return nil, boom
	}))

	err := val.Validate(map[string]any{"email": "a@b.c"}, nil)
	assert.ErrorIs(t, err, boom)
	var rej *v.Rejection
	assert.False(t, errors.As(err, &rej), "a lookup failure is not a rejection")
}

func TestValidateExtraRules(t *testing.T) {
	d, err := v.DescriptorFor(testUser{})
	require.NoError(t, err)
	schema, err := v.GenerateSchema(d)
	require.NoError(t, err)
	schema["email"].Extra = append(schema["email"].Extra, v.Custom(func(value any) error {
		if value == "noreply@example.com" {
			return errors.New("must be a reachable address")
		}
		return nil
	}, "reachable address"))

	val := v.NewValidator(schema, v.WithDescriptor(d), v.WithLookup(lookupNone))
	rej := rejectionOf(t, val.Validate(map[string]any{"email": "noreply@example.com"}, nil))
	require.Len(t, rej.Violations, 1)
	assert.Equal(t, v.KindFormat, rej.Violations[0].Kind)

	assert.NoError(t, val.Validate(map[string]any{"email": "human@example.com"}, nil))
}

func TestValidateIsIdempotent(t *testing.T) {
	val := userValidator(t)
	doc := map[string]any{"role": "root"}

	first := rejectionOf(t, val.Validate(doc, nil))
	second := rejectionOf(t, val.Validate(doc, nil))
	assert.Equal(t, first.Violations, second.Violations)
}
