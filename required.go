package modelrest

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// requiredRule marks a field as required. Presence is checked by the
// validator against the document, not against the value, so Validate
// is a no-op; the rule exists for schema documentation.
type requiredRule struct{}

func (requiredRule) Validate(any) error { return nil }

func (requiredRule) Describe(name string, schema *openapi3.Schema, _ *openapi3.SchemaRef) error {
	schema.Required = append(schema.Required, name)
	return nil
}
