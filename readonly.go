package modelrest

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// readOnlyRule marks a field as not writable on updates. The validator
// enforces it only when a current instance is present (an update);
// Validate is a no-op because the check needs that context.
type readOnlyRule struct{}

func (readOnlyRule) Validate(any) error { return nil }

func (readOnlyRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.ReadOnly = true
	return nil
}
