package modelrest

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// uniqueRule marks a field as unique across persisted state. The check
// itself lives in the validator: it needs a [LookupFunc] and, on
// updates, the identity of the current instance, neither of which a
// value rule can see. Validate is therefore a no-op.
type uniqueRule struct{}

func (uniqueRule) Validate(any) error { return nil }

func (uniqueRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if ref.Value.Description != "" && !strings.HasSuffix(ref.Value.Description, " ") {
		ref.Value.Description += " "
	}
	ref.Value.Description += "must be unique"
	return nil
}
