package modelrest

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type stringRule struct {
	validation.StringRule
	desc string
}

// NewStringRuleWithError returns a string validation rule with a custom error and schema description.
func NewStringRuleWithError(validator func(string) bool, err validation.Error, desc string) Rule {
	return stringRule{
		validation.NewStringRuleWithError(validator, err),
		desc,
	}
}

// NewStringRule returns a string validation rule using desc as both the
// error message and schema description. Attach it to a generated schema
// through [FieldSchema.Extra]; its violations report kind "format".
func NewStringRule(validator func(string) bool, desc string) Rule {
	return stringRule{
		validation.NewStringRule(validator, desc),
		desc,
	}
}

func (r stringRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if ref.Value.Description != "" && !strings.HasSuffix(ref.Value.Description, " ") {
		ref.Value.Description += " "
	}
	ref.Value.Description += r.desc
	return nil
}
