package modelrest

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type maxLengthRule struct {
	validation.LengthRule
	max int
}

// maxLength returns a validation rule bounding a string's rune length.
func maxLength(max int) Rule {
	return &maxLengthRule{
		validation.RuneLength(0, max),
		max,
	}
}

func (r *maxLengthRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	n := uint64(r.max)
	ref.Value.MaxLength = &n
	return nil
}
