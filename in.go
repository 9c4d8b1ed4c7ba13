package modelrest

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// enum returns a validation rule that checks if a value is one of the
// field's declared enum values.
func enum(values []string) Rule {
	vals := make([]any, len(values))
	want := make([]string, len(values))
	for i, v := range values {
		vals[i] = v
		want[i] = fmt.Sprintf("'%v'", v)
	}
	return &enumRule{
		validation.In(vals...).Error(fmt.Sprintf("must be one of %s", strings.Join(want, ", "))),
		vals,
	}
}

type enumRule struct {
	validation.InRule
	values []any
}

func (r *enumRule) Validate(value any) error {
	if err := r.InRule.Validate(value); err != nil {
		return fmt.Errorf("%s got '%v'", err, value)
	}
	return nil
}

func (r *enumRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Enum = r.values
	return nil
}
