package modelrest

import (
	"fmt"
	"strings"
)

// Violation kinds carried by [Violation.Kind].
const (
	KindRequired  = "required"
	KindType      = "type_mismatch"
	KindReadOnly  = "readonly_field"
	KindMaxLength = "maxlength_exceeded"
	KindEnum      = "enum_invalid"
	KindUnique    = "unique_violation"
	KindFormat    = "format"
)

// Violation is a single field-level rule failure.
type Violation struct {
	Field   string `json:"field"`
	Kind    string `json:"code"`
	Message string `json:"message"`
}

// Rejection is the structured result of a failed validation. It carries
// every violation, ordered by field, so callers can report all problems
// at once. It is an expected outcome, not an exceptional one: check for
// it with errors.As and treat it as "invalid input".
type Rejection struct {
	Violations []Violation
}

func (r *Rejection) Error() string {
	parts := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return "modelrest: validation rejected: " + strings.Join(parts, "; ")
}

// Fields returns the distinct field names with violations, in order.
func (r *Rejection) Fields() []string {
	seen := map[string]bool{}
	var fields []string
	for _, v := range r.Violations {
		if !seen[v.Field] {
			seen[v.Field] = true
			fields = append(fields, v.Field)
		}
	}
	return fields
}
