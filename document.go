package modelrest

import (
	"github.com/getkin/kin-openapi/openapi3"
)

type (
	// RuleFunc is a function type that validates a value and returns an error if invalid.
	RuleFunc func(value any) error

	// Rule is the interface that all validation rules must implement.
	// Validate checks a document value; Describe documents the rule
	// into an OpenAPI 3 property schema.
	Rule interface {
		Validate(value any) error
		Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error
	}

	// LookupFunc is the injected uniqueness-lookup capability. It
	// queries persisted state for an instance whose field equals value
	// and returns it, or nil when there is no match. The returned
	// instance may be an entity or a map keyed by wire field names.
	// Errors from the underlying storage propagate unmodified.
	LookupFunc func(field string, value any) (any, error)
)
