package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/fadine/modelrest"
)

// SchemaRefForEntity generates an OpenAPI schema for the entity type of
// value by building its descriptor, generating the default validation
// schema, and letting every rule describe itself.
func SchemaRefForEntity(value any, opts ...modelrest.Option) (*openapi3.SchemaRef, error) {
	d, err := modelrest.DescriptorFor(value)
	if err != nil {
		return nil, err
	}
	schema, err := modelrest.GenerateSchema(d, opts...)
	if err != nil {
		return nil, err
	}
	return SchemaRefForSchema(schema)
}

// SchemaRefForSchema converts an already generated validation schema
// into an OpenAPI schema reference.
func SchemaRefForSchema(schema modelrest.Schema) (*openapi3.SchemaRef, error) {
	obj, err := schema.OpenAPISchema()
	if err != nil {
		return nil, err
	}
	return &openapi3.SchemaRef{Value: obj}, nil
}
