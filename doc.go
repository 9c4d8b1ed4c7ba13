// Package modelrest derives REST resource behavior from data-model
// definitions: validation schemas, uniqueness checks, and recursive
// serialization come from entity metadata instead of hand-written code.
//
// Describe an entity with `model` struct tags and embed [Record] for
// persistence state:
//
//	type User struct {
//	    modelrest.Record `json:"-" model:"-"`
//
//	    ID     string `json:"id" model:"primary"`
//	    Email  string `json:"email" model:"unique,maxlength=120"`
//	    Active bool   `json:"active" model:"default=false"`
//	}
//
// Then generate a schema, validate inbound documents, and export
// instances:
//
//	d, _ := modelrest.DescriptorFor(User{})
//	schema, _ := modelrest.GenerateSchema(d)
//	v := modelrest.NewValidator(schema, modelrest.WithDescriptor(d), modelrest.WithLookup(lookup))
//	err := v.Validate(doc, nil) // nil or *Rejection with every violation
//	out, _ := modelrest.NewExporter("org_id").Export(&user)
//
// The engine is storage-agnostic: the uniqueness check is an injected
// [LookupFunc] and persistence state is whatever the storage layer marks
// on the instance. Every rule implements both Validate and Describe, so
// a generated schema also documents itself as OpenAPI 3.
//
// Sub-packages:
//   - openapi – OpenAPI document helpers and endpoint registration
//   - transform – document normalization utilities
//   - is – common string format rules
//   - modelfile – YAML-declared entity descriptors
//   - pglookup – Postgres-backed uniqueness lookup
//   - memstore – in-memory storage backend for tests and examples
package modelrest
