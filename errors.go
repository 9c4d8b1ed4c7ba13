package modelrest

import (
	"fmt"
	"reflect"
)

// UnsupportedTypeError reports a field whose Go type has no semantic
// type mapping. It aborts the whole descriptor build: a schema missing
// a type rule for a present field would be a silent validation hole.
type UnsupportedTypeError struct {
	Entity   string
	Field    string
	GoType   reflect.Type // nil for descriptors not backed by a Go type
	Declared string       // declared type name when GoType is nil
}

func (e *UnsupportedTypeError) Error() string {
	if e.GoType != nil {
		return fmt.Sprintf("modelrest: field %s.%s has unsupported type %s", e.Entity, e.Field, e.GoType)
	}
	return fmt.Sprintf("modelrest: field %s.%s has unsupported type %q", e.Entity, e.Field, e.Declared)
}

// ConfigurationError reports a required capability that was not
// supplied, such as a unique rule with no lookup. It is raised before
// any field is checked.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "modelrest: " + e.Reason
}

// NotAnEntityError is returned by [Persisted] and [DescriptorFor] when
// the value is not a recognized entity.
type NotAnEntityError struct {
	Value any
}

func (e *NotAnEntityError) Error() string {
	return fmt.Sprintf("modelrest: %T is not an entity", e.Value)
}

// InvalidInstanceError is returned by [Exporter.Export] and [Apply]
// when the value is not a usable entity instance.
type InvalidInstanceError struct {
	Value  any
	Reason string
}

func (e *InvalidInstanceError) Error() string {
	return fmt.Sprintf("modelrest: invalid instance %T: %s", e.Value, e.Reason)
}
