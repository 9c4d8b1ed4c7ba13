package modelrest

import (
	"fmt"
	"reflect"
)

// Validator checks documents against a generated schema. It is
// stateless per call and safe for concurrent use.
type Validator struct {
	schema     Schema
	descriptor *Descriptor
	lookup     LookupFunc
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithLookup injects the uniqueness-lookup capability. Mandatory when
// the schema carries any unique rule.
func WithLookup(f LookupFunc) ValidatorOption {
	return func(v *Validator) { v.lookup = f }
}

// WithDescriptor binds the descriptor the schema was generated from,
// enabling nullability checks and primary-key identity comparison on
// updates.
func WithDescriptor(d *Descriptor) ValidatorOption {
	return func(v *Validator) { v.descriptor = d }
}

// NewValidator returns a validator over the given schema.
func NewValidator(schema Schema, opts ...ValidatorOption) *Validator {
	v := &Validator{schema: schema}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Validate checks document against the schema and returns nil or a
// *[Rejection] listing every violation ordered by field. Passing a
// non-nil current instance makes this an update: readonly rules fire
// and the unique check excuses a match with the same identity.
//
// Unknown document fields are ignored. All fields are checked, the
// first violation never short-circuits the rest. A schema with a
// unique rule and no injected lookup fails with [ConfigurationError]
// before any field is checked. Lookup errors propagate unmodified.
func (v *Validator) Validate(doc map[string]any, current any) error {
	if v.schema.HasUnique() && v.lookup == nil {
		return &ConfigurationError{
			Reason: "schema contains a unique rule but no lookup capability was supplied; pass WithLookup to NewValidator",
		}
	}

	var violations []Violation
	add := func(field, kind, msg string) {
		violations = append(violations, Violation{Field: field, Kind: kind, Message: msg})
	}

	for _, name := range v.schema.Names() {
		fs := v.schema[name]
		value, present := doc[name]

		if !present {
			if fs.Required {
				add(name, KindRequired, "is required")
			}
			continue
		}

		if fs.ReadOnly && current != nil {
			add(name, KindReadOnly, "is readonly and cannot be updated")
			continue
		}

		if value == nil {
			if !v.nullable(name) {
				add(name, KindType, "must not be null")
			}
			continue
		}

		if err := TypeRule(fs.sem).Validate(value); err != nil {
			add(name, KindType, err.Error())
			continue
		}
		if fs.MaxLength > 0 {
			if err := maxLength(fs.MaxLength).Validate(value); err != nil {
				add(name, KindMaxLength, err.Error())
			}
		}
		if len(fs.Enum) > 0 {
			if err := enum(fs.Enum).Validate(value); err != nil {
				add(name, KindEnum, err.Error())
			}
		}
		for _, rule := range fs.Extra {
			if err := rule.Validate(value); err != nil {
				add(name, KindFormat, err.Error())
			}
		}

		if fs.Unique {
			match, err := v.lookup(name, value)
			if err != nil {
				return err
			}
			if !isNilValue(match) && !v.sameIdentity(match, current) {
				add(name, KindUnique, fmt.Sprintf("must be unique, but '%v' already exists", value))
			}
		}
	}

	if len(violations) > 0 {
		return &Rejection{Violations: violations}
	}
	return nil
}

func (v *Validator) nullable(name string) bool {
	if v.descriptor == nil {
		return false
	}
	fd := v.descriptor.Field(name)
	return fd != nil && fd.Nullable
}

// sameIdentity reports whether a lookup match refers to the instance
// currently being updated. With a bound descriptor the comparison is
// primary-key equality; the match may be an entity instance or a map
// keyed by wire field names. Without one, plain equality of the two
// values decides.
func (v *Validator) sameIdentity(match, current any) bool {
	if current == nil {
		return false
	}
	if match == current {
		return true
	}

	var pk *FieldDescriptor
	if v.descriptor != nil {
		pk = v.descriptor.PrimaryKey()
	}
	if pk == nil {
		return reflect.DeepEqual(match, current)
	}

	mv, ok := pkValue(match, pk.Name)
	if !ok {
		return false
	}
	cv, ok := pkValue(current, pk.Name)
	if !ok {
		return false
	}
	return looseEqual(mv, cv)
}

// pkValue extracts the named primary-key value from an entity instance
// or a map keyed by wire field names.
func pkValue(obj any, name string) (any, bool) {
	if m, ok := obj.(map[string]any); ok {
		v, ok := m[name]
		return v, ok
	}
	d, err := DescriptorFor(obj)
	if err != nil {
		return nil, false
	}
	fd := d.Field(name)
	if fd == nil || len(fd.index) == 0 {
		return nil, false
	}
	rv := reflect.Indirect(reflect.ValueOf(obj))
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	return fd.value(rv).Interface(), true
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

var floatType = reflect.TypeOf(float64(0))

// looseEqual compares two scalars, normalizing numeric types so an
// int64 from storage equals a float64 from a decoded document.
func looseEqual(a, b any) bool {
	av, aok := toFloat(a)
	bv, bok := toFloat(b)
	if aok && bok {
		return av == bv
	}
	if aok != bok {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if !rv.IsValid() || !rv.Type().ConvertibleTo(floatType) || rv.Kind() == reflect.String {
		return 0, false
	}
	return rv.Convert(floatType).Float(), true
}
