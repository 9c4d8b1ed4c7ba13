package modelrest

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"time"
)

// Apply copies a validated document onto an entity instance, field by
// field. Only keys present in the schema are assigned; unknown keys
// are silently ignored, matching the validator's unknown-field policy.
// Values are converted to the field's Go type (JSON numbers arrive as
// float64 and are narrowed for integer fields). The instance must be a
// struct pointer.
func Apply(schema Schema, instance any, doc map[string]any) error {
	rv := reflect.ValueOf(instance)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return &InvalidInstanceError{Value: instance, Reason: "need a non-nil struct pointer"}
	}
	d, err := DescriptorFor(instance)
	if err != nil {
		return &InvalidInstanceError{Value: instance, Reason: "not an entity type"}
	}

	structVal := rv.Elem()
	for name, value := range doc {
		if _, ok := schema[name]; !ok {
			continue
		}
		fd := d.Field(name)
		if fd == nil || len(fd.index) == 0 {
			continue
		}
		if err := setValue(fd.value(structVal), value); err != nil {
			return fmt.Errorf("modelrest: field %q: %w", name, err)
		}
	}
	return nil
}

func setValue(fv reflect.Value, value any) error {
	if value == nil {
		if fv.Kind() != reflect.Ptr {
			return fmt.Errorf("cannot assign null to %s", fv.Type())
		}
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	}

	if fv.Kind() == reflect.Ptr {
		elem := reflect.New(fv.Type().Elem())
		if err := setValue(elem.Elem(), value); err != nil {
			return err
		}
		fv.Set(elem)
		return nil
	}

	if fv.Type() == timeType {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("cannot assign %T to %s", value, fv.Type())
		}
		t, err := time.Parse(DatetimeLayout, s)
		if err != nil {
			if t, err = time.Parse(DateLayout, s); err != nil {
				return fmt.Errorf("invalid time value %q", s)
			}
		}
		fv.Set(reflect.ValueOf(t))
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("cannot assign %T to %s", value, fv.Type())
		}
		fv.SetString(s)
	case reflect.Bool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("cannot assign %T to %s", value, fv.Type())
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := asInt64(value)
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := asInt64(value)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("cannot assign negative value to %s", fv.Type())
		}
		fv.SetUint(uint64(n))
	default:
		vv := reflect.ValueOf(value)
		if !vv.Type().AssignableTo(fv.Type()) {
			if !vv.Type().ConvertibleTo(fv.Type()) {
				return fmt.Errorf("cannot assign %T to %s", value, fv.Type())
			}
			vv = vv.Convert(fv.Type())
		}
		fv.Set(vv)
	}
	return nil
}

func asInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("cannot assign fractional value %v to integer field", v)
		}
		return int64(v), nil
	case json.Number:
		return v.Int64()
	default:
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Int8, reflect.Int16, reflect.Int32,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return rv.Convert(reflect.TypeOf(int64(0))).Int(), nil
		}
		return 0, fmt.Errorf("cannot assign %T to integer field", value)
	}
}
