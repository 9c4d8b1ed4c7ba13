package modelrest

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// TypeRule returns the mandatory type rule for a semantic type. Date
// and datetime values must be strings matching [DateLayout] and
// [DatetimeLayout] respectively.
func TypeRule(sem SemanticType) Rule {
	return typeRule{sem: sem}
}

type typeRule struct {
	sem SemanticType
}

// Validate checks that a decoded JSON value is compatible with the
// semantic type. Numbers arrive as float64 from encoding/json; an
// integral float is accepted for integer fields.
func (r typeRule) Validate(value any) error {
	if value == nil {
		return errors.New("must not be null")
	}
	switch r.sem {
	case Integer:
		switch v := value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return nil
		case float64:
			if v != math.Trunc(v) {
				return errors.New("must be an integer")
			}
			return nil
		case float32:
			if float64(v) != math.Trunc(float64(v)) {
				return errors.New("must be an integer")
			}
			return nil
		case json.Number:
			if _, err := v.Int64(); err != nil {
				return errors.New("must be an integer")
			}
			return nil
		default:
			return errors.New("must be an integer")
		}
	case Boolean:
		if _, ok := value.(bool); !ok {
			return errors.New("must be a boolean")
		}
		return nil
	case String:
		if _, ok := value.(string); !ok {
			return errors.New("must be a string")
		}
		return nil
	case Date:
		if _, ok := value.(string); !ok {
			return errors.New("must be a date string")
		}
		return validation.Date(DateLayout).Validate(value)
	case Datetime:
		if _, ok := value.(string); !ok {
			return errors.New("must be a datetime string")
		}
		return validation.Date(DatetimeLayout).Validate(value)
	}
	return fmt.Errorf("unknown semantic type %q", r.sem)
}

// Describe implements [Rule] by recording the layout of date-like
// fields. The property's base type is set by the schema conversion.
func (r typeRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	switch r.sem {
	case Date:
		ref.Value.Format = "date"
	case Datetime:
		ref.Value.Format = "date-time"
	}
	return nil
}
