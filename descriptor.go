package modelrest

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

// SemanticType is the validation-level type label of a field.
type SemanticType string

// Supported semantic types. Date and Datetime validate as strings
// against their layouts.
const (
	Integer  SemanticType = "integer"
	String   SemanticType = "string"
	Boolean  SemanticType = "boolean"
	Date     SemanticType = "date"
	Datetime SemanticType = "datetime"
)

// Layouts used to validate Date and Datetime string values.
const (
	DateLayout     = "2006-01-02"
	DatetimeLayout = time.RFC3339
)

// wireTypes maps each semantic type to the type label emitted in
// generated schemas. A semantic type missing here is unsupported.
var wireTypes = map[SemanticType]string{
	Integer:  "integer",
	String:   "string",
	Boolean:  "boolean",
	Date:     "string",
	Datetime: "string",
}

// FieldDescriptor describes one column-like field of an entity type.
type FieldDescriptor struct {
	Name       string
	Type       SemanticType
	MaxLength  int // 0 means unbounded
	Nullable   bool
	HasDefault bool
	Default    any // static scalar default; nil when server-assigned or not statically known
	PrimaryKey bool
	Unique     bool
	Enum       []string

	index []int // struct field index; empty when the descriptor has no backing Go type
}

// Relationship describes a named link to another entity type.
type Relationship struct {
	Name string
	Many bool

	target reflect.Type
	index  []int
}

// Descriptor is the static, immutable description of an entity type.
// Build it once with [DescriptorFor] (cached per type) or
// [NewDescriptor]; never mutate it afterwards. Concurrent readers need
// no synchronization.
type Descriptor struct {
	Name          string
	Fields        []FieldDescriptor
	Relationships []Relationship

	typ    reflect.Type
	byName map[string]int
}

// Field returns the field descriptor with the given name, or nil.
func (d *Descriptor) Field(name string) *FieldDescriptor {
	if i, ok := d.byName[name]; ok {
		return &d.Fields[i]
	}
	return nil
}

// PrimaryKey returns the primary-key field descriptor, or nil.
func (d *Descriptor) PrimaryKey() *FieldDescriptor {
	for i := range d.Fields {
		if d.Fields[i].PrimaryKey {
			return &d.Fields[i]
		}
	}
	return nil
}

// FieldNames returns all field names in declaration order.
func (d *Descriptor) FieldNames() []string {
	names := make([]string, len(d.Fields))
	for i := range d.Fields {
		names[i] = d.Fields[i].Name
	}
	return names
}

// Relationship returns the relationship with the given name, or nil.
func (d *Descriptor) Relationship(name string) *Relationship {
	for i := range d.Relationships {
		if d.Relationships[i].Name == name {
			return &d.Relationships[i]
		}
	}
	return nil
}

// descriptors is the process-wide cache, keyed by entity type. Entries
// are immutable once stored; model definitions are static, so there is
// no invalidation.
var descriptors sync.Map // reflect.Type → *Descriptor

// DescriptorFor inspects the entity type of v and returns its
// descriptor. The first call for a type builds and caches it;
// subsequent calls return the cached descriptor. Returns
// [NotAnEntityError] for non-struct values and [UnsupportedTypeError]
// when any field has no semantic type mapping (the whole build aborts,
// nothing is cached).
func DescriptorFor(v any) (*Descriptor, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, &NotAnEntityError{Value: v}
	}
	if d, ok := descriptors.Load(t); ok {
		return d.(*Descriptor), nil
	}
	d, err := buildDescriptor(t)
	if err != nil {
		return nil, err
	}
	actual, _ := descriptors.LoadOrStore(t, d)
	return actual.(*Descriptor), nil
}

// NewDescriptor builds a descriptor that is not backed by a Go type,
// e.g. from a parsed model file. Field names must be unique and every
// semantic type must be supported. Descriptors built this way can
// generate schemas and validate documents but cannot export instances.
func NewDescriptor(name string, fields []FieldDescriptor, rels ...Relationship) (*Descriptor, error) {
	d := &Descriptor{Name: name, byName: make(map[string]int, len(fields))}
	for _, f := range fields {
		if _, ok := wireTypes[f.Type]; !ok {
			return nil, &UnsupportedTypeError{Entity: name, Field: f.Name, Declared: string(f.Type)}
		}
		if _, dup := d.byName[f.Name]; dup {
			return nil, fmt.Errorf("modelrest: duplicate field %q in entity %q", f.Name, name)
		}
		if f.PrimaryKey {
			f.Nullable = false
		}
		f.index = nil
		d.byName[f.Name] = len(d.Fields)
		d.Fields = append(d.Fields, f)
	}
	for _, r := range rels {
		r.index = nil
		r.target = nil
		d.Relationships = append(d.Relationships, r)
	}
	return d, nil
}

func buildDescriptor(t reflect.Type) (*Descriptor, error) {
	d := &Descriptor{Name: t.Name(), typ: t, byName: map[string]int{}}
	if err := walkFields(t, nil, d); err != nil {
		return nil, err
	}
	return d, nil
}

var (
	recordType = reflect.TypeOf(Record{})
	timeType   = reflect.TypeOf(time.Time{})
)

func walkFields(t reflect.Type, prefix []int, d *Descriptor) error {
	for i := range t.NumField() {
		sf := t.Field(i)
		index := append(append([]int(nil), prefix...), i)
		tag := parseModelTag(sf.Tag.Get("model"))
		if tag.skip {
			continue
		}

		if sf.Anonymous {
			inner := sf.Type
			if inner.Kind() == reflect.Ptr {
				inner = inner.Elem()
			}
			if inner == recordType {
				continue
			}
			if inner.Kind() == reflect.Struct {
				if err := walkFields(inner, index, d); err != nil {
					return err
				}
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}

		name := fieldKey(sf)
		if name == "-" {
			continue
		}
		if _, dup := d.byName[name]; dup {
			return fmt.Errorf("modelrest: duplicate field %q in entity %q", name, d.Name)
		}

		if tag.rel {
			ft := sf.Type
			many := false
			if ft.Kind() == reflect.Slice {
				many = true
				ft = ft.Elem()
			}
			for ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			d.Relationships = append(d.Relationships, Relationship{Name: name, Many: many, target: ft, index: index})
			continue
		}

		fd, err := buildField(d.Name, name, sf, tag)
		if err != nil {
			return err
		}
		fd.index = index
		d.byName[name] = len(d.Fields)
		d.Fields = append(d.Fields, *fd)
	}
	return nil
}

func buildField(entity, name string, sf reflect.StructField, tag modelTag) (*FieldDescriptor, error) {
	ft := sf.Type
	nullable := tag.nullable
	if ft.Kind() == reflect.Ptr {
		nullable = true
		ft = ft.Elem()
	}

	var sem SemanticType
	switch {
	case ft == timeType:
		sem = Datetime
		if tag.typeName == "date" {
			sem = Date
		}
	case ft.Kind() == reflect.String:
		sem = String
		switch tag.typeName {
		case "date":
			sem = Date
		case "datetime":
			sem = Datetime
		}
	case ft.Kind() == reflect.Bool:
		sem = Boolean
	default:
		switch ft.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			sem = Integer
		default:
			return nil, &UnsupportedTypeError{Entity: entity, Field: name, GoType: sf.Type}
		}
	}

	fd := &FieldDescriptor{
		Name:       name,
		Type:       sem,
		MaxLength:  tag.maxLength,
		Nullable:   nullable && !tag.primary,
		HasDefault: tag.hasDefault,
		PrimaryKey: tag.primary,
		Unique:     tag.unique,
		Enum:       tag.enum,
	}

	if tag.hasDefaultValue {
		def, err := parseDefault(sem, tag.defaultRaw)
		if err != nil {
			return nil, fmt.Errorf("modelrest: field %s.%s: %w", entity, name, err)
		}
		fd.Default = def
	}
	return fd, nil
}

// parseDefault converts a tag default into its scalar value. Defaults
// for date and datetime fields are never statically known, so they
// stay nil and only mark the field as defaulted.
func parseDefault(sem SemanticType, raw string) (any, error) {
	switch sem {
	case Integer:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer default %q", raw)
		}
		return n, nil
	case Boolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean default %q", raw)
		}
		return b, nil
	case String:
		return raw, nil
	default:
		return nil, nil
	}
}

type modelTag struct {
	skip            bool
	primary         bool
	unique          bool
	nullable        bool
	rel             bool
	hasDefault      bool
	hasDefaultValue bool
	defaultRaw      string
	maxLength       int
	typeName        string
	enum            []string
}

func parseModelTag(tag string) modelTag {
	var t modelTag
	if tag == "-" {
		t.skip = true
		return t
	}
	for _, tok := range strings.Split(tag, ",") {
		switch {
		case tok == "primary":
			t.primary = true
		case tok == "unique":
			t.unique = true
		case tok == "null":
			t.nullable = true
		case tok == "rel":
			t.rel = true
		case tok == "default":
			t.hasDefault = true
		case strings.HasPrefix(tok, "default="):
			t.hasDefault = true
			t.hasDefaultValue = true
			t.defaultRaw = strings.TrimPrefix(tok, "default=")
		case strings.HasPrefix(tok, "maxlength="):
			if n, err := strconv.Atoi(strings.TrimPrefix(tok, "maxlength=")); err == nil {
				t.maxLength = n
			}
		case strings.HasPrefix(tok, "type="):
			t.typeName = strings.TrimPrefix(tok, "type=")
		case strings.HasPrefix(tok, "enum="):
			t.enum = strings.Split(strings.TrimPrefix(tok, "enum="), "|")
		}
	}
	return t
}

// fieldKey returns the json tag name if present, otherwise the Go field name.
func fieldKey(sf reflect.StructField) string {
	tag := strings.Split(sf.Tag.Get("json"), ",")[0]
	if tag != "" {
		return tag
	}
	return sf.Name
}

// value resolves the field's live value on an instance of the
// descriptor's backing type.
func (fd *FieldDescriptor) value(structVal reflect.Value) reflect.Value {
	return structVal.FieldByIndex(fd.index)
}

func (r *Relationship) value(structVal reflect.Value) reflect.Value {
	return structVal.FieldByIndex(r.index)
}
