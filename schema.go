package modelrest

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// FieldSchema is the rule-set generated for one field: its validation
// type plus the constraints derived from the descriptor. Extra carries
// caller-attached rules (e.g. from the is package); their violations
// report kind "format".
type FieldSchema struct {
	Type      string // "integer", "string" or "boolean"
	Required  bool
	ReadOnly  bool
	Unique    bool
	MaxLength int // 0 means no bound
	Enum      []string
	Extra     []Rule

	sem SemanticType
	pos int
}

// Schema maps field names to their generated rule-sets. Build one with
// [GenerateSchema]; it is not mutated after construction apart from
// attaching Extra rules before the first validation.
type Schema map[string]*FieldSchema

// GenerateSchema derives a validation schema from an entity descriptor.
// It is a pure function of the descriptor and options. Field selection:
// a field is kept iff the include set is empty or names it, and the
// exclude set does not (exclusion wins). Each rule kind except type can
// be suppressed with [WithoutRules].
//
// Rule derivation per included field:
//   - type: mandatory; a missing semantic type mapping aborts the whole
//     generation with [UnsupportedTypeError]
//   - maxlength: string-typed fields declaring a bound
//   - readonly: primary-key fields
//   - required: fields with no default that are not nullable and not
//     primary key (primary keys are never required, they arrive via the
//     readonly path or are system-assigned)
//   - unique: fields declared unique
//   - enum: string fields declaring allowed values
func GenerateSchema(d *Descriptor, opts ...Option) (Schema, error) {
	c := buildConfig(opts)
	schema := make(Schema)

	for i := range d.Fields {
		fd := &d.Fields[i]
		if !c.selected(fd.Name) {
			continue
		}

		wire, ok := wireTypes[fd.Type]
		if !ok {
			return nil, &UnsupportedTypeError{Entity: d.Name, Field: fd.Name, Declared: string(fd.Type)}
		}

		fs := &FieldSchema{
			Type: wire,
			sem:  fd.Type,
			pos:  i,
		}
		if !c.ruleExcluded("maxlength") && fd.Type == String && fd.MaxLength > 0 {
			fs.MaxLength = fd.MaxLength
		}
		if !c.ruleExcluded("readonly") && fd.PrimaryKey {
			fs.ReadOnly = true
		}
		if !c.ruleExcluded("required") && !fd.HasDefault && !fd.Nullable && !fd.PrimaryKey {
			fs.Required = true
		}
		if !c.ruleExcluded("unique") && fd.Unique {
			fs.Unique = true
		}
		if !c.ruleExcluded("enum") && len(fd.Enum) > 0 {
			fs.Enum = fd.Enum
		}
		schema[fd.Name] = fs
	}
	return schema, nil
}

// Names returns the field names in descriptor declaration order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := s[names[i]], s[names[j]]
		if a.pos != b.pos {
			return a.pos < b.pos
		}
		return names[i] < names[j]
	})
	return names
}

// HasUnique reports whether any field carries the unique rule.
func (s Schema) HasUnique() bool {
	for _, fs := range s {
		if fs.Unique {
			return true
		}
	}
	return false
}

// describeRules returns the rule objects documenting this field,
// including presence-class rules the validator enforces itself.
func (fs *FieldSchema) describeRules() []Rule {
	rules := []Rule{typeRule{sem: fs.sem}}
	if fs.Required {
		rules = append(rules, requiredRule{})
	}
	if fs.ReadOnly {
		rules = append(rules, readOnlyRule{})
	}
	if fs.MaxLength > 0 {
		rules = append(rules, maxLength(fs.MaxLength))
	}
	if len(fs.Enum) > 0 {
		rules = append(rules, enum(fs.Enum))
	}
	if fs.Unique {
		rules = append(rules, uniqueRule{})
	}
	return append(rules, fs.Extra...)
}

// OpenAPISchema converts the generated schema into an OpenAPI 3 object
// schema by letting every rule describe itself.
func (s Schema) OpenAPISchema() (*openapi3.Schema, error) {
	obj := openapi3.NewObjectSchema()
	for _, name := range s.Names() {
		fs := s[name]

		var prop *openapi3.Schema
		switch fs.Type {
		case "integer":
			prop = openapi3.NewIntegerSchema()
		case "boolean":
			prop = openapi3.NewBoolSchema()
		default:
			prop = openapi3.NewStringSchema()
		}
		prop.Nullable = false

		ref := &openapi3.SchemaRef{Value: prop}
		for _, rule := range fs.describeRules() {
			if err := rule.Describe(name, obj, ref); err != nil {
				return nil, err
			}
		}
		obj.Properties[name] = ref
	}
	return obj, nil
}
