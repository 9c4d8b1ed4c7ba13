// Package modelfile loads entity descriptors from YAML definitions,
// for validating documents against entities that have no Go struct:
//
//	entities:
//	  - name: user
//	    fields:
//	      - name: id
//	        type: integer
//	        primary: true
//	      - name: email
//	        type: string
//	        unique: true
//	        maxlength: 120
//	      - name: active
//	        type: boolean
//	        default: false
//
// Descriptors built this way generate schemas and validate documents;
// exporting needs live instances and is not available for them.
package modelfile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fadine/modelrest"
)

type fileDoc struct {
	Entities []entityDoc `yaml:"entities"`
}

type entityDoc struct {
	Name          string     `yaml:"name"`
	Fields        []fieldDoc `yaml:"fields"`
	Relationships []relDoc   `yaml:"relationships"`
}

type fieldDoc struct {
	Name      string   `yaml:"name"`
	Type      string   `yaml:"type"`
	MaxLength int      `yaml:"maxlength"`
	Nullable  bool     `yaml:"nullable"`
	Primary   bool     `yaml:"primary"`
	Unique    bool     `yaml:"unique"`
	Default   any      `yaml:"default"`
	Enum      []string `yaml:"enum"`
}

type relDoc struct {
	Name string `yaml:"name"`
	Many bool   `yaml:"many"`
}

// typeAliases maps the names accepted in model files to semantic types.
var typeAliases = map[string]modelrest.SemanticType{
	"integer":  modelrest.Integer,
	"int":      modelrest.Integer,
	"string":   modelrest.String,
	"boolean":  modelrest.Boolean,
	"bool":     modelrest.Boolean,
	"date":     modelrest.Date,
	"datetime": modelrest.Datetime,
}

// LoadFile reads a YAML model file and returns its descriptors.
func LoadFile(path string) ([]*modelrest.Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Load parses YAML entity definitions into descriptors. Every entity
// must have a name and at least one field; unsupported field types
// abort loading.
func Load(r io.Reader) ([]*modelrest.Descriptor, error) {
	var doc fileDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("modelfile: %w", err)
	}

	out := make([]*modelrest.Descriptor, 0, len(doc.Entities))
	for _, e := range doc.Entities {
		if e.Name == "" {
			return nil, fmt.Errorf("modelfile: entity without a name")
		}
		if len(e.Fields) == 0 {
			return nil, fmt.Errorf("modelfile: entity %q has no fields", e.Name)
		}

		fields := make([]modelrest.FieldDescriptor, 0, len(e.Fields))
		for _, f := range e.Fields {
			sem, ok := typeAliases[f.Type]
			if !ok {
				return nil, fmt.Errorf("modelfile: entity %q field %q: unknown type %q", e.Name, f.Name, f.Type)
			}
			fd := modelrest.FieldDescriptor{
				Name:       f.Name,
				Type:       sem,
				MaxLength:  f.MaxLength,
				Nullable:   f.Nullable,
				PrimaryKey: f.Primary,
				Unique:     f.Unique,
				Enum:       f.Enum,
			}
			if f.Default != nil {
				fd.HasDefault = true
				fd.Default = scalarDefault(sem, f.Default)
			}
			fields = append(fields, fd)
		}

		rels := make([]modelrest.Relationship, 0, len(e.Relationships))
		for _, r := range e.Relationships {
			rels = append(rels, modelrest.Relationship{Name: r.Name, Many: r.Many})
		}

		d, err := modelrest.NewDescriptor(e.Name, fields, rels...)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// scalarDefault keeps only statically scalar defaults; anything else
// marks the field as defaulted without a known value.
func scalarDefault(sem modelrest.SemanticType, v any) any {
	switch sem {
	case modelrest.Integer:
		switch n := v.(type) {
		case int:
			return int64(n)
		case int64:
			return n
		}
	case modelrest.Boolean:
		if b, ok := v.(bool); ok {
			return b
		}
	case modelrest.String:
		if s, ok := v.(string); ok {
			return s
		}
	}
	return nil
}
