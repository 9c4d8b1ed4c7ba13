package modelrest

import (
	"errors"
	"reflect"
	"time"
)

// SelfExporter is the capability of an instance that describes its own
// export. The exporter prefers it over the generic path wherever it is
// present; errors it raises propagate instead of falling back.
type SelfExporter interface {
	ExportData(include, exclude []string) (map[string]any, error)
}

// Exporter converts live entity instances into plain nested data
// structures. The global exclusion list is fixed at construction and
// applies unconditionally, regardless of per-call include/exclude —
// the place for cross-cutting fields like a tenant column:
//
//	exporter := modelrest.NewExporter("org_id")
type Exporter struct {
	exclude []string
}

// NewExporter returns an exporter with the given always-excluded
// field names.
func NewExporter(globalExclude ...string) *Exporter {
	return &Exporter{exclude: globalExclude}
}

// Export converts an instance, or an ordered sequence of instances,
// into plain data. A single instance yields a map[string]any, a
// sequence yields []map[string]any. The output shares no references
// with the input.
//
// Persisted instances emit live field values and walk their loaded
// relationships recursively; unpersisted instances substitute the
// statically known scalar default for unset fields and emit no
// relationships. Unloaded relationships are skipped entirely, never
// fetched. Returns [InvalidInstanceError] when obj is not a recognized
// entity instance.
func (e *Exporter) Export(obj any, opts ...Option) (any, error) {
	if obj == nil {
		return nil, &InvalidInstanceError{Value: obj, Reason: "nil value"}
	}
	c := buildConfig(opts)

	rv := reflect.ValueOf(obj)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, &InvalidInstanceError{Value: obj, Reason: "nil pointer"}
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return e.exportSlice(rv, &c)
	}
	return e.exportOne(obj, &c)
}

func (e *Exporter) exportSlice(rv reflect.Value, c *config) ([]map[string]any, error) {
	out := make([]map[string]any, 0, rv.Len())
	for i := range rv.Len() {
		item := instancePointer(rv.Index(i))
		if se, ok := item.(SelfExporter); ok {
			m, err := se.ExportData(c.include, c.exclude)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
			continue
		}
		m, err := e.exportOne(item, c)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (e *Exporter) exportOne(obj any, c *config) (map[string]any, error) {
	obj = instancePointer(reflect.ValueOf(obj))

	persisted, err := Persisted(obj)
	if err != nil {
		return nil, &InvalidInstanceError{Value: obj, Reason: "no persistence state"}
	}
	d, err := DescriptorFor(obj)
	if err != nil {
		var notEntity *NotAnEntityError
		if errors.As(err, &notEntity) {
			return nil, &InvalidInstanceError{Value: obj, Reason: "not an entity type"}
		}
		return nil, err
	}

	filter := config{include: c.include, exclude: append(append([]string(nil), c.exclude...), e.exclude...)}
	structVal := reflect.Indirect(reflect.ValueOf(obj))
	data := make(map[string]any, len(d.Fields))

	for i := range d.Fields {
		fd := &d.Fields[i]
		if !filter.selected(fd.Name) {
			continue
		}
		fv := fd.value(structVal)
		switch {
		case persisted:
			data[fd.Name] = fieldExportValue(fd, fv)
		case fv.IsZero():
			// Unset on an unpersisted instance: substitute the static
			// default, which is nil unless statically scalar.
			data[fd.Name] = fd.Default
		default:
			data[fd.Name] = fieldExportValue(fd, fv)
		}
	}

	if persisted {
		if err := e.exportRelationships(obj, d, structVal, &filter, data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func (e *Exporter) exportRelationships(obj any, d *Descriptor, structVal reflect.Value, filter *config, data map[string]any) error {
	loader, ok := obj.(relationshipLoader)
	if !ok {
		return nil
	}

	for i := range d.Relationships {
		rel := &d.Relationships[i]
		if contains(filter.exclude, rel.Name) {
			continue
		}
		if !loader.RelationshipLoaded(rel.Name) {
			continue
		}

		fv := rel.value(structVal)

		if rel.Many {
			// Nested calls carry only the global exclusion.
			nested, err := e.exportSlice(fv, &config{})
			if err != nil {
				return err
			}
			data[rel.Name] = nested
			continue
		}

		if fv.Kind() == reflect.Ptr && fv.IsNil() {
			// Loaded but empty to-one: explicit null, not omission.
			data[rel.Name] = nil
			continue
		}

		item := instancePointer(fv)
		if se, ok := item.(SelfExporter); ok {
			m, err := se.ExportData(nil, nil)
			if err != nil {
				return err
			}
			data[rel.Name] = m
			continue
		}

		m, err := e.exportOne(item, &config{})
		if err != nil {
			var invalid *InvalidInstanceError
			if errors.As(err, &invalid) {
				// Related value is neither an entity nor a SelfExporter:
				// emit it unchanged.
				data[rel.Name] = copyValue(fv)
				continue
			}
			return err
		}
		data[rel.Name] = m
	}
	return nil
}

// fieldExportValue copies a field value for emission. Time values are
// formatted by the field's semantic type so the export result is plain
// transmittable data.
func fieldExportValue(fd *FieldDescriptor, fv reflect.Value) any {
	v := copyValue(fv)
	if t, ok := v.(time.Time); ok {
		if fd.Type == Date {
			return t.Format(DateLayout)
		}
		return t.Format(DatetimeLayout)
	}
	return v
}

// instancePointer returns obj as an interface holding a pointer when
// possible, so pointer-receiver capabilities are visible. Unaddressable
// struct values are copied first.
func instancePointer(v reflect.Value) any {
	for v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if v.Kind() == reflect.Ptr {
		return v.Interface()
	}
	if v.Kind() == reflect.Struct {
		if v.CanAddr() {
			return v.Addr().Interface()
		}
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		return ptr.Interface()
	}
	return v.Interface()
}

// copyValue returns a freshly constructed copy of a field value so the
// export result shares no identity with the instance.
func copyValue(v reflect.Value) any {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		out := make([]any, v.Len())
		for i := range v.Len() {
			out[i] = copyValue(v.Index(i))
		}
		return out
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		out := make(map[string]any, v.Len())
		for _, k := range v.MapKeys() {
			out[k.String()] = copyValue(v.MapIndex(k))
		}
		return out
	default:
		return v.Interface()
	}
}
