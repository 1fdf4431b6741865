package tool

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Property describes a single parameter.
type Property struct {
	// Type is one of the schema primitive kinds: string, integer, number,
	// boolean, array, object.
	Type string `json:"type"`

	// Default is the parameter's default value. A nil Default with
	// HasDefault set records an explicit null default (an optional
	// parameter).
	Default any `json:"default,omitempty"`

	// HasDefault reports whether the parameter has a default at all.
	// Exactly one of HasDefault and membership in Schema.Required holds
	// for every property.
	HasDefault bool `json:"-"`
}

// Schema is a structural description of a tool's parameters in the
// JSON-schema object style.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`

	// Order preserves parameter declaration order for documentation and
	// positional argument binding. It always lists every property exactly
	// once.
	Order []string `json:"-"`
}

// EmptySchema returns the schema of a tool taking no parameters.
func EmptySchema() Schema {
	return Schema{Type: "object", Properties: map[string]Property{}, Required: []string{}}
}

// InferSchema derives a Schema from an args prototype struct. The prototype
// may be a struct value, a pointer to one, or nil (yielding an empty
// schema). There is no error path: unrecognized field types map to string.
func InferSchema(prototype any) Schema {
	s := EmptySchema()
	if prototype == nil {
		return s
	}
	t := reflect.TypeOf(prototype)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return s
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}
		name := fieldName(f)
		if name == "-" || name == "" {
			continue
		}

		ft := f.Type
		optional := false
		if ft.Kind() == reflect.Pointer {
			// Optional-of-T: unwrap to T with a null default.
			optional = true
			ft = ft.Elem()
		}

		prop := Property{Type: kindName(ft)}
		if tag, ok := f.Tag.Lookup("default"); ok {
			prop.Default = parseDefault(tag, prop.Type)
			prop.HasDefault = true
		} else if optional {
			prop.Default = nil
			prop.HasDefault = true
		}

		if !prop.HasDefault {
			s.Required = append(s.Required, name)
		}
		s.Properties[name] = prop
		s.Order = append(s.Order, name)
	}
	return s
}

// SchemaFromMap converts a JSON-schema-style map (as carried by toolkit
// metadata) into a Schema. Property order is sorted for determinism since
// maps carry none.
func SchemaFromMap(m map[string]any) Schema {
	s := EmptySchema()
	if m == nil {
		return s
	}
	if t, ok := m["type"].(string); ok && t != "" {
		s.Type = t
	}
	required := map[string]bool{}
	switch req := m["required"].(type) {
	case []any:
		for _, v := range req {
			if name, ok := v.(string); ok {
				required[name] = true
			}
		}
	case []string:
		for _, name := range req {
			required[name] = true
		}
	}
	if props, ok := m["properties"].(map[string]any); ok {
		for name, raw := range props {
			prop := Property{Type: "string"}
			if pm, ok := raw.(map[string]any); ok {
				if t, ok := pm["type"].(string); ok && t != "" {
					prop.Type = t
				}
				if d, ok := pm["default"]; ok {
					prop.Default = d
					prop.HasDefault = true
				}
			}
			if required[name] && !prop.HasDefault {
				s.Required = append(s.Required, name)
			}
			s.Properties[name] = prop
			s.Order = append(s.Order, name)
		}
	}
	sort.Strings(s.Order)
	sort.Strings(s.Required)
	return s
}

// ToMap renders the schema as a plain JSON-schema map for consumers that
// expect the wire shape (discovery index, framework tool metadata).
func (s Schema) ToMap() map[string]any {
	props := make(map[string]any, len(s.Properties))
	for name, p := range s.Properties {
		pm := map[string]any{"type": p.Type}
		if p.HasDefault && p.Default != nil {
			pm["default"] = p.Default
		}
		props[name] = pm
	}
	required := make([]any, len(s.Required))
	for i, name := range s.Required {
		required[i] = name
	}
	return map[string]any{
		"type":       s.Type,
		"properties": props,
		"required":   required,
	}
}

func fieldName(f reflect.StructField) string {
	if tag, ok := f.Tag.Lookup("schema"); ok {
		return strings.Split(tag, ",")[0]
	}
	if tag, ok := f.Tag.Lookup("json"); ok {
		return strings.Split(tag, ",")[0]
	}
	return snakeCase(f.Name)
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func kindName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return "string"
	}
}

func parseDefault(tag, kind string) any {
	switch kind {
	case "integer":
		if n, err := strconv.Atoi(tag); err == nil {
			return n
		}
	case "number":
		if f, err := strconv.ParseFloat(tag, 64); err == nil {
			return f
		}
	case "boolean":
		if b, err := strconv.ParseBool(tag); err == nil {
			return b
		}
	}
	return tag
}
