package forge

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// propertyDef holds the definition of a single JSON Schema property.
type propertyDef struct {
	Type        string         `json:"type"`
	Description string         `json:"description,omitempty"`
	Enum        []any          `json:"enum,omitempty"`
	Items       *propertyDef   `json:"items,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
	Required    []string       `json:"required,omitempty"`
}

// SchemaFor generates a JSON Schema object from a struct type T by
// reflection. Field names come from json tags; struct tags refine the
// schema:
//
//	desc:"..."       sets the field description
//	required:"true"  marks the field as required
//	enum:"a,b,c"     restricts a string field to the listed values
//
// Nested structs, slices, and pointers are handled recursively.
func SchemaFor[T any]() (json.RawMessage, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: type %v is not a struct", t)
	}

	schema := schemaFromStruct(t)
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("schema: marshal: %w", err)
	}
	return data, nil
}

// MustSchemaFor is like SchemaFor but panics on error. Intended for
// package-level tool declarations where the type is known at compile time.
func MustSchemaFor[T any]() json.RawMessage {
	schema, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return schema
}

func schemaFromStruct(t reflect.Type) map[string]any {
	props := make(map[string]any)
	order := make([]string, 0, t.NumField())
	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name := strings.Split(jsonTag, ",")[0]
		if name == "" {
			name = field.Name
		}

		prop := typeToPropertyDef(field.Type)
		if desc := field.Tag.Get("desc"); desc != "" {
			prop.Description = desc
		}
		if enum := field.Tag.Get("enum"); enum != "" {
			for _, v := range strings.Split(enum, ",") {
				prop.Enum = append(prop.Enum, strings.TrimSpace(v))
			}
		}
		if field.Tag.Get("required") == "true" {
			required = append(required, name)
		}

		props[name] = prop.toMap()
		order = append(order, name)
	}

	result := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		result["required"] = required
	}
	return result
}

func typeToPropertyDef(t reflect.Type) *propertyDef {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return &propertyDef{Type: "string"}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &propertyDef{Type: "integer"}

	case reflect.Float32, reflect.Float64:
		return &propertyDef{Type: "number"}

	case reflect.Bool:
		return &propertyDef{Type: "boolean"}

	case reflect.Slice, reflect.Array:
		return &propertyDef{Type: "array", Items: typeToPropertyDef(t.Elem())}

	case reflect.Struct:
		nested := schemaFromStruct(t)
		prop := &propertyDef{Type: "object"}
		if p, ok := nested["properties"].(map[string]any); ok {
			prop.Properties = p
		}
		if r, ok := nested["required"].([]string); ok {
			prop.Required = r
		}
		return prop

	case reflect.Map:
		// Maps become objects with no defined properties.
		return &propertyDef{Type: "object"}

	default:
		return &propertyDef{Type: "string"}
	}
}

func (p *propertyDef) toMap() map[string]any {
	result := map[string]any{
		"type": p.Type,
	}
	if p.Description != "" {
		result["description"] = p.Description
	}
	if len(p.Enum) > 0 {
		result["enum"] = p.Enum
	}
	if p.Items != nil {
		result["items"] = p.Items.toMap()
	}
	if p.Properties != nil {
		result["properties"] = p.Properties
	}
	if len(p.Required) > 0 {
		result["required"] = p.Required
	}
	return result
}
