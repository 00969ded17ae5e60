package tool

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// propertyDef holds the JSON Schema definition of a single property.
type propertyDef struct {
	Type        string         `json:"type"`
	Description string         `json:"description,omitempty"`
	Enum        []any          `json:"enum,omitempty"`
	Items       *propertyDef   `json:"items,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
	Required    []string       `json:"required,omitempty"`
}

// SchemaFor generates a JSON Schema object from a struct type T.
//
// Field names come from json tags; `desc` sets the description,
// `required:"true"` marks the field required, and `enum:"a,b,c"` restricts
// string values:
//
//	type Args struct {
//	    CPF    string `json:"cpf" desc:"Client CPF, 11 digits" required:"true"`
//	    Status string `json:"status" desc:"Employment status" enum:"formal,self_employed,unemployed"`
//	}
func SchemaFor[T any]() (json.RawMessage, error) {
	var zero T
	t := reflect.TypeOf(zero)

	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tool: schema requires a struct type, got %v", t)
	}

	props, required, order := structProperties(t)

	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
	if len(props) > 0 {
		m := make(map[string]any, len(props))
		for _, name := range order {
			m[name] = props[name].toMap()
		}
		schema["properties"] = m
	}
	if len(required) > 0 {
		schema["required"] = required
	}

	return json.Marshal(schema)
}

// MustSchemaFor is like SchemaFor but panics on error.
func MustSchemaFor[T any]() json.RawMessage {
	schema, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return schema
}

func structProperties(t reflect.Type) (map[string]*propertyDef, []string, []string) {
	props := make(map[string]*propertyDef)
	var required []string
	var order []string

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
		prop.Description = field.Tag.Get("desc")

		if enumTag := field.Tag.Get("enum"); enumTag != "" {
			for _, v := range strings.Split(enumTag, ",") {
				prop.Enum = append(prop.Enum, v)
			}
		}

		if field.Tag.Get("required") == "true" {
			required = append(required, name)
		}

		props[name] = prop
		order = append(order, name)
	}

	return props, required, order
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
		props, required, order := structProperties(t)
		m := make(map[string]any, len(props))
		for _, name := range order {
			m[name] = props[name].toMap()
		}
		prop := &propertyDef{Type: "object", Properties: m}
		if len(required) > 0 {
			prop.Required = required
		}
		return prop

	case reflect.Map:
		// Maps become objects with no defined properties
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
