package prompts

import (
	"fmt"
	"sort"
	"strings"
)

// orderKey records declaration order so rendered contracts are stable.
const orderKey = "x-order"

// Prop is one property of an object schema.
type Prop struct {
	Name     string
	Schema   map[string]any
	Required bool
}

func ObjectSchema(props ...Prop) map[string]any {
	properties := make(map[string]any, len(props))
	required := make([]string, 0, len(props))
	order := make([]string, 0, len(props))
	for _, p := range props {
		properties[p.Name] = p.Schema
		order = append(order, p.Name)
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
		orderKey:               order,
	}
}

func StringSchema() map[string]any {
	return map[string]any{"type": "string"}
}

func StringArraySchema() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
}

func ArrayOf(item map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": item}
}

func NumberSchema() map[string]any {
	return map[string]any{"type": "number"}
}

func IntSchema() map[string]any {
	return map[string]any{"type": "integer"}
}

func EnumSchema(values ...string) map[string]any {
	arr := make([]any, 0, len(values))
	for _, v := range values {
		arr = append(arr, v)
	}
	return map[string]any{"type": "string", "enum": arr}
}

// Properties returns the property map of an object schema.
func Properties(schema map[string]any) map[string]any {
	if schema == nil {
		return nil
	}
	props, _ := schema["properties"].(map[string]any)
	return props
}

// RequiredKeys lists the required property names of an object schema.
func RequiredKeys(schema map[string]any) []string {
	if schema == nil {
		return nil
	}
	switch req := schema["required"].(type) {
	case []string:
		return append([]string(nil), req...)
	case []any:
		out := make([]string, 0, len(req))
		for _, r := range req {
			if s, ok := r.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// PropertyOrder returns property names in declaration order, falling back to sorted order.
func PropertyOrder(schema map[string]any) []string {
	if order, ok := schema[orderKey].([]string); ok {
		return order
	}
	props := Properties(schema)
	out := make([]string, 0, len(props))
	for k := range props {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ItemSchema returns the items schema of an array property.
func ItemSchema(schema map[string]any, key string) map[string]any {
	prop, _ := Properties(schema)[key].(map[string]any)
	if prop == nil {
		return nil
	}
	items, _ := prop["items"].(map[string]any)
	return items
}

// RenderContract describes an object schema in plain text for the instruction prompt.
func RenderContract(schema map[string]any) string {
	var b strings.Builder
	b.WriteString("Return ONE JSON object with exactly these keys (no other keys are allowed):\n")
	writeProps(&b, schema, "")
	return strings.TrimRight(b.String(), "\n")
}

func writeProps(b *strings.Builder, schema map[string]any, indent string) {
	required := map[string]bool{}
	for _, k := range RequiredKeys(schema) {
		required[k] = true
	}
	props := Properties(schema)
	for _, name := range PropertyOrder(schema) {
		prop, _ := props[name].(map[string]any)
		req := "optional"
		if required[name] {
			req = "required"
		}
		fmt.Fprintf(b, "%s- %q: %s, %s\n", indent, name, describeType(prop), req)
		if items, ok := prop["items"].(map[string]any); ok && items["type"] == "object" {
			writeProps(b, items, indent+"    ")
		}
	}
}

func describeType(prop map[string]any) string {
	if prop == nil {
		return "any"
	}
	if enum, ok := prop["enum"].([]any); ok {
		vals := make([]string, 0, len(enum))
		for _, v := range enum {
			vals = append(vals, fmt.Sprint(v))
		}
		return "one of " + strings.Join(vals, "|")
	}
	t, _ := prop["type"].(string)
	if t == "array" {
		items, _ := prop["items"].(map[string]any)
		if items != nil && items["type"] == "object" {
			return "array of objects with keys"
		}
		return "array of " + describeType(items)
	}
	if t == "" {
		return "any"
	}
	return t
}
