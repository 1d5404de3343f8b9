package llm

// SchemaType is the JSON type of a schema node.
type SchemaType string

// Schema types used by structured replies.
const (
	TypeObject SchemaType = "object"
	TypeArray  SchemaType = "array"
	TypeString SchemaType = "string"
)

// Schema describes the shape of a structured reply. Each transport converts it to
// its own SDK representation; JSONSchema renders it for validation and for
// providers without native schema support.
type Schema struct {
	Type        SchemaType
	Description string
	Nullable    bool
	Items       *Schema
	Properties  map[string]*Schema
	Required    []string
}

// JSONSchema renders the schema as a draft-07 JSON Schema document.
func (s *Schema) JSONSchema() map[string]any {
	if s == nil {
		return map[string]any{}
	}

	out := map[string]any{}
	if s.Nullable {
		out["type"] = []string{string(s.Type), "null"}
	} else {
		out["type"] = string(s.Type)
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if s.Items != nil {
		out["items"] = s.Items.JSONSchema()
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = prop.JSONSchema()
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		out["required"] = append([]string(nil), s.Required...)
	}
	return out
}
