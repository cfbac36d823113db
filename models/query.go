package models

// QueryRequest is the generic read call against an arbitrary entity type.
// Fields is the projection the caller wants; the field-fallback strategy may
// narrow it when the backend rejects individual fields.
type QueryRequest struct {
	EntityType string   `json:"entity_type"`
	Filter     ValueMap `json:"filter,omitempty"`
	Fields     []string `json:"fields,omitempty"`
	Limit      int      `json:"limit,omitempty"`
	Offset     int      `json:"offset,omitempty"`
}

// QueryResponse carries the raw records of a generic query.
type QueryResponse struct {
	Records []ValueMap `json:"records"`
	Total   int        `json:"total"`
}

// FieldDescription is the schema-introspection metadata for one field of an
// entity type.
type FieldDescription struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Label    string `json:"label,omitempty"`
	Required bool   `json:"required,omitempty"`
	ReadOnly bool   `json:"read_only,omitempty"`
}

// FieldSchema maps field name → metadata, as returned by the backend's
// schema-introspection call.
type FieldSchema map[string]FieldDescription

// Names returns the field names present in the schema.
func (s FieldSchema) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names
}
