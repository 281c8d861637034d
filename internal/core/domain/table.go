package domain

// PropertyType is the declared type of a schema property.
type PropertyType string

// Schema property types. Every type renders as a text column unless the
// property carries an enum, which turns the column into a dropdown.
const (
	TypeString  PropertyType = "string"
	TypeNumber  PropertyType = "number"
	TypeInteger PropertyType = "integer"
	TypeBoolean PropertyType = "boolean"
)

// Property describes one schema property.
type Property struct {
	// Type is the declared value type.
	Type PropertyType `json:"type"`
	// Enum, when present, constrains the column to a fixed value set
	// rendered as a dropdown. Order is preserved verbatim.
	Enum []string `json:"enum,omitempty"`
}

// TableSchema maps property names to their type descriptors.
type TableSchema map[string]Property
