package domain

// FieldDescriptor describes one form field of an entity for the UI's
// dynamic record form. The descriptor table is a static contract: the
// UI generator consumes it instead of sampling live records.
type FieldDescriptor struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Editable bool   `json:"editable"`
}

// InventorySchema returns the field descriptors for inventory records.
func InventorySchema() []FieldDescriptor {
	return []FieldDescriptor{
		{Name: "id", Type: "int", Required: false, Editable: false},
		{Name: "name", Type: "str", Required: true, Editable: true},
		{Name: "total_qty", Type: "int", Required: true, Editable: true},
		{Name: "course", Type: "str", Required: false, Editable: true},
		{Name: "description", Type: "str", Required: false, Editable: true},
	}
}
