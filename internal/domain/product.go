package domain

// VariantGroup is a named axis of product customization with a fixed option list.
type VariantGroup struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	ImageURL    string
	Variants    []VariantGroup
	Inventory   int
}
