// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreProductTable represents the 'core.product' table
type CoreProductTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	Price       string
	Quantity    string
	CreatedAt   string
	UpdatedAt   string
}

// CoreProduct is the schema definition for core.product
var CoreProduct = CoreProductTable{
	Table:       "core.product",
	ID:          "id",
	Name:        "name",
	Description: "description",
	Price:       "price",
	Quantity:    "quantity",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t CoreProductTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Description, t.Price, t.Quantity,
		t.CreatedAt, t.UpdatedAt,
	}
}
