package model

// RawMaterial stock is the only resource that constrains production.
type RawMaterial struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	StockQuantity int64  `db:"stock_quantity" json:"stockQuantity"`
}
