package model

// BOMLink states how many units of one raw material a single unit of a
// product consumes. Several links for the same (product, material) pair are
// allowed; the planner sums them.
type BOMLink struct {
	ID               int64 `db:"id" json:"id"`
	ProductID        int64 `db:"product_id" json:"productId"`
	RawMaterialID    int64 `db:"raw_material_id" json:"rawMaterialId"`
	QuantityRequired int64 `db:"quantity_required" json:"quantityRequired"`

	Product     *Product     `db:"-" json:"product,omitempty"`     // Joined data
	RawMaterial *RawMaterial `db:"-" json:"rawMaterial,omitempty"` // Joined data
}
