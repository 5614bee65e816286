package model

// Product is a finished good. Quantity is on-hand stock for information only;
// it plays no role in production feasibility.
type Product struct {
	ID       int64   `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Price    float64 `db:"price" json:"price"`
	Quantity int64   `db:"quantity" json:"quantity"`
}
