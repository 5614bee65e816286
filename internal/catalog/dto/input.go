package dto

type CreateProductInput struct {
	Name     string
	Price    float64
	Quantity int64
}

type UpdateProductInput struct {
	ID       int64
	Name     string
	Price    float64
	Quantity int64
}

type CreateRawMaterialInput struct {
	Name          string
	StockQuantity int64
}

type UpdateRawMaterialInput struct {
	ID            int64
	Name          string
	StockQuantity int64
}

type CreateLinkInput struct {
	ProductID        int64
	RawMaterialID    int64
	QuantityRequired int64
}

type UpdateLinkInput struct {
	ID               int64
	QuantityRequired int64
}
