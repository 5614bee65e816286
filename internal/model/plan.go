package model

// ProductionPlanEntry reports one producible product: Quantity is the maximum
// number of units current raw-material stock supports, computed independently
// of every other product.
type ProductionPlanEntry struct {
	Name     string  `json:"name"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
}

// ProductionPlan is derived on every request and never persisted.
type ProductionPlan struct {
	Products   []ProductionPlanEntry `json:"products"`
	TotalValue float64               `json:"totalValue"`
}
