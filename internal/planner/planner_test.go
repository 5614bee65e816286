package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabrica/production-service/internal/catalog"
	"github.com/fabrica/production-service/internal/model"
)

func TestPlanMinAcrossMaterials(t *testing.T) {
	// Product needs 2 of M (stock 10) and 3 of N (stock 9):
	// min(floor(10/2), floor(9/3)) = min(5, 3) = 3 units worth 300.
	snap := &catalog.Snapshot{
		Products: []model.Product{
			{ID: 1, Name: "Widget", Price: 100},
		},
		RawMaterials: []model.RawMaterial{
			{ID: 1, Name: "M", StockQuantity: 10},
			{ID: 2, Name: "N", StockQuantity: 9},
		},
		Links: []model.BOMLink{
			{ID: 1, ProductID: 1, RawMaterialID: 1, QuantityRequired: 2},
			{ID: 2, ProductID: 1, RawMaterialID: 2, QuantityRequired: 3},
		},
	}

	plan := Plan(snap)

	require.Len(t, plan.Products, 1)
	assert.Equal(t, "Widget", plan.Products[0].Name)
	assert.Equal(t, int64(3), plan.Products[0].Quantity)
	assert.Equal(t, float64(100), plan.Products[0].Price)
	assert.Equal(t, float64(300), plan.TotalValue)
}

func TestPlanExcludesProductsWithoutLinks(t *testing.T) {
	snap := &catalog.Snapshot{
		Products: []model.Product{
			{ID: 1, Name: "Orphan", Price: 50},
		},
		RawMaterials: []model.RawMaterial{
			{ID: 1, Name: "M", StockQuantity: 1000},
		},
	}

	plan := Plan(snap)

	assert.Empty(t, plan.Products)
	assert.Equal(t, float64(0), plan.TotalValue)
}

func TestPlanExcludesZeroProducible(t *testing.T) {
	snap := &catalog.Snapshot{
		Products: []model.Product{
			{ID: 1, Name: "Starved", Price: 10},
			{ID: 2, Name: "Fed", Price: 5},
		},
		RawMaterials: []model.RawMaterial{
			{ID: 1, Name: "Empty", StockQuantity: 0},
			{ID: 2, Name: "Full", StockQuantity: 8},
		},
		Links: []model.BOMLink{
			{ID: 1, ProductID: 1, RawMaterialID: 1, QuantityRequired: 1},
			{ID: 2, ProductID: 2, RawMaterialID: 2, QuantityRequired: 4},
		},
	}

	plan := Plan(snap)

	require.Len(t, plan.Products, 1)
	assert.Equal(t, "Fed", plan.Products[0].Name)
	assert.Equal(t, int64(2), plan.Products[0].Quantity)
	assert.Equal(t, float64(10), plan.TotalValue)
}

func TestPlanDuplicateLinksAreSummed(t *testing.T) {
	// Two links of 2 and 3 over the same material amount to 5 per unit.
	snap := &catalog.Snapshot{
		Products: []model.Product{
			{ID: 1, Name: "Widget", Price: 1},
		},
		RawMaterials: []model.RawMaterial{
			{ID: 1, Name: "M", StockQuantity: 10},
		},
		Links: []model.BOMLink{
			{ID: 1, ProductID: 1, RawMaterialID: 1, QuantityRequired: 2},
			{ID: 2, ProductID: 1, RawMaterialID: 1, QuantityRequired: 3},
		},
	}

	plan := Plan(snap)

	require.Len(t, plan.Products, 1)
	assert.Equal(t, int64(2), plan.Products[0].Quantity)
}

func TestPlanZeroQuantityRequiredIsInfeasible(t *testing.T) {
	snap := &catalog.Snapshot{
		Products: []model.Product{
			{ID: 1, Name: "Broken", Price: 1},
		},
		RawMaterials: []model.RawMaterial{
			{ID: 1, Name: "M", StockQuantity: 100},
		},
		Links: []model.BOMLink{
			{ID: 1, ProductID: 1, RawMaterialID: 1, QuantityRequired: 0},
		},
	}

	plan := Plan(snap)

	assert.Empty(t, plan.Products)
}

func TestPlanOrdersByProductID(t *testing.T) {
	snap := &catalog.Snapshot{
		Products: []model.Product{
			{ID: 3, Name: "C", Price: 1},
			{ID: 1, Name: "A", Price: 1},
			{ID: 2, Name: "B", Price: 1},
		},
		RawMaterials: []model.RawMaterial{
			{ID: 1, Name: "M", StockQuantity: 10},
		},
		Links: []model.BOMLink{
			{ID: 1, ProductID: 3, RawMaterialID: 1, QuantityRequired: 1},
			{ID: 2, ProductID: 1, RawMaterialID: 1, QuantityRequired: 1},
			{ID: 3, ProductID: 2, RawMaterialID: 1, QuantityRequired: 1},
		},
	}

	plan := Plan(snap)

	require.Len(t, plan.Products, 3)
	assert.Equal(t, "A", plan.Products[0].Name)
	assert.Equal(t, "B", plan.Products[1].Name)
	assert.Equal(t, "C", plan.Products[2].Name)
}

func TestPlanTotalValueRounding(t *testing.T) {
	// 0.1 * 3 would drift under naive float accumulation.
	snap := &catalog.Snapshot{
		Products: []model.Product{
			{ID: 1, Name: "Cheap", Price: 0.1},
			{ID: 2, Name: "Odd", Price: 19.99},
		},
		RawMaterials: []model.RawMaterial{
			{ID: 1, Name: "M", StockQuantity: 3},
			{ID: 2, Name: "N", StockQuantity: 3},
		},
		Links: []model.BOMLink{
			{ID: 1, ProductID: 1, RawMaterialID: 1, QuantityRequired: 1},
			{ID: 2, ProductID: 2, RawMaterialID: 2, QuantityRequired: 1},
		},
	}

	plan := Plan(snap)

	assert.Equal(t, 60.27, plan.TotalValue)
}

func TestPlanDeterministic(t *testing.T) {
	snap := &catalog.Snapshot{
		Products: []model.Product{
			{ID: 1, Name: "A", Price: 2.5},
			{ID: 2, Name: "B", Price: 4},
		},
		RawMaterials: []model.RawMaterial{
			{ID: 1, Name: "M", StockQuantity: 7},
		},
		Links: []model.BOMLink{
			{ID: 1, ProductID: 1, RawMaterialID: 1, QuantityRequired: 2},
			{ID: 2, ProductID: 2, RawMaterialID: 1, QuantityRequired: 3},
		},
	}

	first := Plan(snap)
	second := Plan(snap)

	assert.Equal(t, first, second)
}

func TestPlanEmptySnapshot(t *testing.T) {
	plan := Plan(&catalog.Snapshot{})

	require.NotNil(t, plan.Products)
	assert.Empty(t, plan.Products)
	assert.Equal(t, float64(0), plan.TotalValue)
}

func TestPlanDoesNotShareStockAcrossProducts(t *testing.T) {
	// Both products see the full stock: feasibility is per product, not a
	// joint allocation.
	snap := &catalog.Snapshot{
		Products: []model.Product{
			{ID: 1, Name: "A", Price: 1},
			{ID: 2, Name: "B", Price: 1},
		},
		RawMaterials: []model.RawMaterial{
			{ID: 1, Name: "M", StockQuantity: 6},
		},
		Links: []model.BOMLink{
			{ID: 1, ProductID: 1, RawMaterialID: 1, QuantityRequired: 2},
			{ID: 2, ProductID: 2, RawMaterialID: 1, QuantityRequired: 3},
		},
	}

	plan := Plan(snap)

	require.Len(t, plan.Products, 2)
	assert.Equal(t, int64(3), plan.Products[0].Quantity)
	assert.Equal(t, int64(2), plan.Products[1].Quantity)
}
