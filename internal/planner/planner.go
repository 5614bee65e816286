// Package planner computes which products current raw-material stock can
// produce. It is a pure projection over a catalog snapshot: no locks, no
// mutation, total over any well-formed input.
package planner

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fabrica/production-service/internal/catalog"
	"github.com/fabrica/production-service/internal/model"
)

// Plan computes the production suggestion for a snapshot.
//
// Each product's producible quantity is the minimum over its required raw
// materials of floor(stock / required), where required is the sum of every
// link the product has for that material. Feasibility is estimated per
// product against the full, undiminished stock; products do not compete for
// materials. Products with no links or a zero producible quantity are left
// out, and entries are ordered by ascending product id.
//
// The total value is accumulated as a decimal and rounded to 2 places only
// once, at the end.
func Plan(snap *catalog.Snapshot) *model.ProductionPlan {
	stock := make(map[int64]int64, len(snap.RawMaterials))
	for _, m := range snap.RawMaterials {
		stock[m.ID] = m.StockQuantity
	}

	// material -> summed quantity required, per product
	required := make(map[int64]map[int64]int64)
	for _, l := range snap.Links {
		perMaterial, ok := required[l.ProductID]
		if !ok {
			perMaterial = make(map[int64]int64)
			required[l.ProductID] = perMaterial
		}
		perMaterial[l.RawMaterialID] += l.QuantityRequired
	}

	products := make([]model.Product, len(snap.Products))
	copy(products, snap.Products)
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	plan := &model.ProductionPlan{Products: []model.ProductionPlanEntry{}}
	total := decimal.Zero

	for _, p := range products {
		perMaterial, ok := required[p.ID]
		if !ok {
			// No bill of materials means nothing constrains production,
			// which this model reads as "not producible".
			continue
		}

		quantity := producibleQuantity(perMaterial, stock)
		if quantity == 0 {
			continue
		}

		plan.Products = append(plan.Products, model.ProductionPlanEntry{
			Name:     p.Name,
			Quantity: quantity,
			Price:    p.Price,
		})
		value := decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(quantity))
		total = total.Add(value)
	}

	plan.TotalValue = total.Round(2).InexactFloat64()
	return plan
}

func producibleQuantity(perMaterial map[int64]int64, stock map[int64]int64) int64 {
	quantity := int64(-1)
	for materialID, req := range perMaterial {
		if req <= 0 {
			// Rejected at write time; if one slips through, treat the
			// product as infeasible instead of dividing by zero.
			return 0
		}
		producible := stock[materialID] / req
		if quantity < 0 || producible < quantity {
			quantity = producible
		}
	}
	if quantity < 0 {
		return 0
	}
	return quantity
}
