package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/fabrica/production-service/internal/catalog"
	"github.com/fabrica/production-service/internal/model"
	"github.com/fabrica/production-service/internal/planner"
	"github.com/fabrica/production-service/internal/production"
)

type productionUseCase struct {
	store  catalog.Repository
	logger *zap.Logger
}

func NewProductionUseCase(store catalog.Repository, log *zap.Logger) production.UseCase {
	return &productionUseCase{
		store:  store,
		logger: log,
	}
}

// GetProductionPlan recomputes the plan from a fresh snapshot on every call,
// so catalog mutations are reflected immediately. Nothing is cached.
func (uc *productionUseCase) GetProductionPlan(ctx context.Context) (*model.ProductionPlan, error) {
	snap, err := uc.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	plan := planner.Plan(snap)
	uc.logger.Debug("production plan computed",
		zap.Int("producible_products", len(plan.Products)),
		zap.Float64("total_value", plan.TotalValue))
	return plan, nil
}
