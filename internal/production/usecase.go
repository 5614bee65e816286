package production

import (
	"context"

	"github.com/fabrica/production-service/internal/model"
)

type UseCase interface {
	GetProductionPlan(ctx context.Context) (*model.ProductionPlan, error)
}
