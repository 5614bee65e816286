package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fabrica/production-service/internal/catalog/repository"
	"github.com/fabrica/production-service/internal/model"
	"github.com/fabrica/production-service/internal/production/usecase"
)

func newTestServer(repo *repository.MemoryRepository) *echo.Echo {
	uc := usecase.NewProductionUseCase(repo, zap.NewNop())
	h := NewProductionHandler(uc, zap.NewNop())

	e := echo.New()
	h.Register(e)
	return e
}

func getPlan(t *testing.T, e *echo.Echo) model.ProductionPlan {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/production", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var plan model.ProductionPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	return plan
}

func TestProductionPlanEndpoint(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()

	p := &model.Product{Name: "Widget", Price: 100}
	require.NoError(t, repo.CreateProduct(ctx, p))
	m := &model.RawMaterial{Name: "M", StockQuantity: 10}
	require.NoError(t, repo.CreateRawMaterial(ctx, m))
	n := &model.RawMaterial{Name: "N", StockQuantity: 9}
	require.NoError(t, repo.CreateRawMaterial(ctx, n))
	require.NoError(t, repo.CreateLink(ctx, &model.BOMLink{ProductID: p.ID, RawMaterialID: m.ID, QuantityRequired: 2}))
	require.NoError(t, repo.CreateLink(ctx, &model.BOMLink{ProductID: p.ID, RawMaterialID: n.ID, QuantityRequired: 3}))

	plan := getPlan(t, newTestServer(repo))

	require.Len(t, plan.Products, 1)
	assert.Equal(t, "Widget", plan.Products[0].Name)
	assert.Equal(t, int64(3), plan.Products[0].Quantity)
	assert.Equal(t, float64(100), plan.Products[0].Price)
	assert.Equal(t, float64(300), plan.TotalValue)
}

func TestProductionPlanEmptyCatalog(t *testing.T) {
	e := newTestServer(repository.NewMemoryRepository())

	req := httptest.NewRequest(http.MethodGet, "/production", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// The front-end expects an empty list, not null.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.JSONEq(t, `[]`, string(raw["products"]))
	assert.JSONEq(t, `0`, string(raw["totalValue"]))
}

func TestProductionPlanReflectsMutationsImmediately(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	e := newTestServer(repo)

	p := &model.Product{Name: "Widget", Price: 10}
	require.NoError(t, repo.CreateProduct(ctx, p))
	m := &model.RawMaterial{Name: "M", StockQuantity: 6}
	require.NoError(t, repo.CreateRawMaterial(ctx, m))
	require.NoError(t, repo.CreateLink(ctx, &model.BOMLink{ProductID: p.ID, RawMaterialID: m.ID, QuantityRequired: 2}))

	plan := getPlan(t, e)
	require.Len(t, plan.Products, 1)
	assert.Equal(t, int64(3), plan.Products[0].Quantity)

	// Stock drained to zero: the product drops out on the next call.
	m.StockQuantity = 0
	require.NoError(t, repo.UpdateRawMaterial(ctx, m))

	plan = getPlan(t, e)
	assert.Empty(t, plan.Products)
	assert.Equal(t, float64(0), plan.TotalValue)
}

func TestProductionPlanIdempotentWithoutMutation(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	e := newTestServer(repo)

	p := &model.Product{Name: "Widget", Price: 2.5}
	require.NoError(t, repo.CreateProduct(ctx, p))
	m := &model.RawMaterial{Name: "M", StockQuantity: 7}
	require.NoError(t, repo.CreateRawMaterial(ctx, m))
	require.NoError(t, repo.CreateLink(ctx, &model.BOMLink{ProductID: p.ID, RawMaterialID: m.ID, QuantityRequired: 2}))

	first := getPlan(t, e)
	second := getPlan(t, e)
	assert.Equal(t, first, second)
}
