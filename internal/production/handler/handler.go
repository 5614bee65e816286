package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fabrica/production-service/internal/production"
)

type ProductionHandler struct {
	uc     production.UseCase
	logger *zap.Logger
}

func NewProductionHandler(uc production.UseCase, log *zap.Logger) *ProductionHandler {
	return &ProductionHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductionHandler) Register(e *echo.Echo) {
	e.GET("/production", h.GetProductionPlan)
}

func (h *ProductionHandler) GetProductionPlan(c echo.Context) error {
	plan, err := h.uc.GetProductionPlan(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to compute production plan", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, plan)
}
