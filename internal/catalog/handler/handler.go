package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fabrica/production-service/internal/catalog"
	"github.com/fabrica/production-service/internal/catalog/dto"
	"github.com/fabrica/production-service/internal/model"
)

// CatalogHandler exposes the CRUD surface consumed by the planning front-end.
type CatalogHandler struct {
	uc     catalog.UseCase
	logger *zap.Logger
}

func NewCatalogHandler(uc catalog.UseCase, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CatalogHandler) Register(e *echo.Echo) {
	e.GET("/products", h.ListProducts)
	e.POST("/products", h.CreateProduct)
	e.PUT("/products/:id", h.UpdateProduct)
	e.DELETE("/products/:id", h.DeleteProduct)

	e.GET("/raw-materials", h.ListRawMaterials)
	e.POST("/raw-materials", h.CreateRawMaterial)
	e.PUT("/raw-materials/:id", h.UpdateRawMaterial)
	e.DELETE("/raw-materials/:id", h.DeleteRawMaterial)

	e.GET("/product-materials", h.ListLinks)
	e.POST("/product-materials", h.CreateLink)
	e.PUT("/product-materials/:id", h.UpdateLink)
	e.DELETE("/product-materials/:id", h.DeleteLink)
}

type productPayload struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

type rawMaterialPayload struct {
	Name          string `json:"name"`
	StockQuantity int64  `json:"stockQuantity"`
}

type linkPayload struct {
	ProductID        int64 `json:"productId"`
	RawMaterialID    int64 `json:"rawMaterialId"`
	QuantityRequired int64 `json:"quantityRequired"`
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return badRequest(c, "invalid JSON")
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), &dto.CreateProductInput{
		Name:     payload.Name,
		Price:    payload.Price,
		Quantity: payload.Quantity,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return badRequest(c, "invalid JSON")
	}

	p, err := h.uc.UpdateProduct(c.Request().Context(), &dto.UpdateProductInput{
		ID:       id,
		Name:     payload.Name,
		Price:    payload.Price,
		Quantity: payload.Quantity,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return h.respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) ListRawMaterials(c echo.Context) error {
	materials, err := h.uc.ListRawMaterials(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, materials)
}

func (h *CatalogHandler) CreateRawMaterial(c echo.Context) error {
	var payload rawMaterialPayload
	if err := c.Bind(&payload); err != nil {
		return badRequest(c, "invalid JSON")
	}

	m, err := h.uc.CreateRawMaterial(c.Request().Context(), &dto.CreateRawMaterialInput{
		Name:          payload.Name,
		StockQuantity: payload.StockQuantity,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *CatalogHandler) UpdateRawMaterial(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var payload rawMaterialPayload
	if err := c.Bind(&payload); err != nil {
		return badRequest(c, "invalid JSON")
	}

	m, err := h.uc.UpdateRawMaterial(c.Request().Context(), &dto.UpdateRawMaterialInput{
		ID:            id,
		Name:          payload.Name,
		StockQuantity: payload.StockQuantity,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *CatalogHandler) DeleteRawMaterial(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.uc.DeleteRawMaterial(c.Request().Context(), id); err != nil {
		return h.respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) ListLinks(c echo.Context) error {
	links, err := h.uc.ListLinks(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, links)
}

func (h *CatalogHandler) CreateLink(c echo.Context) error {
	var payload linkPayload
	if err := c.Bind(&payload); err != nil {
		return badRequest(c, "invalid JSON")
	}

	l, err := h.uc.CreateLink(c.Request().Context(), &dto.CreateLinkInput{
		ProductID:        payload.ProductID,
		RawMaterialID:    payload.RawMaterialID,
		QuantityRequired: payload.QuantityRequired,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *CatalogHandler) UpdateLink(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var payload linkPayload
	if err := c.Bind(&payload); err != nil {
		return badRequest(c, "invalid JSON")
	}

	l, err := h.uc.UpdateLink(c.Request().Context(), &dto.UpdateLinkInput{
		ID:               id,
		QuantityRequired: payload.QuantityRequired,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *CatalogHandler) DeleteLink(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.uc.DeleteLink(c.Request().Context(), id); err != nil {
		return h.respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) respondError(c echo.Context, err error) error {
	switch {
	case model.IsValidation(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case model.IsNotFound(err):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	default:
		h.logger.Error("catalog request failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
