package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/fabrica/production-service/internal/catalog"
	"github.com/fabrica/production-service/internal/catalog/dto"
	"github.com/fabrica/production-service/internal/model"
)

type catalogUseCase struct {
	repo   catalog.Repository
	logger *zap.Logger
}

func NewCatalogUseCase(repo catalog.Repository, log *zap.Logger) catalog.UseCase {
	return &catalogUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *catalogUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if err := validateProduct(input.Name, input.Price, input.Quantity); err != nil {
		return nil, err
	}

	p := &model.Product{
		Name:     input.Name,
		Price:    input.Price,
		Quantity: input.Quantity,
	}
	if err := uc.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	uc.logger.Info("product created", zap.Int64("id", p.ID), zap.String("name", p.Name))
	return p, nil
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.repo.FindProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &model.NotFoundError{Entity: "product", ID: id}
	}
	return p, nil
}

func (uc *catalogUseCase) ListProducts(ctx context.Context) ([]model.Product, error) {
	return uc.repo.FindAllProducts(ctx)
}

func (uc *catalogUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if err := validateProduct(input.Name, input.Price, input.Quantity); err != nil {
		return nil, err
	}

	p := &model.Product{
		ID:       input.ID,
		Name:     input.Name,
		Price:    input.Price,
		Quantity: input.Quantity,
	}
	if err := uc.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *catalogUseCase) DeleteProduct(ctx context.Context, id int64) error {
	if err := uc.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("product deleted", zap.Int64("id", id))
	return nil
}

func (uc *catalogUseCase) CreateRawMaterial(ctx context.Context, input *dto.CreateRawMaterialInput) (*model.RawMaterial, error) {
	if err := validateRawMaterial(input.Name, input.StockQuantity); err != nil {
		return nil, err
	}

	m := &model.RawMaterial{
		Name:          input.Name,
		StockQuantity: input.StockQuantity,
	}
	if err := uc.repo.CreateRawMaterial(ctx, m); err != nil {
		return nil, err
	}

	uc.logger.Info("raw material created", zap.Int64("id", m.ID), zap.String("name", m.Name))
	return m, nil
}

func (uc *catalogUseCase) GetRawMaterial(ctx context.Context, id int64) (*model.RawMaterial, error) {
	m, err := uc.repo.FindRawMaterial(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &model.NotFoundError{Entity: "raw material", ID: id}
	}
	return m, nil
}

func (uc *catalogUseCase) ListRawMaterials(ctx context.Context) ([]model.RawMaterial, error) {
	return uc.repo.FindAllRawMaterials(ctx)
}

func (uc *catalogUseCase) UpdateRawMaterial(ctx context.Context, input *dto.UpdateRawMaterialInput) (*model.RawMaterial, error) {
	if err := validateRawMaterial(input.Name, input.StockQuantity); err != nil {
		return nil, err
	}

	m := &model.RawMaterial{
		ID:            input.ID,
		Name:          input.Name,
		StockQuantity: input.StockQuantity,
	}
	if err := uc.repo.UpdateRawMaterial(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *catalogUseCase) DeleteRawMaterial(ctx context.Context, id int64) error {
	if err := uc.repo.DeleteRawMaterial(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("raw material deleted", zap.Int64("id", id))
	return nil
}

func (uc *catalogUseCase) CreateLink(ctx context.Context, input *dto.CreateLinkInput) (*model.BOMLink, error) {
	if input.QuantityRequired <= 0 {
		return nil, &model.ValidationError{Field: "quantityRequired", Reason: "must be positive"}
	}

	l := &model.BOMLink{
		ProductID:        input.ProductID,
		RawMaterialID:    input.RawMaterialID,
		QuantityRequired: input.QuantityRequired,
	}
	if err := uc.repo.CreateLink(ctx, l); err != nil {
		return nil, err
	}

	uc.logger.Info("association created",
		zap.Int64("id", l.ID),
		zap.Int64("product_id", l.ProductID),
		zap.Int64("raw_material_id", l.RawMaterialID))
	return l, nil
}

func (uc *catalogUseCase) ListLinks(ctx context.Context) ([]model.BOMLink, error) {
	return uc.repo.FindAllLinks(ctx)
}

func (uc *catalogUseCase) UpdateLink(ctx context.Context, input *dto.UpdateLinkInput) (*model.BOMLink, error) {
	if input.QuantityRequired <= 0 {
		return nil, &model.ValidationError{Field: "quantityRequired", Reason: "must be positive"}
	}
	return uc.repo.UpdateLink(ctx, input.ID, input.QuantityRequired)
}

func (uc *catalogUseCase) DeleteLink(ctx context.Context, id int64) error {
	return uc.repo.DeleteLink(ctx, id)
}

func validateProduct(name string, price float64, quantity int64) error {
	if name == "" {
		return &model.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if price <= 0 {
		return &model.ValidationError{Field: "price", Reason: "must be positive"}
	}
	if quantity < 0 {
		return &model.ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	return nil
}

func validateRawMaterial(name string, stockQuantity int64) error {
	if name == "" {
		return &model.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if stockQuantity < 0 {
		return &model.ValidationError{Field: "stockQuantity", Reason: "must not be negative"}
	}
	return nil
}
