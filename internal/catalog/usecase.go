package catalog

import (
	"context"

	"github.com/fabrica/production-service/internal/catalog/dto"
	"github.com/fabrica/production-service/internal/model"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	CreateRawMaterial(ctx context.Context, input *dto.CreateRawMaterialInput) (*model.RawMaterial, error)
	GetRawMaterial(ctx context.Context, id int64) (*model.RawMaterial, error)
	ListRawMaterials(ctx context.Context) ([]model.RawMaterial, error)
	UpdateRawMaterial(ctx context.Context, input *dto.UpdateRawMaterialInput) (*model.RawMaterial, error)
	DeleteRawMaterial(ctx context.Context, id int64) error

	CreateLink(ctx context.Context, input *dto.CreateLinkInput) (*model.BOMLink, error)
	ListLinks(ctx context.Context) ([]model.BOMLink, error)
	UpdateLink(ctx context.Context, input *dto.UpdateLinkInput) (*model.BOMLink, error)
	DeleteLink(ctx context.Context, id int64) error
}
