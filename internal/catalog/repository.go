package catalog

import (
	"context"

	"github.com/fabrica/production-service/internal/model"
)

// Snapshot is a consistent point-in-time copy of the whole catalog. It shares
// no memory with the store, so callers may read it without coordination.
type Snapshot struct {
	Products     []model.Product
	RawMaterials []model.RawMaterial
	Links        []model.BOMLink
}

// Repository is the catalog store. Mutations are serialized by the
// implementation and durable before the call returns; deleting a product or
// raw material also deletes every BOM link that references it.
//
// Find* return (nil, nil) when the id is absent. Update*/Delete* return a
// *model.NotFoundError for an absent id. Link reads come back with Product
// and RawMaterial populated.
type Repository interface {
	CreateProduct(ctx context.Context, p *model.Product) error
	FindProduct(ctx context.Context, id int64) (*model.Product, error)
	FindAllProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id int64) error

	CreateRawMaterial(ctx context.Context, m *model.RawMaterial) error
	FindRawMaterial(ctx context.Context, id int64) (*model.RawMaterial, error)
	FindAllRawMaterials(ctx context.Context) ([]model.RawMaterial, error)
	UpdateRawMaterial(ctx context.Context, m *model.RawMaterial) error
	DeleteRawMaterial(ctx context.Context, id int64) error

	CreateLink(ctx context.Context, l *model.BOMLink) error
	FindLink(ctx context.Context, id int64) (*model.BOMLink, error)
	FindAllLinks(ctx context.Context) ([]model.BOMLink, error)
	UpdateLink(ctx context.Context, id int64, quantityRequired int64) (*model.BOMLink, error)
	DeleteLink(ctx context.Context, id int64) error

	Snapshot(ctx context.Context) (*Snapshot, error)
}
