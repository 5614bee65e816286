package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/fabrica/production-service/internal/catalog"
	"github.com/fabrica/production-service/internal/model"
)

// MemoryRepository keeps the catalog in process memory. A single mutex
// serializes every mutation and the snapshot copy, so readers never observe a
// half-applied cascade.
type MemoryRepository struct {
	mu        sync.Mutex
	products  map[int64]model.Product
	materials map[int64]model.RawMaterial
	links     map[int64]model.BOMLink

	productSeq  int64
	materialSeq int64
	linkSeq     int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		products:  make(map[int64]model.Product),
		materials: make(map[int64]model.RawMaterial),
		links:     make(map[int64]model.BOMLink),
	}
}

// Verify interface compliance
var _ catalog.Repository = (*MemoryRepository)(nil)

func (r *MemoryRepository) CreateProduct(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.productSeq++
	p.ID = r.productSeq
	r.products[p.ID] = *p
	return nil
}

func (r *MemoryRepository) FindProduct(_ context.Context, id int64) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *MemoryRepository) FindAllProducts(_ context.Context) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.copyProducts(), nil
}

func (r *MemoryRepository) UpdateProduct(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[p.ID]; !ok {
		return &model.NotFoundError{Entity: "product", ID: p.ID}
	}
	r.products[p.ID] = *p
	return nil
}

func (r *MemoryRepository) DeleteProduct(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return &model.NotFoundError{Entity: "product", ID: id}
	}
	delete(r.products, id)
	for linkID, l := range r.links {
		if l.ProductID == id {
			delete(r.links, linkID)
		}
	}
	return nil
}

func (r *MemoryRepository) CreateRawMaterial(_ context.Context, m *model.RawMaterial) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.materialSeq++
	m.ID = r.materialSeq
	r.materials[m.ID] = *m
	return nil
}

func (r *MemoryRepository) FindRawMaterial(_ context.Context, id int64) (*model.RawMaterial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.materials[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MemoryRepository) FindAllRawMaterials(_ context.Context) ([]model.RawMaterial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.copyRawMaterials(), nil
}

func (r *MemoryRepository) UpdateRawMaterial(_ context.Context, m *model.RawMaterial) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.materials[m.ID]; !ok {
		return &model.NotFoundError{Entity: "raw material", ID: m.ID}
	}
	r.materials[m.ID] = *m
	return nil
}

func (r *MemoryRepository) DeleteRawMaterial(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.materials[id]; !ok {
		return &model.NotFoundError{Entity: "raw material", ID: id}
	}
	delete(r.materials, id)
	for linkID, l := range r.links {
		if l.RawMaterialID == id {
			delete(r.links, linkID)
		}
	}
	return nil
}

func (r *MemoryRepository) CreateLink(_ context.Context, l *model.BOMLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[l.ProductID]; !ok {
		return &model.NotFoundError{Entity: "product", ID: l.ProductID}
	}
	if _, ok := r.materials[l.RawMaterialID]; !ok {
		return &model.NotFoundError{Entity: "raw material", ID: l.RawMaterialID}
	}

	r.linkSeq++
	l.ID = r.linkSeq
	stored := *l
	stored.Product = nil
	stored.RawMaterial = nil
	r.links[l.ID] = stored

	r.expandLink(l)
	return nil
}

func (r *MemoryRepository) FindLink(_ context.Context, id int64) (*model.BOMLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.links[id]
	if !ok {
		return nil, nil
	}
	r.expandLink(&l)
	return &l, nil
}

func (r *MemoryRepository) FindAllLinks(_ context.Context) ([]model.BOMLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	links := r.copyLinks()
	for i := range links {
		r.expandLink(&links[i])
	}
	return links, nil
}

func (r *MemoryRepository) UpdateLink(_ context.Context, id int64, quantityRequired int64) (*model.BOMLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.links[id]
	if !ok {
		return nil, &model.NotFoundError{Entity: "association", ID: id}
	}
	l.QuantityRequired = quantityRequired
	r.links[id] = l

	r.expandLink(&l)
	return &l, nil
}

func (r *MemoryRepository) DeleteLink(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.links[id]; !ok {
		return &model.NotFoundError{Entity: "association", ID: id}
	}
	delete(r.links, id)
	return nil
}

func (r *MemoryRepository) Snapshot(_ context.Context) (*catalog.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return &catalog.Snapshot{
		Products:     r.copyProducts(),
		RawMaterials: r.copyRawMaterials(),
		Links:        r.copyLinks(),
	}, nil
}

// expandLink attaches Product/RawMaterial copies. Cascading deletes hold the
// same lock, so both lookups succeed for any stored link.
func (r *MemoryRepository) expandLink(l *model.BOMLink) {
	if p, ok := r.products[l.ProductID]; ok {
		l.Product = &p
	}
	if m, ok := r.materials[l.RawMaterialID]; ok {
		l.RawMaterial = &m
	}
}

func (r *MemoryRepository) copyProducts() []model.Product {
	products := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}

func (r *MemoryRepository) copyRawMaterials() []model.RawMaterial {
	materials := make([]model.RawMaterial, 0, len(r.materials))
	for _, m := range r.materials {
		materials = append(materials, m)
	}
	sort.Slice(materials, func(i, j int) bool { return materials[i].ID < materials[j].ID })
	return materials
}

func (r *MemoryRepository) copyLinks() []model.BOMLink {
	links := make([]model.BOMLink, 0, len(r.links))
	for _, l := range r.links {
		links = append(links, l)
	}
	sort.Slice(links, func(i, j int) bool { return links[i].ID < links[j].ID })
	return links
}
