package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/fabrica/production-service/config"
	"github.com/fabrica/production-service/internal/catalog"
	"github.com/fabrica/production-service/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
    id       BIGSERIAL PRIMARY KEY,
    name     TEXT NOT NULL,
    price    DOUBLE PRECISION NOT NULL,
    quantity BIGINT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS raw_materials (
    id             BIGSERIAL PRIMARY KEY,
    name           TEXT NOT NULL,
    stock_quantity BIGINT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS product_materials (
    id                BIGSERIAL PRIMARY KEY,
    product_id        BIGINT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
    raw_material_id   BIGINT NOT NULL REFERENCES raw_materials (id) ON DELETE CASCADE,
    quantity_required BIGINT NOT NULL
);
`

// Open connects to Postgres and applies the pool settings from config.
func Open(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)
	return db, nil
}

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// Verify interface compliance
var _ catalog.Repository = (*PGRepository)(nil)

// EnsureSchema creates the catalog tables. Link cascades are enforced by the
// foreign keys, so a product or raw material delete can never leave orphans.
func (r *PGRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, schema)
	return err
}

func (r *PGRepository) CreateProduct(ctx context.Context, p *model.Product) error {
	query := `INSERT INTO products (name, price, quantity) VALUES ($1, $2, $3) RETURNING id`
	return r.DB.GetContext(ctx, &p.ID, query, p.Name, p.Price, p.Quantity)
}

func (r *PGRepository) FindProduct(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := r.DB.GetContext(ctx, &p, `SELECT * FROM products WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindAllProducts(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	err := r.DB.SelectContext(ctx, &products, `SELECT * FROM products ORDER BY id`)
	return products, err
}

func (r *PGRepository) UpdateProduct(ctx context.Context, p *model.Product) error {
	query := `UPDATE products SET name = :name, price = :price, quantity = :quantity WHERE id = :id`
	res, err := r.DB.NamedExecContext(ctx, query, p)
	if err != nil {
		return err
	}
	return checkAffected(res, "product", p.ID)
}

func (r *PGRepository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, "product", id)
}

func (r *PGRepository) CreateRawMaterial(ctx context.Context, m *model.RawMaterial) error {
	query := `INSERT INTO raw_materials (name, stock_quantity) VALUES ($1, $2) RETURNING id`
	return r.DB.GetContext(ctx, &m.ID, query, m.Name, m.StockQuantity)
}

func (r *PGRepository) FindRawMaterial(ctx context.Context, id int64) (*model.RawMaterial, error) {
	var m model.RawMaterial
	err := r.DB.GetContext(ctx, &m, `SELECT * FROM raw_materials WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *PGRepository) FindAllRawMaterials(ctx context.Context) ([]model.RawMaterial, error) {
	materials := []model.RawMaterial{}
	err := r.DB.SelectContext(ctx, &materials, `SELECT * FROM raw_materials ORDER BY id`)
	return materials, err
}

func (r *PGRepository) UpdateRawMaterial(ctx context.Context, m *model.RawMaterial) error {
	query := `UPDATE raw_materials SET name = :name, stock_quantity = :stock_quantity WHERE id = :id`
	res, err := r.DB.NamedExecContext(ctx, query, m)
	if err != nil {
		return err
	}
	return checkAffected(res, "raw material", m.ID)
}

func (r *PGRepository) DeleteRawMaterial(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM raw_materials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, "raw material", id)
}

// linkRow carries a link joined with both referenced entities.
type linkRow struct {
	model.BOMLink
	ProductName     string  `db:"product_name"`
	ProductPrice    float64 `db:"product_price"`
	ProductQuantity int64   `db:"product_quantity"`
	MaterialName    string  `db:"material_name"`
	MaterialStock   int64   `db:"material_stock"`
}

func (row *linkRow) toLink() model.BOMLink {
	l := row.BOMLink
	l.Product = &model.Product{
		ID:       l.ProductID,
		Name:     row.ProductName,
		Price:    row.ProductPrice,
		Quantity: row.ProductQuantity,
	}
	l.RawMaterial = &model.RawMaterial{
		ID:            l.RawMaterialID,
		Name:          row.MaterialName,
		StockQuantity: row.MaterialStock,
	}
	return l
}

const linkSelect = `
SELECT l.id, l.product_id, l.raw_material_id, l.quantity_required,
       p.name AS product_name, p.price AS product_price, p.quantity AS product_quantity,
       m.name AS material_name, m.stock_quantity AS material_stock
FROM product_materials l
JOIN products p ON p.id = l.product_id
JOIN raw_materials m ON m.id = l.raw_material_id
`

func (r *PGRepository) CreateLink(ctx context.Context, l *model.BOMLink) error {
	query := `INSERT INTO product_materials (product_id, raw_material_id, quantity_required)
	          VALUES ($1, $2, $3) RETURNING id`
	err := r.DB.GetContext(ctx, &l.ID, query, l.ProductID, l.RawMaterialID, l.QuantityRequired)
	if err != nil {
		return translateFKViolation(err, l)
	}

	created, err := r.FindLink(ctx, l.ID)
	if err != nil {
		return err
	}
	if created != nil {
		*l = *created
	}
	return nil
}

func (r *PGRepository) FindLink(ctx context.Context, id int64) (*model.BOMLink, error) {
	var row linkRow
	err := r.DB.GetContext(ctx, &row, linkSelect+`WHERE l.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	link := row.toLink()
	return &link, nil
}

func (r *PGRepository) FindAllLinks(ctx context.Context) ([]model.BOMLink, error) {
	rows := []linkRow{}
	if err := r.DB.SelectContext(ctx, &rows, linkSelect+`ORDER BY l.id`); err != nil {
		return nil, err
	}
	links := make([]model.BOMLink, 0, len(rows))
	for i := range rows {
		links = append(links, rows[i].toLink())
	}
	return links, nil
}

func (r *PGRepository) UpdateLink(ctx context.Context, id int64, quantityRequired int64) (*model.BOMLink, error) {
	query := `UPDATE product_materials SET quantity_required = $1 WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, quantityRequired, id)
	if err != nil {
		return nil, err
	}
	if err := checkAffected(res, "association", id); err != nil {
		return nil, err
	}
	return r.FindLink(ctx, id)
}

func (r *PGRepository) DeleteLink(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM product_materials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, "association", id)
}

// Snapshot reads all three tables inside one repeatable-read transaction so
// the planner never sees a torn view of a cascade in progress.
func (r *PGRepository) Snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	tx, err := r.DB.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	snap := &catalog.Snapshot{
		Products:     []model.Product{},
		RawMaterials: []model.RawMaterial{},
		Links:        []model.BOMLink{},
	}
	if err := tx.SelectContext(ctx, &snap.Products, `SELECT * FROM products ORDER BY id`); err != nil {
		return nil, err
	}
	if err := tx.SelectContext(ctx, &snap.RawMaterials, `SELECT * FROM raw_materials ORDER BY id`); err != nil {
		return nil, err
	}
	if err := tx.SelectContext(ctx, &snap.Links, `SELECT id, product_id, raw_material_id, quantity_required FROM product_materials ORDER BY id`); err != nil {
		return nil, err
	}
	return snap, tx.Commit()
}

func checkAffected(res sql.Result, entity string, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &model.NotFoundError{Entity: entity, ID: id}
	}
	return nil
}

// translateFKViolation maps a foreign-key failure on link insert to the
// NotFoundError the caller expects for an absent product or raw material.
func translateFKViolation(err error, l *model.BOMLink) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23503" {
		return err
	}
	if pgErr.ConstraintName == "product_materials_raw_material_id_fkey" {
		return &model.NotFoundError{Entity: "raw material", ID: l.RawMaterialID}
	}
	return &model.NotFoundError{Entity: "product", ID: l.ProductID}
}
