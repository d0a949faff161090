package postgres

import (
	"context"
	"database/sql"
	"time"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/logger"
	"society-management-backend/internal/repository"
)

const productColumns = `id, name, category, COALESCE(description, ''), quantity, price, unit, min_stock, is_active, created_at, updated_at`

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	p := &domain.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Quantity, &p.Price,
		&p.Unit, &p.MinStock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (name, category, description, quantity, price, unit, min_stock, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING id`
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return conn(ctx, r.db).QueryRowContext(ctx, query, p.Name, p.Category, p.Description, p.Quantity, p.Price,
		p.Unit, p.MinStock, p.IsActive, now).Scan(&p.ID)
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	p, err := scanProduct(conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	return p, notFound(err)
}

func (r *productRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Product, error) {
	logger.DatabaseCall("SELECT FOR UPDATE", "products", "productID", id)
	p, err := scanProduct(conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	return p, notFound(err)
}

func (r *productRepository) ListActive(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE is_active = true ORDER BY name`)
}

func (r *productRepository) ListByCategory(ctx context.Context, category domain.ProductCategory) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE category = $1 AND is_active = true ORDER BY name`, category)
}

func (r *productRepository) ListLowStock(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE quantity <= min_stock AND is_active = true ORDER BY quantity ASC`)
}

func (r *productRepository) list(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET name=$1, category=$2, description=$3, quantity=$4, price=$5, unit=$6, min_stock=$7, is_active=$8, updated_at=$9 WHERE id=$10`
	p.UpdatedAt = time.Now().UTC()
	res, err := conn(ctx, r.db).ExecContext(ctx, query, p.Name, p.Category, p.Description, p.Quantity, p.Price,
		p.Unit, p.MinStock, p.IsActive, p.UpdatedAt, p.ID)
	return expectOne(res, err)
}

// DecrementStock refuses to take quantity below zero.
func (r *productRepository) DecrementStock(ctx context.Context, id int32, qty int) error {
	logger.DatabaseCall("UPDATE", "products.quantity", "productID", id, "qty", qty)
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE products SET quantity = quantity - $1, updated_at = NOW() WHERE id = $2 AND quantity >= $1`, qty, id)
	err = expectOne(res, err)
	logger.DatabaseResult("UPDATE", 1, err, "productID", id)
	return err
}

func (r *productRepository) Delete(ctx context.Context, id int32) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	return expectOne(res, err)
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM products`)
}
