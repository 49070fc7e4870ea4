package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/menu-service/internal/domain"
)

// ProductRepository defines persistence access for menu products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	ToggleActive(ctx context.Context, slug string) (bool, error)
	Delete(ctx context.Context, slug string) error
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO products (name, slug, description, price, image, is_active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	if err := tx.QueryRow(ctx, query,
		product.Name,
		product.Slug,
		product.Description,
		product.Price,
		product.Image,
		product.IsActive,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt); err != nil {
		return err
	}

	if err := linkCategories(ctx, tx, product.ID, product.Categories); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	const query = `
        SELECT p.id, p.name, p.slug, p.description, p.price, p.image, p.is_active,
               p.created_at, p.updated_at,
               COALESCE(array_agg(c.slug) FILTER (WHERE c.slug IS NOT NULL), '{}')
        FROM products p
        LEFT JOIN product_categories pc ON pc.product_id = p.id
        LEFT JOIN categories c ON c.id = pc.category_id
        WHERE p.slug=$1
        GROUP BY p.id`

	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, slug).Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&product.Description,
		&product.Price,
		&product.Image,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.Categories,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	const query = `
        SELECT p.id, p.name, p.slug, p.description, p.price, p.image, p.is_active,
               p.created_at, p.updated_at,
               COALESCE(array_agg(c.slug) FILTER (WHERE c.slug IS NOT NULL), '{}')
        FROM products p
        LEFT JOIN product_categories pc ON pc.product_id = p.id
        LEFT JOIN categories c ON c.id = pc.category_id
        GROUP BY p.id
        ORDER BY p.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Slug,
			&product.Description,
			&product.Price,
			&product.Image,
			&product.IsActive,
			&product.CreatedAt,
			&product.UpdatedAt,
			&product.Categories,
		); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE products SET name=$1, description=$2, price=$3, image=$4, is_active=$5, updated_at=NOW()
        WHERE slug=$6
        RETURNING id`

	if err := tx.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.Image,
		product.IsActive,
		product.Slug,
	).Scan(&product.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM product_categories WHERE product_id=$1`, product.ID); err != nil {
		return err
	}
	if err := linkCategories(ctx, tx, product.ID, product.Categories); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *productRepository) ToggleActive(ctx context.Context, slug string) (bool, error) {
	const query = `
        UPDATE products SET is_active = NOT is_active, updated_at=NOW()
        WHERE slug=$1
        RETURNING is_active`

	var active bool
	if err := r.pool.QueryRow(ctx, query, slug).Scan(&active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrProductNotFound
		}
		return false, err
	}
	return active, nil
}

func (r *productRepository) Delete(ctx context.Context, slug string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE slug=$1`, slug)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func linkCategories(ctx context.Context, tx pgx.Tx, productID string, slugs []string) error {
	for _, slug := range slugs {
		const query = `
            INSERT INTO product_categories (product_id, category_id)
            SELECT $1, id FROM categories WHERE slug=$2`
		cmd, err := tx.Exec(ctx, query, productID, slug)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrCategoryNotFound
		}
	}
	return nil
}
