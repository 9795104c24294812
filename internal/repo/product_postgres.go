package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rogerio-castellano/products-api/internal/models"
)

const productColumns = "id, name, price, stock"

type PostgresProductRepository struct {
	db      *sql.DB
	table   string
	timeout time.Duration
}

// NewPostgresProductRepository builds a repository over table, e.g. pgx.Identifier{"products_schema", "products"}.
func NewPostgresProductRepository(db *sql.DB, table pgx.Identifier, timeout time.Duration) *PostgresProductRepository {
	return &PostgresProductRepository{
		db:      db,
		table:   table.Sanitize(),
		timeout: timeout,
	}
}

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	query := fmt.Sprintf(`INSERT INTO %s (name, price, stock) VALUES ($1, $2, $3) RETURNING %s`, r.table, productColumns)
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	created, err := scanProduct(r.db.QueryRowContext(ctx, query, p.Name, p.Price, p.Stock))
	if err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return created, nil
}

func (r *PostgresProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id ASC`, productColumns, r.table)
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id int64) (models.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, productColumns, r.table)
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// Update relies on COALESCE so that NULL parameters keep the stored column value.
func (r *PostgresProductRepository) Update(ctx context.Context, id int64, patch models.ProductPatch) (models.Product, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = COALESCE($1, name),
		    price = COALESCE($2, price),
		    stock = COALESCE($3, stock)
		WHERE id = $4
		RETURNING %s`, r.table, productColumns)
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, patch.Name, patch.Price, patch.Stock, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("update product %d: %w", id, err)
	}
	return p, nil
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id int64) (models.Product, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 RETURNING %s`, r.table, productColumns)
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("delete product %d: %w", id, err)
	}
	return p, nil
}

func (r *PostgresProductRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var ok int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 AS ok`).Scan(&ok); err != nil {
		return err
	}
	if ok != 1 {
		return fmt.Errorf("unexpected probe result %d", ok)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Stock)
	return p, err
}
