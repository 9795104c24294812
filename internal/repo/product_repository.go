package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/products-api/internal/models"
)

// ProductRepository defines the interface for product data operations.
// Every method issues a single store statement.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (models.Product, error)
	Update(ctx context.Context, id int64, patch models.ProductPatch) (models.Product, error)
	// Delete removes the product and returns the record as it was before removal.
	Delete(ctx context.Context, id int64) (models.Product, error)
	// Ping runs a trivial liveness probe against the store.
	Ping(ctx context.Context) error
}

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")
