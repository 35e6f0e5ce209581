package repositories

import (
	"errors"

	"catalog/internal/models"
)

// ErrNotFound is returned when no product matches the given external id.
var ErrNotFound = errors.New("product not found")

// ErrDuplicateID is returned when a create violates the unique index on the
// external id. The pre-create duplicate check in the service is only an
// optimization; this error is the real backstop.
var ErrDuplicateID = errors.New("product id already exists")

// ProductRepository defines the interface for product data access. All
// lookups key on the application-assigned external id.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByExternalID(id string) (*models.Product, error)
	Create(product *models.Product) error
	UpdateByExternalID(id string, update models.ProductUpdate) (*models.Product, error)
	DeleteByExternalID(id string) (int64, error)
	GetInPriceRange(min, max float64) ([]models.Product, error)
}
