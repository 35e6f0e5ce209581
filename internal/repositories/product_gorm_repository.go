package repositories

import (
	"errors"
	"fmt"

	"catalog/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByExternalID retrieves a single product by its external id.
func (r *GORMProductRepository) GetByExternalID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "external_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product. The unique index on external_id is the
// backstop against duplicate ids; the connection must be opened with
// TranslateError so the driver's duplicate-key error surfaces uniformly.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateID
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateByExternalID applies only the fields set in the update and returns
// the refreshed product.
func (r *GORMProductRepository) UpdateByExternalID(id string, update models.ProductUpdate) (*models.Product, error) {
	if _, err := r.GetByExternalID(id); err != nil {
		return nil, err
	}

	changes := update.Changes()
	if len(changes) > 0 {
		res := r.db.Model(&models.Product{}).Where("external_id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, fmt.Errorf("failed to update product %s: %w", id, res.Error)
		}
	}

	return r.GetByExternalID(id)
}

// DeleteByExternalID removes a product and reports how many rows went away.
func (r *GORMProductRepository) DeleteByExternalID(id string) (int64, error) {
	res := r.db.Where("external_id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete product %s: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// GetInPriceRange retrieves products whose price lies in [min, max].
func (r *GORMProductRepository) GetInPriceRange(min, max float64) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("price >= ? AND price <= ?", min, max).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products in price range: %w", err)
	}
	return products, nil
}
