package repositories

import (
	"sync"

	"catalog/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository,
// keyed by external id. Useful for local runs without a database.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByExternalID returns a product by its external id.
func (r *MockProductRepository) GetByExternalID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ExternalID == "" {
		product.ExternalID = uuid.New().String()
	}
	if _, ok := r.products[product.ExternalID]; ok {
		return ErrDuplicateID
	}
	r.products[product.ExternalID] = *product
	return nil
}

// UpdateByExternalID applies only the provided fields to an existing product.
func (r *MockProductRepository) UpdateByExternalID(id string, update models.ProductUpdate) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}

	if update.Title != nil {
		product.Title = *update.Title
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.DiscountPercentage != nil {
		product.DiscountPercentage = *update.DiscountPercentage
	}
	if update.Rating != nil {
		product.Rating = *update.Rating
	}
	if update.Stock != nil {
		product.Stock = *update.Stock
	}
	if update.Brand != nil {
		product.Brand = *update.Brand
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Thumbnail != nil {
		product.Thumbnail = *update.Thumbnail
	}
	if update.Images != nil {
		product.Images = *update.Images
	}

	r.products[id] = product
	return &product, nil
}

// DeleteByExternalID removes a product and reports how many entries it removed.
func (r *MockProductRepository) DeleteByExternalID(id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return 0, nil
	}
	delete(r.products, id)
	return 1, nil
}

// GetInPriceRange returns products priced within [min, max].
func (r *MockProductRepository) GetInPriceRange(min, max float64) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var productList []models.Product
	for _, p := range r.products {
		if p.Price >= min && p.Price <= max {
			productList = append(productList, p)
		}
	}
	return productList, nil
}
