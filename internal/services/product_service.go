package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"catalog/internal/apperr"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/pkg/events"
	"catalog/pkg/mediastore"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ProductService handles business logic related to products. Creation is the
// interesting path: it validates, uploads media to the remote store and only
// then persists, so a failed creation never leaves a partial database write.
type ProductService struct {
	repo      repositories.ProductRepository
	media     mediastore.Uploader
	publisher events.Publisher
	validate  *validator.Validate
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case lifecycle events are skipped.
func NewProductService(repo repositories.ProductRepository, media mediastore.Uploader, publisher events.Publisher) *ProductService {
	return &ProductService{
		repo:      repo,
		media:     media,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// CreateProduct runs the full creation workflow: assign a fresh external id,
// validate the scalar fields, check for an id collision, upload the thumbnail
// and all images, persist, then emit a creation event.
//
// Already-uploaded remote objects are not rolled back when a later step
// fails; the store keeps them as orphans.
func (s *ProductService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	id := uuid.New().String()

	if err := s.validate.Struct(req); err != nil {
		return nil, apperr.Validation("Missing required fields")
	}

	// The unique index enforces uniqueness; this pre-check only gives a
	// cheaper 409 before any upload work happens.
	if _, err := s.repo.GetByExternalID(id); err == nil {
		return nil, apperr.Conflict("Product with this ID already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing product: %w", err)
	}

	if req.ThumbnailPath == "" {
		return nil, apperr.Validation("Thumbnail photo is required")
	}

	thumbnail, err := s.media.Upload(ctx, req.ThumbnailPath)
	if err != nil {
		return nil, apperr.Upload("Failed to upload thumbnail photo", err)
	}

	if len(req.ImagePaths) == 0 {
		return nil, apperr.Validation("At least one product image is required")
	}

	imageURLs, err := s.uploadImages(ctx, req.ImagePaths)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		ExternalID:         id,
		Title:              req.Title,
		Description:        req.Description,
		Price:              req.Price,
		DiscountPercentage: req.DiscountPercentage,
		Rating:             req.Rating,
		Stock:              req.Stock,
		Brand:              req.Brand,
		Category:           req.Category,
		Thumbnail:          thumbnail.URL,
		Images:             imageURLs,
	}

	if err := s.repo.Create(product); err != nil {
		if errors.Is(err, repositories.ErrDuplicateID) {
			return nil, apperr.Conflict("Product with this ID already exists")
		}
		return nil, fmt.Errorf("failed to persist product: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishProductCreated(map[string]interface{}{
			"id":       product.ExternalID,
			"title":    product.Title,
			"price":    product.Price,
			"category": product.Category,
		}); err != nil {
			// Event delivery is best effort; the product is already persisted.
			log.Printf("Failed to publish product.created for %s: %v", product.ExternalID, err)
		}
	}

	return product, nil
}

// uploadImages fans out one upload per image. The first failure cancels the
// shared context so in-flight sibling uploads abort instead of running to
// completion.
func (s *ProductService) uploadImages(ctx context.Context, paths []string) (models.ImageList, error) {
	g, gctx := errgroup.WithContext(ctx)
	urls := make(models.ImageList, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			result, err := s.media.Upload(gctx, path)
			if err != nil {
				return apperr.Upload("Failed to upload an image", err)
			}
			urls[i] = result.URL
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// UpdateProduct applies a sparse update to an existing product and returns
// the refreshed record. Fields left nil in the update are untouched.
func (s *ProductService) UpdateProduct(id string, update models.ProductUpdate) (*models.Product, error) {
	if id == "" {
		return nil, apperr.Validation("Product ID is required")
	}
	if err := s.validate.Struct(update); err != nil {
		return nil, apperr.Validation("Invalid update fields")
	}

	product, err := s.repo.UpdateByExternalID(id, update)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.NotFound("Product not found")
	}
	return product, err
}

// DeleteProduct removes a product by its external id.
func (s *ProductService) DeleteProduct(id string) error {
	if id == "" {
		return apperr.Validation("Product ID is required")
	}

	count, err := s.repo.DeleteByExternalID(id)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if count == 0 {
		return apperr.Validation("Invalid product ID")
	}

	if s.publisher != nil {
		if err := s.publisher.PublishProductDeleted(map[string]interface{}{"id": id}); err != nil {
			log.Printf("Failed to publish product.deleted for %s: %v", id, err)
		}
	}
	return nil
}

// GetProductsInPriceRange retrieves products priced within [min, max].
func (s *ProductService) GetProductsInPriceRange(min, max float64) ([]models.Product, error) {
	if min > max {
		return nil, apperr.Validation("minPrice must be less than or equal to maxPrice")
	}
	return s.repo.GetInPriceRange(min, max)
}
