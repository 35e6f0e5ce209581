package repositories_test

import (
	"fmt"
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int

func setupRepo(t *testing.T) *repositories.GORMProductRepository {
	t.Helper()
	dbCounter++
	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", dbCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Product{}))
	return repositories.NewGORMProductRepository(db)
}

func sampleProduct(id string, price float64) *models.Product {
	return &models.Product{
		ExternalID:         id,
		Title:              "Shoe",
		Description:        "desc",
		Price:              price,
		DiscountPercentage: 5,
		Rating:             4,
		Stock:              10,
		Brand:              "X",
		Category:           "footwear",
		Thumbnail:          "https://media.test/thumb.jpg",
		Images:             models.ImageList{"https://media.test/a.jpg", "https://media.test/b.jpg"},
	}
}

func TestGORMProductRepository_CreateAndGet(t *testing.T) {
	repo := setupRepo(t)

	assert.NoError(t, repo.Create(sampleProduct("prod-1", 50)))

	stored, err := repo.GetByExternalID("prod-1")
	assert.NoError(t, err)
	assert.Equal(t, "Shoe", stored.Title)
	// The image list round-trips through its JSON column intact.
	assert.Equal(t, models.ImageList{"https://media.test/a.jpg", "https://media.test/b.jpg"}, stored.Images)

	_, err = repo.GetByExternalID("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMProductRepository_DuplicateExternalID(t *testing.T) {
	repo := setupRepo(t)

	assert.NoError(t, repo.Create(sampleProduct("prod-1", 50)))
	err := repo.Create(sampleProduct("prod-1", 60))
	assert.ErrorIs(t, err, repositories.ErrDuplicateID)
}

func TestGORMProductRepository_SparseUpdate(t *testing.T) {
	repo := setupRepo(t)
	assert.NoError(t, repo.Create(sampleProduct("prod-1", 50)))

	newPrice := 60.0
	zeroStock := 0
	updated, err := repo.UpdateByExternalID("prod-1", models.ProductUpdate{
		Price: &newPrice,
		Stock: &zeroStock,
	})

	assert.NoError(t, err)
	assert.Equal(t, 60.0, updated.Price)
	assert.Equal(t, 0, updated.Stock) // zero value written intentionally
	// Untouched fields stay put.
	assert.Equal(t, "Shoe", updated.Title)
	assert.Equal(t, "desc", updated.Description)
	assert.Equal(t, 4.0, updated.Rating)

	// An empty update is a no-op, not an error.
	same, err := repo.UpdateByExternalID("prod-1", models.ProductUpdate{})
	assert.NoError(t, err)
	assert.Equal(t, 60.0, same.Price)

	_, err = repo.UpdateByExternalID("missing", models.ProductUpdate{Price: &newPrice})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMProductRepository_UpdateImages(t *testing.T) {
	repo := setupRepo(t)
	assert.NoError(t, repo.Create(sampleProduct("prod-1", 50)))

	images := models.ImageList{"https://media.test/new.jpg"}
	updated, err := repo.UpdateByExternalID("prod-1", models.ProductUpdate{Images: &images})

	assert.NoError(t, err)
	assert.Equal(t, images, updated.Images)
}

func TestGORMProductRepository_Delete(t *testing.T) {
	repo := setupRepo(t)
	assert.NoError(t, repo.Create(sampleProduct("prod-1", 50)))

	count, err := repo.DeleteByExternalID("prod-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.DeleteByExternalID("prod-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGORMProductRepository_GetInPriceRange(t *testing.T) {
	repo := setupRepo(t)
	assert.NoError(t, repo.Create(sampleProduct("prod-1", 25)))
	assert.NoError(t, repo.Create(sampleProduct("prod-2", 75)))
	assert.NoError(t, repo.Create(sampleProduct("prod-3", 1200)))

	// Bounds are inclusive.
	products, err := repo.GetInPriceRange(25, 75)
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = repo.GetInPriceRange(75, 75)
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "prod-2", products[0].ExternalID)

	products, err = repo.GetInPriceRange(2000, 3000)
	assert.NoError(t, err)
	assert.Len(t, products, 0)
}
