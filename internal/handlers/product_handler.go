package handlers

import (
	"fmt"
	"log"
	"math"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"catalog/internal/apperr"
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

const maxImageFiles = 10

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/createProducts", h.HandleCreateProduct)
	productRoutes.Get("/products", h.HandleGetProducts)
	productRoutes.Get("/products/price-range", h.HandleGetProductsInPriceRange)
	productRoutes.Put("/products/:productId", h.HandleUpdateProduct)
	productRoutes.Delete("/products", h.HandleDeleteProduct)
}

// HandleCreateProduct creates a new product from a multipart payload with
// scalar form fields, one thumbnail file and up to ten image files.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		log.Printf("Error parsing multipart form: %v", err)
		return fail(c, apperr.Validation("Invalid multipart request body"))
	}

	req, err := parseScalarFields(c)
	if err != nil {
		return fail(c, err)
	}

	tmpDir, err := os.MkdirTemp("", "product-upload-*")
	if err != nil {
		log.Printf("Error creating temp dir: %v", err)
		return fail(c, err)
	}
	defer os.RemoveAll(tmpDir)

	if thumbnails := form.File["thumbnail"]; len(thumbnails) > 0 {
		path, err := saveUploadedFile(c, thumbnails[0], tmpDir)
		if err != nil {
			return fail(c, err)
		}
		req.ThumbnailPath = path
	}

	imageFiles := form.File["images"]
	if len(imageFiles) > maxImageFiles {
		return fail(c, apperr.Validation(fmt.Sprintf("At most %d product images are allowed", maxImageFiles)))
	}
	for _, file := range imageFiles {
		path, err := saveUploadedFile(c, file, tmpDir)
		if err != nil {
			return fail(c, err)
		}
		req.ImagePaths = append(req.ImagePaths, path)
	}

	product, err := h.service.CreateProduct(c.UserContext(), req)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return fail(c, err)
	}

	return respond(c, fiber.StatusCreated, product, "Product created successfully")
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, products, "Successfully loaded all products")
}

// HandleUpdateProduct applies a partial update to an existing product. Only
// fields present in the JSON body are written.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("productId")

	var update models.ProductUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing update request body: %v", err)
		return fail(c, apperr.Validation("Invalid request body"))
	}

	product, err := h.service.UpdateProduct(productID, update)
	if err != nil {
		log.Printf("Error updating product %s: %v", productID, err)
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, product, "Product updated successfully")
}

// HandleDeleteProduct removes a product; the id comes from the JSON body.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	var body struct {
		ID string `json:"id"`
	}
	if err := c.BodyParser(&body); err != nil {
		log.Printf("Error parsing delete request body: %v", err)
		return fail(c, apperr.Validation("Invalid request body"))
	}

	if err := h.service.DeleteProduct(body.ID); err != nil {
		log.Printf("Error deleting product %s: %v", body.ID, err)
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, nil, "Product deleted successfully")
}

// HandleGetProductsInPriceRange retrieves products priced within the
// inclusive [minPrice, maxPrice] range given as query parameters.
func (h *ProductHandler) HandleGetProductsInPriceRange(c *fiber.Ctx) error {
	minStr := c.Query("minPrice")
	maxStr := c.Query("maxPrice")
	if minStr == "" || maxStr == "" {
		return fail(c, apperr.Validation("Both minPrice and maxPrice must be provided"))
	}

	min, errMin := strconv.ParseFloat(minStr, 64)
	max, errMax := strconv.ParseFloat(maxStr, 64)
	if errMin != nil || errMax != nil || !isFinite(min) || !isFinite(max) {
		return fail(c, apperr.Validation("minPrice and maxPrice must be valid numbers"))
	}

	products, err := h.service.GetProductsInPriceRange(min, max)
	if err != nil {
		log.Printf("Error getting products in price range: %v", err)
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, products, "Products fetched successfully")
}

// isFinite rejects the NaN and infinity values ParseFloat happily accepts.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// parseScalarFields reads the eight required scalar form values. Missing
// fields surface as one validation error; the service re-validates ranges.
func parseScalarFields(c *fiber.Ctx) (models.CreateProductRequest, error) {
	var req models.CreateProductRequest

	values := map[string]string{
		"title":              c.FormValue("title"),
		"description":        c.FormValue("description"),
		"price":              c.FormValue("price"),
		"discountPercentage": c.FormValue("discountPercentage"),
		"rating":             c.FormValue("rating"),
		"stock":              c.FormValue("stock"),
		"brand":              c.FormValue("brand"),
		"category":           c.FormValue("category"),
	}
	for _, value := range values {
		if value == "" {
			return req, apperr.Validation("Missing required fields")
		}
	}

	price, err := strconv.ParseFloat(values["price"], 64)
	if err != nil {
		return req, apperr.Validation("price must be a valid number")
	}
	discount, err := strconv.ParseFloat(values["discountPercentage"], 64)
	if err != nil {
		return req, apperr.Validation("discountPercentage must be a valid number")
	}
	rating, err := strconv.ParseFloat(values["rating"], 64)
	if err != nil {
		return req, apperr.Validation("rating must be a valid number")
	}
	stock, err := strconv.Atoi(values["stock"])
	if err != nil {
		return req, apperr.Validation("stock must be a valid integer")
	}

	req.Title = values["title"]
	req.Description = values["description"]
	req.Price = price
	req.DiscountPercentage = discount
	req.Rating = rating
	req.Stock = stock
	req.Brand = values["brand"]
	req.Category = values["category"]
	return req, nil
}

// saveUploadedFile writes a multipart part into dir under a unique name and
// returns the local path.
func saveUploadedFile(c *fiber.Ctx, file *multipart.FileHeader, dir string) (string, error) {
	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))
	destination := filepath.Join(dir, filename)
	if err := c.SaveFile(file, destination); err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}
	return destination, nil
}
