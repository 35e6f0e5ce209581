package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// ImageList holds the uploaded image URLs for a product. Stored as a JSON
// array in a single text column.
type ImageList []string

// Value implements driver.Valuer.
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal image list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *ImageList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported image list source type %T", src)
	}
	if err := json.Unmarshal(data, l); err != nil {
		return fmt.Errorf("failed to unmarshal image list: %w", err)
	}
	return nil
}

// Product represents a catalog entry. ExternalID is the application-assigned
// identifier every endpoint looks products up by; the gorm.Model primary key
// stays internal to the storage layer.
type Product struct {
	ExternalID         string    `json:"id" gorm:"uniqueIndex;type:varchar(36)"`
	Title              string    `json:"title" gorm:"type:varchar(255)"`
	Description        string    `json:"description" gorm:"type:text"`
	Price              float64   `json:"price"`
	DiscountPercentage float64   `json:"discountPercentage"`
	Rating             float64   `json:"rating"`
	Stock              int       `json:"stock"`
	Brand              string    `json:"brand" gorm:"type:varchar(255)"`
	Category           string    `json:"category" gorm:"type:varchar(255)"`
	Thumbnail          string    `json:"thumbnail" gorm:"type:text"`
	Images             ImageList `json:"images" gorm:"type:text"`
	gorm.Model         `json:"-"` // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// CreateProductRequest is the parsed multipart creation payload. The scalar
// fields come from form values; ThumbnailPath and ImagePaths point at the
// uploaded parts saved to local temp files by the handler.
type CreateProductRequest struct {
	Title              string  `validate:"required"`
	Description        string  `validate:"required"`
	Price              float64 `validate:"required,gt=0"`
	DiscountPercentage float64 `validate:"gte=0"`
	Rating             float64 `validate:"gte=0"`
	Stock              int     `validate:"gte=0"`
	Brand              string  `validate:"required"`
	Category           string  `validate:"required"`
	ThumbnailPath      string
	ImagePaths         []string
}

// ProductUpdate is a sparse update: only non-nil fields are written, so a
// caller can legitimately set a field to zero or empty.
type ProductUpdate struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	Price              *float64   `json:"price" validate:"omitempty,gt=0"`
	DiscountPercentage *float64   `json:"discountPercentage"`
	Rating             *float64   `json:"rating"`
	Stock              *int       `json:"stock" validate:"omitempty,gte=0"`
	Brand              *string    `json:"brand"`
	Category           *string    `json:"category"`
	Thumbnail          *string    `json:"thumbnail"`
	Images             *ImageList `json:"images"`
}

// Changes flattens the update into a column/value map for the storage layer.
func (u ProductUpdate) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if u.Title != nil {
		changes["title"] = *u.Title
	}
	if u.Description != nil {
		changes["description"] = *u.Description
	}
	if u.Price != nil {
		changes["price"] = *u.Price
	}
	if u.DiscountPercentage != nil {
		changes["discount_percentage"] = *u.DiscountPercentage
	}
	if u.Rating != nil {
		changes["rating"] = *u.Rating
	}
	if u.Stock != nil {
		changes["stock"] = *u.Stock
	}
	if u.Brand != nil {
		changes["brand"] = *u.Brand
	}
	if u.Category != nil {
		changes["category"] = *u.Category
	}
	if u.Thumbnail != nil {
		changes["thumbnail"] = *u.Thumbnail
	}
	if u.Images != nil {
		changes["images"] = *u.Images
	}
	return changes
}
