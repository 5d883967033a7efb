package dto

import "github.com/google/uuid"

type StoreRequest struct {
	Name string `json:"name"`
}

type BannerRequest struct {
	Name string `json:"name"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

type ColorRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ProductRequest struct {
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	CategoryID  uuid.UUID `json:"category_id"`
	ColorID     uuid.UUID `json:"color_id"`
	IsFeatured  bool      `json:"is_featured"`
	IsArchived  bool      `json:"is_archived"`
}

type UpdateProductRequest struct {
	Name        *string    `json:"name"`
	Price       *float64   `json:"price"`
	Description *string    `json:"description"`
	CategoryID  *uuid.UUID `json:"category_id"`
	ColorID     *uuid.UUID `json:"color_id"`
	IsFeatured  *bool      `json:"is_featured"`
	IsArchived  *bool      `json:"is_archived"`
}
