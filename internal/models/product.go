package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID     uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	ColorID     uuid.UUID `gorm:"type:uuid;not null;index" json:"color_id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Price       float64   `gorm:"type:numeric(12,2);not null" json:"price"`
	Description string    `gorm:"type:text" json:"description"`
	IsFeatured  bool      `gorm:"default:false" json:"is_featured"`
	IsArchived  bool      `gorm:"default:false" json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Images []Image `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}
