package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Image stores the remote URL and the image host's identifier so the
// asset can be destroyed when the row goes away.
type Image struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	URL       string         `gorm:"type:text;not null" json:"url"`
	PublicID  string         `gorm:"size:255;not null" json:"public_id"`
	Metadata  datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
