package models

import (
	"time"

	"github.com/google/uuid"
)

// Address rows carry the single-primary invariant: at most one row per
// user has is_primary = true. The address service enforces it inside a
// transaction; the schema does not.
type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Street     string    `gorm:"size:255;not null" json:"street"`
	City       string    `gorm:"size:100;not null" json:"city"`
	Province   string    `gorm:"size:100;not null" json:"province"`
	Country    string    `gorm:"size:100;not null" json:"country"`
	PostalCode string    `gorm:"size:20;not null" json:"postal_code"`
	IsPrimary  bool      `gorm:"default:false;index" json:"is_primary"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
