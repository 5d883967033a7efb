package models

import (
	"time"

	"github.com/google/uuid"
)

// Store is the root of a tenant's catalog subtree.
type Store struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Banners    []Banner   `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"-"`
	Categories []Category `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"-"`
	Colors     []Color    `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"-"`
	Products   []Product  `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"-"`
}
