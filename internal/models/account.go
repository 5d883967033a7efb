package models

import (
	"time"

	"github.com/google/uuid"
)

// Account links a user to a federated identity. One row per
// (provider, provider_account_id) pair.
type Account struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Provider          string    `gorm:"size:50;not null;uniqueIndex:idx_accounts_provider_account" json:"provider"`
	ProviderAccountID string    `gorm:"size:255;not null;uniqueIndex:idx_accounts_provider_account" json:"provider_account_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
