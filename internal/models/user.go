package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Email         string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password      string    `gorm:"size:255" json:"-"`
	Role          string    `gorm:"size:20;default:'CUSTOMER'" json:"role"`
	ImageURL      *string   `gorm:"type:text" json:"image_url"`
	ImagePublicID *string   `gorm:"size:255" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Accounts  []Account `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Contacts  []Contact `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Stores    []Store   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
