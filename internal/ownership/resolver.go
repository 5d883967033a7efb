package ownership

import (
	"errors"

	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/models"
	"github.com/storehubhq/storehub-backend/internal/principal"
	"gorm.io/gorm"
)

// Resolver verifies every link of a nested resource path before a
// service touches it: the path user must be the principal (admins may
// act on any user), and each child must sit under its declared parent.
// The checks run before request-body validation so unauthorized callers
// learn nothing about what exists.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// User is the top of every chain. The principal comparison happens
// before any query, so a foreign caller cannot probe for user existence.
func (r *Resolver) User(p *principal.Principal, userID uuid.UUID) (*models.User, error) {
	if p.ID != userID && !p.IsAdmin() {
		return nil, apperr.Forbidden("you do not have access to this resource")
	}

	var user models.User
	if err := r.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("failed to resolve user", err)
	}
	return &user, nil
}

// Store resolves a store under an already-verified user. A store that
// exists under a different owner is indistinguishable from a missing one.
func (r *Resolver) Store(p *principal.Principal, userID, storeID uuid.UUID) (*models.Store, error) {
	if _, err := r.User(p, userID); err != nil {
		return nil, err
	}

	var store models.Store
	err := r.db.Scopes(principal.ForOwner(userID)).First(&store, "id = ?", storeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Store not found")
		}
		return nil, apperr.Internal("failed to resolve store", err)
	}
	return &store, nil
}

// Category, Color, Banner and Product resolve catalog entities under an
// already-verified store. They are also used for sibling checks on
// product create/update, where a cross-store reference must read as
// missing.

func (r *Resolver) Category(storeID, categoryID uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.Scopes(principal.ForStore(storeID)).First(&category, "id = ?", categoryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Category not found")
		}
		return nil, apperr.Internal("failed to resolve category", err)
	}
	return &category, nil
}

func (r *Resolver) Color(storeID, colorID uuid.UUID) (*models.Color, error) {
	var color models.Color
	err := r.db.Scopes(principal.ForStore(storeID)).First(&color, "id = ?", colorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Color not found")
		}
		return nil, apperr.Internal("failed to resolve color", err)
	}
	return &color, nil
}

func (r *Resolver) Banner(storeID, bannerID uuid.UUID) (*models.Banner, error) {
	var banner models.Banner
	err := r.db.Scopes(principal.ForStore(storeID)).First(&banner, "id = ?", bannerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Banner not found")
		}
		return nil, apperr.Internal("failed to resolve banner", err)
	}
	return &banner, nil
}

func (r *Resolver) Product(storeID, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.Scopes(principal.ForStore(storeID)).First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, apperr.Internal("failed to resolve product", err)
	}
	return &product, nil
}

func (r *Resolver) Image(productID, imageID uuid.UUID) (*models.Image, error) {
	var image models.Image
	err := r.db.Where("product_id = ?", productID).First(&image, "id = ?", imageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Image not found")
		}
		return nil, apperr.Internal("failed to resolve image", err)
	}
	return &image, nil
}
