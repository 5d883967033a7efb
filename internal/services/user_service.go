package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/models"
	"github.com/storehubhq/storehub-backend/internal/ownership"
	"github.com/storehubhq/storehub-backend/internal/principal"
	"github.com/storehubhq/storehub-backend/internal/uploader"
	"github.com/storehubhq/storehub-backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db       *gorm.DB
	resolver *ownership.Resolver
	uploads  uploader.Client
}

func NewUserService(db *gorm.DB, resolver *ownership.Resolver, uploads uploader.Client) *UserService {
	return &UserService{db: db, resolver: resolver, uploads: uploads}
}

func (s *UserService) Get(p *principal.Principal, userID uuid.UUID) (*models.User, error) {
	return s.resolver.User(p, userID)
}

func (s *UserService) Update(p *principal.Principal, userID uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.resolver.User(p, userID)
	if err != nil {
		return nil, err
	}
	if err := validation.UpdateUser(req); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		var other models.User
		if err := s.db.Where("email = ? AND id <> ?", *req.Email, userID).First(&other).Error; err == nil {
			return nil, apperr.Conflict("email already registered")
		}
		updates["email"] = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Internal("failed to hash password", err)
		}
		updates["password"] = string(hash)
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, apperr.Internal("failed to update user", err)
		}
	}
	return user, nil
}

// Delete removes the user and every row the user owns, in one
// transaction, children before parents.
func (s *UserService) Delete(ctx context.Context, p *principal.Principal, userID uuid.UUID) error {
	user, err := s.resolver.User(p, userID)
	if err != nil {
		return err
	}

	var publicIDs []string
	productIDs := s.db.Model(&models.Product{}).Select("id").
		Where("store_id IN (?)", s.db.Model(&models.Store{}).Select("id").Where("user_id = ?", userID))
	if err := s.db.Model(&models.Image{}).Where("product_id IN (?)", productIDs).
		Pluck("public_id", &publicIDs).Error; err != nil {
		return apperr.Internal("failed to collect image assets", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		storeIDs := tx.Model(&models.Store{}).Select("id").Where("user_id = ?", userID)
		productIDs := tx.Model(&models.Product{}).Select("id").Where("store_id IN (?)", storeIDs)

		if err := tx.Where("product_id IN (?)", productIDs).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		for _, m := range []interface{}{&models.Product{}, &models.Category{}, &models.Color{}, &models.Banner{}} {
			if err := tx.Where("store_id IN (?)", storeIDs).Delete(m).Error; err != nil {
				return err
			}
		}
		for _, m := range []interface{}{&models.Store{}, &models.Address{}, &models.Contact{}, &models.Account{}, &models.RefreshToken{}} {
			if err := tx.Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		return apperr.Internal("failed to delete user", err)
	}

	// Remote assets are cleaned up best-effort after the rows are gone.
	for _, publicID := range publicIDs {
		if err := s.uploads.Destroy(ctx, publicID); err != nil {
			slog.Error("failed to destroy remote asset", "public_id", publicID, "error", err)
		}
	}
	if user.ImagePublicID != nil {
		if err := s.uploads.Destroy(ctx, *user.ImagePublicID); err != nil {
			slog.Error("failed to destroy remote asset", "public_id", *user.ImagePublicID, "error", err)
		}
	}
	return nil
}

// UpdateAvatar pushes the file to the image host and swaps the profile
// image, destroying the previous asset if there was one.
func (s *UserService) UpdateAvatar(ctx context.Context, p *principal.Principal, userID uuid.UUID, filename string, r io.Reader) (*models.User, error) {
	user, err := s.resolver.User(p, userID)
	if err != nil {
		return nil, err
	}

	asset, err := s.uploads.Upload(ctx, filename, r)
	if err != nil {
		return nil, apperr.Internal("failed to upload profile image", err)
	}

	previous := user.ImagePublicID
	updates := map[string]interface{}{
		"image_url":       asset.URL,
		"image_public_id": asset.PublicID,
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, apperr.Internal("failed to update profile image", err)
	}
	user.ImageURL = &asset.URL
	user.ImagePublicID = &asset.PublicID

	if previous != nil {
		if err := s.uploads.Destroy(ctx, *previous); err != nil {
			slog.Error("failed to destroy remote asset", "public_id", *previous, "error", err)
		}
	}
	return user, nil
}

// ListAll backs the admin user listing; the route is admin-guarded.
func (s *UserService) ListAll(page, limit int) ([]models.User, *dto.Paging, error) {
	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, nil, apperr.Internal("failed to count users", err)
	}

	var users []models.User
	err := s.db.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, nil, apperr.Internal("failed to list users", err)
	}

	return users, dto.NewPaging(page, limit, total), nil
}
