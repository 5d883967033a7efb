package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/models"
	"github.com/storehubhq/storehub-backend/internal/ownership"
	"github.com/storehubhq/storehub-backend/internal/principal"
	"github.com/storehubhq/storehub-backend/internal/uploader"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UploadFile is one binary part of a multipart image upload.
type UploadFile struct {
	Name   string
	Reader io.Reader
}

type ImageService struct {
	db       *gorm.DB
	resolver *ownership.Resolver
	uploads  uploader.Client
}

func NewImageService(db *gorm.DB, resolver *ownership.Resolver, uploads uploader.Client) *ImageService {
	return &ImageService{db: db, resolver: resolver, uploads: uploads}
}

// Create is all-or-nothing: every file is pushed to the image host
// first; if any push fails, the already-pushed assets are destroyed
// best-effort and no rows are written. Rows for a fully successful batch
// are inserted in one transaction.
func (s *ImageService) Create(ctx context.Context, p *principal.Principal, userID, storeID, productID uuid.UUID, files []UploadFile) ([]models.Image, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, err
	}
	if _, err := s.resolver.Product(storeID, productID); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, apperr.Validation(apperr.FieldError{
			Path: "files", Message: "at least one file is required",
		})
	}

	assets := make([]*uploader.Asset, 0, len(files))
	for _, f := range files {
		asset, err := s.uploads.Upload(ctx, f.Name, f.Reader)
		if err != nil {
			for _, uploaded := range assets {
				if derr := s.uploads.Destroy(ctx, uploaded.PublicID); derr != nil {
					slog.Error("failed to destroy remote asset", "public_id", uploaded.PublicID, "error", derr)
				}
			}
			return nil, apperr.Internal("failed to upload images", err)
		}
		assets = append(assets, asset)
	}

	images := make([]models.Image, 0, len(assets))
	for _, asset := range assets {
		image := models.Image{
			ID:        uuid.New(),
			ProductID: productID,
			URL:       asset.URL,
			PublicID:  asset.PublicID,
		}
		if b, err := json.Marshal(asset.Metadata); err == nil {
			image.Metadata = datatypes.JSON(b)
		}
		images = append(images, image)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&images).Error
	})
	if err != nil {
		for _, asset := range assets {
			if derr := s.uploads.Destroy(ctx, asset.PublicID); derr != nil {
				slog.Error("failed to destroy remote asset", "public_id", asset.PublicID, "error", derr)
			}
		}
		return nil, apperr.Internal("failed to persist images", err)
	}
	return images, nil
}

func (s *ImageService) List(p *principal.Principal, userID, storeID, productID uuid.UUID, page, limit int) ([]models.Image, *dto.Paging, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, nil, err
	}
	if _, err := s.resolver.Product(storeID, productID); err != nil {
		return nil, nil, err
	}

	var total int64
	if err := s.db.Model(&models.Image{}).Where("product_id = ?", productID).Count(&total).Error; err != nil {
		return nil, nil, apperr.Internal("failed to count images", err)
	}

	images := []models.Image{}
	err := s.db.Where("product_id = ?", productID).
		Order("created_at ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&images).Error
	if err != nil {
		return nil, nil, apperr.Internal("failed to list images", err)
	}

	return images, dto.NewPaging(page, limit, total), nil
}

func (s *ImageService) Get(p *principal.Principal, userID, storeID, productID, imageID uuid.UUID) (*models.Image, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, err
	}
	if _, err := s.resolver.Product(storeID, productID); err != nil {
		return nil, err
	}
	return s.resolver.Image(productID, imageID)
}

func (s *ImageService) Delete(ctx context.Context, p *principal.Principal, userID, storeID, productID, imageID uuid.UUID) error {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return err
	}
	if _, err := s.resolver.Product(storeID, productID); err != nil {
		return err
	}
	image, err := s.resolver.Image(productID, imageID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(image).Error; err != nil {
		return apperr.Internal("failed to delete image", err)
	}

	if err := s.uploads.Destroy(ctx, image.PublicID); err != nil {
		slog.Error("failed to destroy remote asset", "public_id", image.PublicID, "error", err)
	}
	return nil
}
