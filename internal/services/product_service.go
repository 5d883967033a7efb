package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/models"
	"github.com/storehubhq/storehub-backend/internal/ownership"
	"github.com/storehubhq/storehub-backend/internal/principal"
	"github.com/storehubhq/storehub-backend/internal/uploader"
	"github.com/storehubhq/storehub-backend/internal/validation"
	"gorm.io/gorm"
)

type ProductService struct {
	db       *gorm.DB
	resolver *ownership.Resolver
	uploads  uploader.Client
}

func NewProductService(db *gorm.DB, resolver *ownership.Resolver, uploads uploader.Client) *ProductService {
	return &ProductService{db: db, resolver: resolver, uploads: uploads}
}

// Create resolves category and color as siblings under the same store.
// A reference into another store reads as missing, never as a link.
func (s *ProductService) Create(p *principal.Principal, userID, storeID uuid.UUID, req *dto.ProductRequest) (*models.Product, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, err
	}
	if err := validation.Product(req); err != nil {
		return nil, err
	}
	if _, err := s.resolver.Category(storeID, req.CategoryID); err != nil {
		return nil, err
	}
	if _, err := s.resolver.Color(storeID, req.ColorID); err != nil {
		return nil, err
	}

	product := models.Product{
		ID:          uuid.New(),
		StoreID:     storeID,
		CategoryID:  req.CategoryID,
		ColorID:     req.ColorID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		IsFeatured:  req.IsFeatured,
		IsArchived:  req.IsArchived,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, apperr.Internal("failed to create product", err)
	}
	return &product, nil
}

func (s *ProductService) List(p *principal.Principal, userID, storeID uuid.UUID, page, limit int) ([]models.Product, *dto.Paging, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, nil, err
	}

	var total int64
	if err := s.db.Model(&models.Product{}).Scopes(principal.ForStore(storeID)).Count(&total).Error; err != nil {
		return nil, nil, apperr.Internal("failed to count products", err)
	}

	var products []models.Product
	err := s.db.Scopes(principal.ForStore(storeID)).
		Preload("Images").
		Order("created_at ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, nil, apperr.Internal("failed to list products", err)
	}
	if len(products) == 0 {
		return nil, nil, apperr.NotFound("Products not found")
	}

	return products, dto.NewPaging(page, limit, total), nil
}

func (s *ProductService) Get(p *principal.Principal, userID, storeID, productID uuid.UUID) (*models.Product, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, err
	}

	var product models.Product
	err := s.db.Scopes(principal.ForStore(storeID)).
		Preload("Images").
		First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, apperr.Internal("failed to load product", err)
	}
	return &product, nil
}

func (s *ProductService) Update(p *principal.Principal, userID, storeID, productID uuid.UUID, req *dto.UpdateProductRequest) (*models.Product, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, err
	}
	product, err := s.resolver.Product(storeID, productID)
	if err != nil {
		return nil, err
	}
	if err := validation.UpdateProduct(req); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.CategoryID != nil {
		if _, err := s.resolver.Category(storeID, *req.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.ColorID != nil {
		if _, err := s.resolver.Color(storeID, *req.ColorID); err != nil {
			return nil, err
		}
		updates["color_id"] = *req.ColorID
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.IsArchived != nil {
		updates["is_archived"] = *req.IsArchived
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, apperr.Internal("failed to update product", err)
		}
	}
	return product, nil
}

// Delete cascades to the product's images; the remote assets go
// best-effort after the rows.
func (s *ProductService) Delete(ctx context.Context, p *principal.Principal, userID, storeID, productID uuid.UUID) error {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return err
	}
	product, err := s.resolver.Product(storeID, productID)
	if err != nil {
		return err
	}

	var publicIDs []string
	if err := s.db.Model(&models.Image{}).Where("product_id = ?", productID).
		Pluck("public_id", &publicIDs).Error; err != nil {
		return apperr.Internal("failed to collect image assets", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(product).Error
	})
	if err != nil {
		return apperr.Internal("failed to delete product", err)
	}

	for _, publicID := range publicIDs {
		if err := s.uploads.Destroy(ctx, publicID); err != nil {
			slog.Error("failed to destroy remote asset", "public_id", publicID, "error", err)
		}
	}
	return nil
}
