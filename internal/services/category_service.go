package services

import (
	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/models"
	"github.com/storehubhq/storehub-backend/internal/ownership"
	"github.com/storehubhq/storehub-backend/internal/principal"
	"github.com/storehubhq/storehub-backend/internal/validation"
	"gorm.io/gorm"
)

type CategoryService struct {
	db       *gorm.DB
	resolver *ownership.Resolver
}

func NewCategoryService(db *gorm.DB, resolver *ownership.Resolver) *CategoryService {
	return &CategoryService{db: db, resolver: resolver}
}

func (s *CategoryService) Create(p *principal.Principal, userID, storeID uuid.UUID, req *dto.CategoryRequest) (*models.Category, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, err
	}
	if err := validation.Category(req); err != nil {
		return nil, err
	}

	category := models.Category{
		ID:      uuid.New(),
		StoreID: storeID,
		Name:    req.Name,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, apperr.Internal("failed to create category", err)
	}
	return &category, nil
}

func (s *CategoryService) List(p *principal.Principal, userID, storeID uuid.UUID, page, limit int) ([]models.Category, *dto.Paging, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, nil, err
	}

	var total int64
	if err := s.db.Model(&models.Category{}).Scopes(principal.ForStore(storeID)).Count(&total).Error; err != nil {
		return nil, nil, apperr.Internal("failed to count categories", err)
	}

	var categories []models.Category
	err := s.db.Scopes(principal.ForStore(storeID)).
		Order("created_at ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&categories).Error
	if err != nil {
		return nil, nil, apperr.Internal("failed to list categories", err)
	}
	if len(categories) == 0 {
		return nil, nil, apperr.NotFound("Categories not found")
	}

	return categories, dto.NewPaging(page, limit, total), nil
}

func (s *CategoryService) Get(p *principal.Principal, userID, storeID, categoryID uuid.UUID) (*models.Category, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, err
	}
	return s.resolver.Category(storeID, categoryID)
}

func (s *CategoryService) Update(p *principal.Principal, userID, storeID, categoryID uuid.UUID, req *dto.CategoryRequest) (*models.Category, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, err
	}
	category, err := s.resolver.Category(storeID, categoryID)
	if err != nil {
		return nil, err
	}
	if err := validation.Category(req); err != nil {
		return nil, err
	}

	if err := s.db.Model(category).Update("name", req.Name).Error; err != nil {
		return nil, apperr.Internal("failed to update category", err)
	}
	return category, nil
}

// Delete refuses to orphan products that still reference the category.
func (s *CategoryService) Delete(p *principal.Principal, userID, storeID, categoryID uuid.UUID) error {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return err
	}
	category, err := s.resolver.Category(storeID, categoryID)
	if err != nil {
		return err
	}

	var inUse int64
	if err := s.db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&inUse).Error; err != nil {
		return apperr.Internal("failed to check category usage", err)
	}
	if inUse > 0 {
		return apperr.Conflict("category still has products")
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperr.Internal("failed to delete category", err)
	}
	return nil
}
