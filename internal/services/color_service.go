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

type ColorService struct {
	db       *gorm.DB
	resolver *ownership.Resolver
}

func NewColorService(db *gorm.DB, resolver *ownership.Resolver) *ColorService {
	return &ColorService{db: db, resolver: resolver}
}

func (s *ColorService) Create(p *principal.Principal, userID, storeID uuid.UUID, req *dto.ColorRequest) (*models.Color, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, err
	}
	if err := validation.Color(req); err != nil {
		return nil, err
	}

	color := models.Color{
		ID:      uuid.New(),
		StoreID: storeID,
		Name:    req.Name,
		Value:   req.Value,
	}
	if err := s.db.Create(&color).Error; err != nil {
		return nil, apperr.Internal("failed to create color", err)
	}
	return &color, nil
}

func (s *ColorService) List(p *principal.Principal, userID, storeID uuid.UUID, page, limit int) ([]models.Color, *dto.Paging, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, nil, err
	}

	var total int64
	if err := s.db.Model(&models.Color{}).Scopes(principal.ForStore(storeID)).Count(&total).Error; err != nil {
		return nil, nil, apperr.Internal("failed to count colors", err)
	}

	var colors []models.Color
	err := s.db.Scopes(principal.ForStore(storeID)).
		Order("created_at ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&colors).Error
	if err != nil {
		return nil, nil, apperr.Internal("failed to list colors", err)
	}
	if len(colors) == 0 {
		return nil, nil, apperr.NotFound("Colors not found")
	}

	return colors, dto.NewPaging(page, limit, total), nil
}

func (s *ColorService) Get(p *principal.Principal, userID, storeID, colorID uuid.UUID) (*models.Color, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, err
	}
	return s.resolver.Color(storeID, colorID)
}

func (s *ColorService) Update(p *principal.Principal, userID, storeID, colorID uuid.UUID, req *dto.ColorRequest) (*models.Color, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, err
	}
	color, err := s.resolver.Color(storeID, colorID)
	if err != nil {
		return nil, err
	}
	if err := validation.Color(req); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"name": req.Name, "value": req.Value}
	if err := s.db.Model(color).Updates(updates).Error; err != nil {
		return nil, apperr.Internal("failed to update color", err)
	}
	return color, nil
}

// Delete refuses to orphan products that still reference the color.
func (s *ColorService) Delete(p *principal.Principal, userID, storeID, colorID uuid.UUID) error {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return err
	}
	color, err := s.resolver.Color(storeID, colorID)
	if err != nil {
		return err
	}

	var inUse int64
	if err := s.db.Model(&models.Product{}).Where("color_id = ?", colorID).Count(&inUse).Error; err != nil {
		return apperr.Internal("failed to check color usage", err)
	}
	if inUse > 0 {
		return apperr.Conflict("color still has products")
	}

	if err := s.db.Delete(color).Error; err != nil {
		return apperr.Internal("failed to delete color", err)
	}
	return nil
}
