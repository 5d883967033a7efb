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

type BannerService struct {
	db       *gorm.DB
	resolver *ownership.Resolver
}

func NewBannerService(db *gorm.DB, resolver *ownership.Resolver) *BannerService {
	return &BannerService{db: db, resolver: resolver}
}

func (s *BannerService) Create(p *principal.Principal, userID, storeID uuid.UUID, req *dto.BannerRequest) (*models.Banner, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, err
	}
	if err := validation.Banner(req); err != nil {
		return nil, err
	}

	banner := models.Banner{
		ID:      uuid.New(),
		StoreID: storeID,
		Name:    req.Name,
	}
	if err := s.db.Create(&banner).Error; err != nil {
		return nil, apperr.Internal("failed to create banner", err)
	}
	return &banner, nil
}

// List fails with NotFound when the page is empty, like the rest of the
// store-scoped catalog listings.
func (s *BannerService) List(p *principal.Principal, userID, storeID uuid.UUID, page, limit int) ([]models.Banner, *dto.Paging, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, nil, err
	}

	var total int64
	if err := s.db.Model(&models.Banner{}).Scopes(principal.ForStore(storeID)).Count(&total).Error; err != nil {
		return nil, nil, apperr.Internal("failed to count banners", err)
	}

	var banners []models.Banner
	err := s.db.Scopes(principal.ForStore(storeID)).
		Order("created_at ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&banners).Error
	if err != nil {
		return nil, nil, apperr.Internal("failed to list banners", err)
	}
	if len(banners) == 0 {
		return nil, nil, apperr.NotFound("Banners not found")
	}

	return banners, dto.NewPaging(page, limit, total), nil
}

func (s *BannerService) Get(p *principal.Principal, userID, storeID, bannerID uuid.UUID) (*models.Banner, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, err
	}
	return s.resolver.Banner(storeID, bannerID)
}

func (s *BannerService) Update(p *principal.Principal, userID, storeID, bannerID uuid.UUID, req *dto.BannerRequest) (*models.Banner, error) {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return nil, err
	}
	banner, err := s.resolver.Banner(storeID, bannerID)
	if err != nil {
		return nil, err
	}
	if err := validation.Banner(req); err != nil {
		return nil, err
	}

	if err := s.db.Model(banner).Update("name", req.Name).Error; err != nil {
		return nil, apperr.Internal("failed to update banner", err)
	}
	return banner, nil
}

func (s *BannerService) Delete(p *principal.Principal, userID, storeID, bannerID uuid.UUID) error {
	if _, err := s.resolver.Store(p, userID, storeID); err != nil {
		return err
	}
	banner, err := s.resolver.Banner(storeID, bannerID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(banner).Error; err != nil {
		return apperr.Internal("failed to delete banner", err)
	}
	return nil
}
