package services

import (
	"context"
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

type StoreService struct {
	db       *gorm.DB
	resolver *ownership.Resolver
	uploads  uploader.Client
}

func NewStoreService(db *gorm.DB, resolver *ownership.Resolver, uploads uploader.Client) *StoreService {
	return &StoreService{db: db, resolver: resolver, uploads: uploads}
}

func (s *StoreService) Create(p *principal.Principal, userID uuid.UUID, req *dto.StoreRequest) (*models.Store, error) {
	if _, err := s.resolver.User(p, userID); err != nil {
		return nil, err
	}
	if err := validation.Store(req); err != nil {
		return nil, err
	}
	if err := s.checkDuplicateName(userID, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	store := models.Store{
		ID:     uuid.New(),
		UserID: userID,
		Name:   req.Name,
	}
	if err := s.db.Create(&store).Error; err != nil {
		return nil, apperr.Internal("failed to create store", err)
	}
	return &store, nil
}

func (s *StoreService) List(p *principal.Principal, userID uuid.UUID, page, limit int) ([]models.Store, *dto.Paging, error) {
	if _, err := s.resolver.User(p, userID); err != nil {
		return nil, nil, err
	}

	var total int64
	if err := s.db.Model(&models.Store{}).Scopes(principal.ForOwner(userID)).Count(&total).Error; err != nil {
		return nil, nil, apperr.Internal("failed to count stores", err)
	}

	stores := []models.Store{}
	err := s.db.Scopes(principal.ForOwner(userID)).
		Order("created_at ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&stores).Error
	if err != nil {
		return nil, nil, apperr.Internal("failed to list stores", err)
	}

	return stores, dto.NewPaging(page, limit, total), nil
}

func (s *StoreService) Get(p *principal.Principal, userID, storeID uuid.UUID) (*models.Store, error) {
	return s.resolver.Store(p, userID, storeID)
}

func (s *StoreService) Update(p *principal.Principal, userID, storeID uuid.UUID, req *dto.StoreRequest) (*models.Store, error) {
	store, err := s.resolver.Store(p, userID, storeID)
	if err != nil {
		return nil, err
	}
	if err := validation.Store(req); err != nil {
		return nil, err
	}
	if err := s.checkDuplicateName(userID, req.Name, storeID); err != nil {
		return nil, err
	}

	if err := s.db.Model(store).Update("name", req.Name).Error; err != nil {
		return nil, apperr.Internal("failed to update store", err)
	}
	return store, nil
}

// Delete removes the store and its whole catalog subtree in one
// transaction, then destroys the remote image assets best-effort.
func (s *StoreService) Delete(ctx context.Context, p *principal.Principal, userID, storeID uuid.UUID) error {
	store, err := s.resolver.Store(p, userID, storeID)
	if err != nil {
		return err
	}

	var publicIDs []string
	productIDs := s.db.Model(&models.Product{}).Select("id").Where("store_id = ?", storeID)
	if err := s.db.Model(&models.Image{}).Where("product_id IN (?)", productIDs).
		Pluck("public_id", &publicIDs).Error; err != nil {
		return apperr.Internal("failed to collect image assets", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		productIDs := tx.Model(&models.Product{}).Select("id").Where("store_id = ?", storeID)
		if err := tx.Where("product_id IN (?)", productIDs).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		for _, m := range []interface{}{&models.Product{}, &models.Category{}, &models.Color{}, &models.Banner{}} {
			if err := tx.Scopes(principal.ForStore(storeID)).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(store).Error
	})
	if err != nil {
		return apperr.Internal("failed to delete store", err)
	}

	for _, publicID := range publicIDs {
		if err := s.uploads.Destroy(ctx, publicID); err != nil {
			slog.Error("failed to destroy remote asset", "public_id", publicID, "error", err)
		}
	}
	return nil
}

// checkDuplicateName rejects a store name the owner already uses. The
// same name under a different owner is allowed.
func (s *StoreService) checkDuplicateName(userID uuid.UUID, name string, excludeID uuid.UUID) error {
	query := s.db.Model(&models.Store{}).Scopes(principal.ForOwner(userID)).Where("name = ?", name)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return apperr.Internal("failed to check store uniqueness", err)
	}
	if count > 0 {
		return apperr.Conflict("store name already in use")
	}
	return nil
}
