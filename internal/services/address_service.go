package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/models"
	"github.com/storehubhq/storehub-backend/internal/ownership"
	"github.com/storehubhq/storehub-backend/internal/principal"
	"github.com/storehubhq/storehub-backend/internal/validation"
	"gorm.io/gorm"
)

type AddressService struct {
	db       *gorm.DB
	resolver *ownership.Resolver
}

func NewAddressService(db *gorm.DB, resolver *ownership.Resolver) *AddressService {
	return &AddressService{db: db, resolver: resolver}
}

// Create enforces the single-primary invariant: the demote of the old
// primary and the insert of the new one commit together or not at all.
// The first address a user creates becomes primary regardless of the flag.
func (s *AddressService) Create(p *principal.Principal, userID uuid.UUID, req *dto.AddressRequest) (*models.Address, error) {
	if _, err := s.resolver.User(p, userID); err != nil {
		return nil, err
	}
	if err := validation.Address(req); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(userID, req, uuid.Nil); err != nil {
		return nil, err
	}

	address := models.Address{
		ID:         uuid.New(),
		UserID:     userID,
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
		IsPrimary:  req.IsPrimary,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var primaries int64
		if err := tx.Model(&models.Address{}).
			Scopes(principal.ForOwner(userID)).
			Where("is_primary = ?", true).
			Count(&primaries).Error; err != nil {
			return err
		}

		if req.IsPrimary || primaries == 0 {
			if err := demotePrimary(tx, userID); err != nil {
				return err
			}
			address.IsPrimary = true
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		return nil, apperr.Internal("failed to create address", err)
	}
	return &address, nil
}

// List returns 200 with an empty array when the user has no addresses.
func (s *AddressService) List(p *principal.Principal, userID uuid.UUID, page, limit int) ([]models.Address, *dto.Paging, error) {
	if _, err := s.resolver.User(p, userID); err != nil {
		return nil, nil, err
	}

	var total int64
	if err := s.db.Model(&models.Address{}).Scopes(principal.ForOwner(userID)).Count(&total).Error; err != nil {
		return nil, nil, apperr.Internal("failed to count addresses", err)
	}

	addresses := []models.Address{}
	err := s.db.Scopes(principal.ForOwner(userID)).
		Order("is_primary DESC, created_at ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&addresses).Error
	if err != nil {
		return nil, nil, apperr.Internal("failed to list addresses", err)
	}

	return addresses, dto.NewPaging(page, limit, total), nil
}

func (s *AddressService) Get(p *principal.Principal, userID, addressID uuid.UUID) (*models.Address, error) {
	if _, err := s.resolver.User(p, userID); err != nil {
		return nil, err
	}
	return s.find(s.db, userID, addressID)
}

// Update applies partial changes. Setting is_primary demotes every other
// address inside the same transaction; unsetting it is allowed and may
// leave the user with no primary.
func (s *AddressService) Update(p *principal.Principal, userID, addressID uuid.UUID, req *dto.UpdateAddressRequest) (*models.Address, error) {
	if _, err := s.resolver.User(p, userID); err != nil {
		return nil, err
	}
	if err := validation.UpdateAddress(req); err != nil {
		return nil, err
	}

	var updated *models.Address
	err := s.db.Transaction(func(tx *gorm.DB) error {
		address, err := s.find(tx, userID, addressID)
		if err != nil {
			return err
		}

		if err := s.checkDuplicateUpdate(tx, userID, address, req); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Street != nil {
			updates["street"] = *req.Street
		}
		if req.City != nil {
			updates["city"] = *req.City
		}
		if req.Province != nil {
			updates["province"] = *req.Province
		}
		if req.Country != nil {
			updates["country"] = *req.Country
		}
		if req.PostalCode != nil {
			updates["postal_code"] = *req.PostalCode
		}
		if req.IsPrimary != nil {
			if *req.IsPrimary {
				if err := demotePrimary(tx, userID); err != nil {
					return err
				}
			}
			updates["is_primary"] = *req.IsPrimary
		}

		if len(updates) > 0 {
			if err := tx.Model(address).Updates(updates).Error; err != nil {
				return err
			}
		}
		updated = address
		return nil
	})
	if err != nil {
		var e *apperr.Error
		if errors.As(err, &e) {
			return nil, e
		}
		return nil, apperr.Internal("failed to update address", err)
	}
	return updated, nil
}

// Delete removes the address. Deleting the primary leaves the user with
// no primary address; nothing is auto-promoted.
func (s *AddressService) Delete(p *principal.Principal, userID, addressID uuid.UUID) error {
	if _, err := s.resolver.User(p, userID); err != nil {
		return err
	}
	address, err := s.find(s.db, userID, addressID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(address).Error; err != nil {
		return apperr.Internal("failed to delete address", err)
	}
	return nil
}

func (s *AddressService) find(db *gorm.DB, userID, addressID uuid.UUID) (*models.Address, error) {
	var address models.Address
	err := db.Scopes(principal.ForOwner(userID)).First(&address, "id = ?", addressID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Address not found")
		}
		return nil, apperr.Internal("failed to load address", err)
	}
	return &address, nil
}

func demotePrimary(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Model(&models.Address{}).
		Scopes(principal.ForOwner(userID)).
		Where("is_primary = ?", true).
		Update("is_primary", false).Error
}

// checkDuplicate rejects an address tuple the user already registered.
func (s *AddressService) checkDuplicate(userID uuid.UUID, req *dto.AddressRequest, excludeID uuid.UUID) error {
	query := s.db.Model(&models.Address{}).Scopes(principal.ForOwner(userID)).
		Where("street = ? AND city = ? AND province = ? AND country = ? AND postal_code = ?",
			req.Street, req.City, req.Province, req.Country, req.PostalCode)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return apperr.Internal("failed to check address uniqueness", err)
	}
	if count > 0 {
		return apperr.Conflict("address already registered")
	}
	return nil
}

func (s *AddressService) checkDuplicateUpdate(tx *gorm.DB, userID uuid.UUID, current *models.Address, req *dto.UpdateAddressRequest) error {
	next := dto.AddressRequest{
		Street:     current.Street,
		City:       current.City,
		Province:   current.Province,
		Country:    current.Country,
		PostalCode: current.PostalCode,
	}
	if req.Street != nil {
		next.Street = *req.Street
	}
	if req.City != nil {
		next.City = *req.City
	}
	if req.Province != nil {
		next.Province = *req.Province
	}
	if req.Country != nil {
		next.Country = *req.Country
	}
	if req.PostalCode != nil {
		next.PostalCode = *req.PostalCode
	}

	query := tx.Model(&models.Address{}).Scopes(principal.ForOwner(userID)).
		Where("street = ? AND city = ? AND province = ? AND country = ? AND postal_code = ?",
			next.Street, next.City, next.Province, next.Country, next.PostalCode).
		Where("id <> ?", current.ID)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return apperr.Internal("failed to check address uniqueness", err)
	}
	if count > 0 {
		return apperr.Conflict("address already registered")
	}
	return nil
}
