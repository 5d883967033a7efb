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

type ContactService struct {
	db       *gorm.DB
	resolver *ownership.Resolver
}

func NewContactService(db *gorm.DB, resolver *ownership.Resolver) *ContactService {
	return &ContactService{db: db, resolver: resolver}
}

func (s *ContactService) Create(p *principal.Principal, userID uuid.UUID, req *dto.ContactRequest) (*models.Contact, error) {
	if _, err := s.resolver.User(p, userID); err != nil {
		return nil, err
	}
	if err := validation.Contact(req); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(userID, req.Phone, uuid.Nil); err != nil {
		return nil, err
	}

	contact := models.Contact{
		ID:     uuid.New(),
		UserID: userID,
		Phone:  req.Phone,
	}
	if err := s.db.Create(&contact).Error; err != nil {
		return nil, apperr.Internal("failed to create contact", err)
	}
	return &contact, nil
}

// List returns 200 with an empty array when the user has no contacts.
func (s *ContactService) List(p *principal.Principal, userID uuid.UUID, page, limit int) ([]models.Contact, *dto.Paging, error) {
	if _, err := s.resolver.User(p, userID); err != nil {
		return nil, nil, err
	}

	var total int64
	if err := s.db.Model(&models.Contact{}).Scopes(principal.ForOwner(userID)).Count(&total).Error; err != nil {
		return nil, nil, apperr.Internal("failed to count contacts", err)
	}

	contacts := []models.Contact{}
	err := s.db.Scopes(principal.ForOwner(userID)).
		Order("created_at ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&contacts).Error
	if err != nil {
		return nil, nil, apperr.Internal("failed to list contacts", err)
	}

	return contacts, dto.NewPaging(page, limit, total), nil
}

func (s *ContactService) Get(p *principal.Principal, userID, contactID uuid.UUID) (*models.Contact, error) {
	if _, err := s.resolver.User(p, userID); err != nil {
		return nil, err
	}
	return s.find(userID, contactID)
}

func (s *ContactService) Update(p *principal.Principal, userID, contactID uuid.UUID, req *dto.ContactRequest) (*models.Contact, error) {
	if _, err := s.resolver.User(p, userID); err != nil {
		return nil, err
	}
	contact, err := s.find(userID, contactID)
	if err != nil {
		return nil, err
	}
	if err := validation.Contact(req); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(userID, req.Phone, contactID); err != nil {
		return nil, err
	}

	if err := s.db.Model(contact).Update("phone", req.Phone).Error; err != nil {
		return nil, apperr.Internal("failed to update contact", err)
	}
	return contact, nil
}

func (s *ContactService) Delete(p *principal.Principal, userID, contactID uuid.UUID) error {
	if _, err := s.resolver.User(p, userID); err != nil {
		return err
	}
	contact, err := s.find(userID, contactID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(contact).Error; err != nil {
		return apperr.Internal("failed to delete contact", err)
	}
	return nil
}

func (s *ContactService) find(userID, contactID uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := s.db.Scopes(principal.ForOwner(userID)).First(&contact, "id = ?", contactID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Contact not found")
		}
		return nil, apperr.Internal("failed to load contact", err)
	}
	return &contact, nil
}

// checkDuplicate rejects a phone number the user already registered.
// excludeID skips the row being updated.
func (s *ContactService) checkDuplicate(userID uuid.UUID, phone string, excludeID uuid.UUID) error {
	query := s.db.Model(&models.Contact{}).Scopes(principal.ForOwner(userID)).Where("phone = ?", phone)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return apperr.Internal("failed to check contact uniqueness", err)
	}
	if count > 0 {
		return apperr.Conflict("phone number already registered")
	}
	return nil
}
