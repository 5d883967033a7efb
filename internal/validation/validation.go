package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/dto"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	hexRe   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// check accumulates field-level failures and converts them into one
// validation error at the end.
type check struct {
	fields []apperr.FieldError
}

func (v *check) fail(path, message string) {
	v.fields = append(v.fields, apperr.FieldError{Path: path, Message: message})
}

func (v *check) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return apperr.Validation(v.fields...)
}

func (v *check) required(path, value string) {
	if strings.TrimSpace(value) == "" {
		v.fail(path, path+" is required")
	}
}

func (v *check) maxLen(path, value string, max int) {
	if len(value) > max {
		v.fail(path, path+" must be at most "+strconv.Itoa(max)+" characters")
	}
}

func Email(email string) bool { return emailRe.MatchString(email) }

func Register(req *dto.RegisterRequest) error {
	v := &check{}
	v.required("name", req.Name)
	v.maxLen("name", req.Name, 100)
	if !emailRe.MatchString(req.Email) {
		v.fail("email", "email must be a valid email address")
	}
	if len(req.Password) < 8 {
		v.fail("password", "password must be at least 8 characters")
	}
	return v.err()
}

func Login(req *dto.LoginRequest) error {
	v := &check{}
	if !emailRe.MatchString(req.Email) {
		v.fail("email", "email must be a valid email address")
	}
	if len(req.Password) < 8 {
		v.fail("password", "password must be at least 8 characters")
	}
	return v.err()
}

func UpdateUser(req *dto.UpdateUserRequest) error {
	v := &check{}
	if req.Name != nil {
		v.required("name", *req.Name)
		v.maxLen("name", *req.Name, 100)
	}
	if req.Email != nil && !emailRe.MatchString(*req.Email) {
		v.fail("email", "email must be a valid email address")
	}
	if req.Password != nil && len(*req.Password) < 8 {
		v.fail("password", "password must be at least 8 characters")
	}
	return v.err()
}

func Contact(req *dto.ContactRequest) error {
	v := &check{}
	if !phoneRe.MatchString(req.Phone) {
		v.fail("phone", "phone must be a valid phone number")
	}
	return v.err()
}

func Address(req *dto.AddressRequest) error {
	v := &check{}
	v.required("street", req.Street)
	v.required("city", req.City)
	v.required("province", req.Province)
	v.required("country", req.Country)
	v.required("postal_code", req.PostalCode)
	v.maxLen("postal_code", req.PostalCode, 20)
	return v.err()
}

func UpdateAddress(req *dto.UpdateAddressRequest) error {
	v := &check{}
	if req.Street != nil {
		v.required("street", *req.Street)
	}
	if req.City != nil {
		v.required("city", *req.City)
	}
	if req.Province != nil {
		v.required("province", *req.Province)
	}
	if req.Country != nil {
		v.required("country", *req.Country)
	}
	if req.PostalCode != nil {
		v.required("postal_code", *req.PostalCode)
		v.maxLen("postal_code", *req.PostalCode, 20)
	}
	return v.err()
}

func Store(req *dto.StoreRequest) error {
	v := &check{}
	v.required("name", req.Name)
	v.maxLen("name", req.Name, 100)
	return v.err()
}

func Banner(req *dto.BannerRequest) error {
	v := &check{}
	v.required("name", req.Name)
	v.maxLen("name", req.Name, 100)
	return v.err()
}

func Category(req *dto.CategoryRequest) error {
	v := &check{}
	v.required("name", req.Name)
	v.maxLen("name", req.Name, 100)
	return v.err()
}

func Color(req *dto.ColorRequest) error {
	v := &check{}
	v.required("name", req.Name)
	v.maxLen("name", req.Name, 100)
	if !hexRe.MatchString(req.Value) {
		v.fail("value", "value must be a hex color like #1a2b3c")
	}
	return v.err()
}

func Product(req *dto.ProductRequest) error {
	v := &check{}
	v.required("name", req.Name)
	v.maxLen("name", req.Name, 100)
	if req.Price <= 0 {
		v.fail("price", "price must be greater than zero")
	}
	if req.CategoryID == uuid.Nil {
		v.fail("category_id", "category_id is required")
	}
	if req.ColorID == uuid.Nil {
		v.fail("color_id", "color_id is required")
	}
	return v.err()
}

func UpdateProduct(req *dto.UpdateProductRequest) error {
	v := &check{}
	if req.Name != nil {
		v.required("name", *req.Name)
		v.maxLen("name", *req.Name, 100)
	}
	if req.Price != nil && *req.Price <= 0 {
		v.fail("price", "price must be greater than zero")
	}
	if req.CategoryID != nil && *req.CategoryID == uuid.Nil {
		v.fail("category_id", "category_id must not be empty")
	}
	if req.ColorID != nil && *req.ColorID == uuid.Nil {
		v.fail("color_id", "color_id must not be empty")
	}
	return v.err()
}
