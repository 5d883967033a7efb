package dto

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type ContactRequest struct {
	Phone string `json:"phone"`
}

type AddressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
	IsPrimary  bool   `json:"is_primary"`
}

type UpdateAddressRequest struct {
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	Country    *string `json:"country"`
	PostalCode *string `json:"postal_code"`
	IsPrimary  *bool   `json:"is_primary"`
}
