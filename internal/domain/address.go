package domain

import (
	"time"
)

// Address представляет модель адреса, соответствует таблице addresses в бд.
// ContactID неизменяем: адрес принадлежит ровно одному контакту и транзитивно —
// владельцу этого контакта.
type Address struct {
	ID         int64     `json:"id" db:"id"`
	ContactID  int64     `json:"contact_id" db:"contact_id"`
	Street     string    `json:"street" db:"street"`
	City       string    `json:"city" db:"city"`
	Province   string    `json:"province" db:"province"`
	Country    string    `json:"country" db:"country"`
	PostalCode string    `json:"postal_code" db:"postal_code"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

func (Address) TableName() string {
	return "addresses"
}

// CreateAddressRequest — тело запроса POST /v1/contact/{contactId}/address.
type CreateAddressRequest struct {
	Street     string `json:"street" validate:"omitempty,max=255"`
	City       string `json:"city" validate:"omitempty,max=100"`
	Province   string `json:"province" validate:"omitempty,max=100"`
	Country    string `json:"country" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=10"`
}

// UpdateAddressRequest — тело запроса PUT /v1/contact/{contactId}/address/{addressId}.
type UpdateAddressRequest struct {
	Street     string `json:"street" validate:"omitempty,max=255"`
	City       string `json:"city" validate:"omitempty,max=100"`
	Province   string `json:"province" validate:"omitempty,max=100"`
	Country    string `json:"country" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=10"`
}

// AddressResponse — публичная проекция адреса.
type AddressResponse struct {
	ID         int64  `json:"id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// ToAddressResponse маппит доменную модель адреса в публичную проекцию.
func ToAddressResponse(address *Address) *AddressResponse {
	return &AddressResponse{
		ID:         address.ID,
		Street:     address.Street,
		City:       address.City,
		Province:   address.Province,
		Country:    address.Country,
		PostalCode: address.PostalCode,
	}
}
