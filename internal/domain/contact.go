package domain

import (
	"time"
)

// Contact представляет модель контакта, соответствует таблице contacts в бд.
// UserID назначается при создании и больше никогда не меняется: контакт
// принадлежит ровно одному пользователю.
type Contact struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (Contact) TableName() string {
	return "contacts"
}

// CreateContactRequest — тело запроса POST /v1/contact.
type CreateContactRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"omitempty,email,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
}

// UpdateContactRequest — тело запроса PUT /v1/contact/{contactId}.
type UpdateContactRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"omitempty,email,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
}

// SearchContactRequest — параметры GET /v1/contacts.
// Отсутствующий фильтр не добавляет предиката; присутствующие комбинируются через AND.
type SearchContactRequest struct {
	Name  string `json:"name" validate:"omitempty,max=100"`
	Email string `json:"email" validate:"omitempty,max=100"`
	Phone string `json:"phone" validate:"omitempty,max=20"`
	Page  int    `json:"page" validate:"min=1"`
	Size  int    `json:"size" validate:"min=1,max=100"`
}

// ContactFilter — опциональные substring-фильтры поиска.
// Пустое поле предиката не добавляет; Name сверяется и с first_name, и с last_name.
type ContactFilter struct {
	Name  string
	Email string
	Phone string
}

// ContactResponse — публичная проекция контакта (без owner_user_id).
type ContactResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ToContactResponse маппит доменную модель контакта в публичную проекцию.
func ToContactResponse(contact *Contact) *ContactResponse {
	return &ContactResponse{
		ID:        contact.ID,
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		Phone:     contact.Phone,
	}
}
