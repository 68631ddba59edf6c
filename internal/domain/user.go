package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                    uuid.UUID `json:"id"`
	FullName              string    `json:"full_name"`
	Email                 string    `json:"email"`
	Phone                 string    `json:"phone"`
	PasswordHash          string    `json:"-"`
	ProfilePhoto          *string   `json:"profile_photo,omitempty"`
	EmergencyContactName  *string   `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string   `json:"emergency_contact_phone,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

type SignupRequest struct {
	FullName string `json:"full_name" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,notblank"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UpdateProfileRequest carries only the fields being changed; nil means keep.
type UpdateProfileRequest struct {
	FullName              *string `json:"full_name,omitempty" validate:"omitempty,notblank"`
	Phone                 *string `json:"phone,omitempty" validate:"omitempty,notblank"`
	ProfilePhoto          *string `json:"profile_photo,omitempty"`
	EmergencyContactName  *string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string `json:"emergency_contact_phone,omitempty"`
}

func (r UpdateProfileRequest) Empty() bool {
	return r.FullName == nil && r.Phone == nil && r.ProfilePhoto == nil &&
		r.EmergencyContactName == nil && r.EmergencyContactPhone == nil
}

type TrustedContact struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"-"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Relationship *string   `json:"relationship,omitempty"`
	CreatedAt    time.Time `json:"-"`
}

type CreateContactRequest struct {
	Name         string  `json:"name" validate:"required,notblank"`
	Phone        string  `json:"phone" validate:"required,notblank"`
	Relationship *string `json:"relationship,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
