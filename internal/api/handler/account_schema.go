package handler

import "github.com/userhive/account-api/internal/core/domain"

// registerRequest is the body for self-registration and admin creation.
// It carries no role field: the service fixes the role per endpoint.
type registerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// updateProfileRequest is the self-service partial update. Absent fields
// keep their stored value; present fields must still pass shape checks.
// There is deliberately no role field.
type updateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName,omitempty"  validate:"omitempty,min=1"`
	Email     *string `json:"email,omitempty"     validate:"omitempty,email"`
	Password  *string `json:"password,omitempty"  validate:"omitempty,min=6"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type listUsersResponse struct {
	Users []domain.User `json:"users"`
}
