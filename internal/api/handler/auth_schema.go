package handler

import "time"

// errorResponse mirrors the central error envelope for responses built
// inline by handlers.
type errorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Suspended bool   `json:"suspended,omitempty"`
}

type signupRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=6"`
	Role        string `json:"role"         validate:"required,oneof=buyer seller"`
	DisplayName string `json:"display_name" validate:"required"`
	Phone       string `json:"phone"        validate:"omitempty,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// userResponse is the credential projection returned to clients. The
// password hash never leaves the service boundary.
type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Suspended bool      `json:"suspended"`
	CreatedAt time.Time `json:"created_at"`
}

type profileResponse struct {
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

type authResponse struct {
	Success bool             `json:"success"`
	User    *userResponse    `json:"user,omitempty"`
	Profile *profileResponse `json:"profile,omitempty"`
}
