package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login success"
	MessageSuccessGetMe          = "user profile retrieved successfully"
	MessageSuccessUpdateSettings = "settings updated successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetMe          = "failed to retrieve user profile"
	MessageFailedUpdateSettings = "failed to update settings"

	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrCredentialsInvalid = errors.New("invalid username or password")
)

type (
	RegisterRequest struct {
		Username  string `json:"username" validate:"required,min=3,max=50"`
		Password  string `json:"password" validate:"required,min=6"`
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name" validate:"required"`
		Email     string `json:"email" validate:"required,email"`
		// Hours relative to UTC, used when rendering stored UTC timestamps.
		// Omitted means the server default applies.
		TimezoneOffset *int `json:"timezone_offset" validate:"omitempty,min=-12,max=14"`
	}

	RegisterResponse struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}

	UpdateSettingsRequest struct {
		FirstName      string `json:"first_name" validate:"omitempty,max=50"`
		LastName       string `json:"last_name" validate:"omitempty,max=50"`
		TimezoneOffset *int   `json:"timezone_offset" validate:"omitempty,min=-12,max=14"`
	}

	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	UserResponse struct {
		ID             uint      `json:"id"`
		Username       string    `json:"username"`
		Email          string    `json:"email"`
		FirstName      string    `json:"first_name"`
		LastName       string    `json:"last_name"`
		TimezoneOffset int       `json:"timezone_offset"`
		CreatedAt      time.Time `json:"created_at"`
	}
)
