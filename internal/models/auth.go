package models

import (
	"time"
)

type RegisterRequest struct {
	Username    string    `json:"username" validate:"required,min=3"`
	Email       string    `json:"email" validate:"omitempty,email"`
	Password    string    `json:"password" validate:"required,min=6"`
	KnownAs     string    `json:"known_as" validate:"required"`
	Gender      string    `json:"gender" validate:"required,oneof=male female"`
	DateOfBirth time.Time `json:"date_of_birth" validate:"required"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Username string `json:"username" validate:"required"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	KnownAs  string `json:"known_as"`
	PhotoURL string `json:"photo_url,omitempty"`
	Gender   string `json:"gender"`
}
