package dto

import (
	"time"

	"github.com/SscSPs/familienkasse/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a local user.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=255"`
	Email    string `json:"email" binding:"required,email,max=320"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest holds the credentials for a password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type UserResponse struct {
	UserID        string    `json:"userID"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	AuthProvider  string    `json:"authProvider"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:        user.UserID,
		Name:          user.Name,
		Email:         user.Email,
		AuthProvider:  string(user.AuthProvider),
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}
}

// ExchangeCodeRequest defines the expected JSON body for the /google/exchange-code endpoint.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required,notblank"`
}

// GoogleLoginURLResponse carries the consent URL and the state it embeds.
type GoogleLoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}
