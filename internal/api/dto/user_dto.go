package dto

import (
	"time"

	"github.com/spec-kit/patient-booking/internal/domain"
)

// RegisterRequest payload for account creation.
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the account shape returned to clients. There is no
// password field to leak.
type UserResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// UserFromAccount maps the domain account to its response shape.
func UserFromAccount(account *domain.Account) UserResponse {
	return UserResponse{
		ID:        account.ID,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
	}
}

// UsersFromAccounts maps a slice of accounts.
func UsersFromAccounts(accounts []domain.Account) []UserResponse {
	users := make([]UserResponse, 0, len(accounts))
	for i := range accounts {
		users = append(users, UserFromAccount(&accounts[i]))
	}
	return users
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
