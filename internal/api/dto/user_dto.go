package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// SignUpRequest payload for new citizens.
type SignUpRequest struct {
	Name     string `json:"name"`
	Number   string `json:"number"`
	Email    string `json:"email"`
	State    string `json:"state"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Pincode  string `json:"pincode"`
	Password string `json:"password"`
}

// SignInRequest payload. Identifier is an email or a mobile number.
type SignInRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// UpdateProfileRequest is the closed partial-update set; omitted fields are
// left unchanged.
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Number  *string `json:"number"`
	Email   *string `json:"email"`
	State   *string `json:"state"`
	City    *string `json:"city"`
	Address *string `json:"address"`
	Pincode *string `json:"pincode"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the wire shape for a user profile.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Number    string    `json:"number"`
	Email     string    `json:"email"`
	State     string    `json:"state"`
	City      string    `json:"city"`
	Address   string    `json:"address"`
	Pincode   string    `json:"pincode"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromUser maps a domain user onto the response shape.
func FromUser(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Number:    user.Number,
		Email:     user.Email,
		State:     user.State,
		City:      user.City,
		Address:   user.Address,
		Pincode:   user.Pincode,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
