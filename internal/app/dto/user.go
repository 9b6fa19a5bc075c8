package dto

import (
	"time"

	domainuser "stayfinder/internal/domain/user"
)

// UserProfile is the password-free representation exposed over HTTP.
type UserProfile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthResponse mirrors the shape the front-ends persist after signup/login.
type AuthResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func MapUserProfile(u *domainuser.User) UserProfile {
	if u == nil {
		return UserProfile{}
	}
	return UserProfile{
		ID:        string(u.ID),
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewAuthResponse(u *domainuser.User, token string) AuthResponse {
	resp := AuthResponse{Token: token}
	if u != nil {
		resp.UserID = string(u.ID)
		resp.Username = u.Username
		resp.Email = u.Email
		resp.Role = string(u.Role)
	}
	return resp
}
