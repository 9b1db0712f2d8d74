package user

import "github.com/google/uuid"

type UserResponse struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	Name    string    `json:"name"`
	Picture string    `json:"picture"`
	Role    string    `json:"role"`
}

type LoginRequest struct {
	Code string `json:"code"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func ToResponse(u *User) UserResponse {
	return UserResponse{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Picture: u.Picture,
		Role:    u.Role,
	}
}
