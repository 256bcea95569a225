package response

import (
	"time"

	"userapp/internal/core/domain"
)

type UserResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func NewUserResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.UUID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		DeletedAt: user.DeletedAt,
	}
}

func NewUserListResponse(users []domain.User) []UserResponse {
	data := make([]UserResponse, 0, len(users))

	for _, user := range users {
		data = append(data, NewUserResponse(user))
	}

	return data
}

type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

type ConflictResponse struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UnknownErrorResponse struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}
