package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/console-server/internal/model"
)

type userResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	Roles       []string  `json:"roles"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toUserResponse(user model.User) userResponse {
	roles := user.RoleNames()
	if roles == nil {
		roles = []string{}
	}
	return userResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Description: user.Description,
		IsActive:    user.IsActive,
		Roles:       roles,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
