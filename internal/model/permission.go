package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PermissionStore defines persistence operations for permissions.
type PermissionStore interface {
	GetByName(ctx context.Context, name string) (Permission, error)
	Create(ctx context.Context, permission Permission) (Permission, error)
}

// Permission is a named atomic capability granted through roles.
type Permission struct {
	ID          uuid.UUID
	Name        string
	DisplayName string
	Description *string
	IsDeletable bool
	IsEditable  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
