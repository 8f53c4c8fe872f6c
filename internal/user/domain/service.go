package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type UpdateProfileRequest struct {
	FullName string
	MajorID  *snowflake.ID
	Course   int
}

type ListRequest struct {
	Search string
	Role   string
}

type ChangeRoleRequest struct {
	UserID snowflake.ID
	Role   string
}

type Service interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (User, error)
	Profile(ctx context.Context, userID snowflake.ID) (Profile, error)
	UpdateProfile(ctx context.Context, userID snowflake.ID, req UpdateProfileRequest) (User, error)
	List(ctx context.Context, req ListRequest) ([]AdminRow, error)
	ChangeRole(ctx context.Context, req ChangeRoleRequest) (User, error)
}

var (
	ErrNotFound    = errors.New("user_not_found")
	ErrInvalidRole = errors.New("invalid_role")
)
