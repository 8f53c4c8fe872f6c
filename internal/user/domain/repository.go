package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	Search string
	Role   Role
}

type Repository interface {
	FindByTelegramID(ctx context.Context, db *gorm.DB, telegramID int64) (*User, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	FindProfile(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Profile, error)
	FindSkills(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]ProfileSkill, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, user *User) error
	UpdateRole(ctx context.Context, db *gorm.DB, id snowflake.ID, role Role) (*User, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]AdminRow, error)
}
