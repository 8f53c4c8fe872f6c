package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, company *Company) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Company, error)
	FindByInviteCode(ctx context.Context, db *gorm.DB, code string) (*Company, error)
	Update(ctx context.Context, db *gorm.DB, company *Company) error
	SetInviteCode(ctx context.Context, db *gorm.DB, id snowflake.ID, code string) error
	AssignUser(ctx context.Context, db *gorm.DB, userID, companyID snowflake.ID) error
	Members(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]Member, error)
	ListWithCounts(ctx context.Context, db *gorm.DB) ([]AdminRow, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
