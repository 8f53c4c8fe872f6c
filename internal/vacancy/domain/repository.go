package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type FeedFilter struct {
	Status Status
	Search string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, vacancy *Vacancy) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Vacancy, error)
	FindOwned(ctx context.Context, db *gorm.DB, id, partnerID snowflake.ID) (*Vacancy, error)
	FindForModeration(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ModerationTarget, error)
	Update(ctx context.Context, db *gorm.DB, vacancy *Vacancy) error
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	Feed(ctx context.Context, db *gorm.DB, filter FeedFilter) ([]FeedItem, error)
	FeedItemByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*FeedItem, error)
	ListByPartner(ctx context.Context, db *gorm.DB, partnerID snowflake.ID, status Status) ([]FeedItem, error)
	ModerationQueue(ctx context.Context, db *gorm.DB) ([]FeedItem, error)
	AppliedVacancyIDs(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]int64, error)

	// ArchiveOverdue bulk-archives every active vacancy whose deadline is
	// strictly before the given date. Idempotent.
	ArchiveOverdue(ctx context.Context, db *gorm.DB, before time.Time) (int64, error)
}
