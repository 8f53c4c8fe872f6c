package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, request *ExportRequest) error

	// VacancyOwned reports whether the vacancy exists and belongs to
	// the partner.
	VacancyOwned(ctx context.Context, db *gorm.DB, vacancyID, partnerID snowflake.ID) (bool, error)
	HasPending(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) (bool, error)

	ListPending(ctx context.Context, db *gorm.DB) ([]PendingRow, error)

	FindWorkbookHeader(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) (*WorkbookHeader, error)
	WorkbookRows(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) ([]StudentRow, error)
	VerifiedSkills(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) ([]StudentSkill, error)

	// MarkSent flips the vacancy's pending request to sent and returns
	// it, or nil when no request was pending.
	MarkSent(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) (*ExportRequest, error)

	FindPartnerTelegramID(ctx context.Context, db *gorm.DB, partnerID snowflake.ID) (int64, error)
	FindVacancyTitle(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) (string, error)
}
