package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, application *Application) error
	Exists(ctx context.Context, db *gorm.DB, vacancyID, studentID snowflake.ID) (bool, error)
	CountByVacancy(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) (int64, error)

	// FindApplyTarget resolves an active vacancy together with the
	// partner's chat id. Returns nil when the vacancy is missing or
	// not published.
	FindApplyTarget(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) (*ApplyTarget, error)

	// FindVacancyTitle returns the title of any vacancy regardless of
	// status, or nil when the vacancy does not exist.
	FindVacancyTitle(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) (*string, error)

	ListByStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]MyApplication, error)
	ListApplicants(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) ([]Applicant, error)
}
