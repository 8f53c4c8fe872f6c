package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, skill *Skill) error
	ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]Skill, error)

	// FindDeletable returns the skill only when it belongs to the user
	// and has not been verified yet.
	FindDeletable(ctx context.Context, db *gorm.DB, id, userID snowflake.ID) (*Skill, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	ListPending(ctx context.Context, db *gorm.DB) ([]PendingSkill, error)
	FindReviewTarget(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ReviewTarget, error)
	SetVerified(ctx context.Context, db *gorm.DB, id snowflake.ID, verified bool) error
}
