package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	ListMajors(ctx context.Context) ([]Major, error)
	CreateMajor(ctx context.Context, major *Major) error

	// UpdateMajor renames a major. Returns ErrMajorNotFound when no
	// row matches.
	UpdateMajor(ctx context.Context, major *Major) error
	DeleteMajor(ctx context.Context, id snowflake.ID) error
}
