package domain

import "context"

type Repository interface {
	Collect(ctx context.Context) (Stats, error)
}
