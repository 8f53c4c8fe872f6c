package reference

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smart-practice/backend/internal/reference/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) ListMajors(ctx context.Context) ([]domain.Major, error) {
	var majors []domain.Major
	err := r.db.WithContext(ctx).
		Raw(`SELECT * FROM majors ORDER BY id`).
		Scan(&majors).Error
	if err != nil {
		return nil, err
	}
	if majors == nil {
		majors = []domain.Major{}
	}
	return majors, nil
}

func (r *repository) CreateMajor(ctx context.Context, major *domain.Major) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO majors (id, name, created_at) VALUES (?, ?, ?)`,
		major.ID,
		major.Name,
		major.CreatedAt,
	).Error
}

func (r *repository) UpdateMajor(ctx context.Context, major *domain.Major) error {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE majors SET name = ? WHERE id = ?`,
		major.Name,
		major.ID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrMajorNotFound
	}
	return nil
}

func (r *repository) DeleteMajor(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM majors WHERE id = ?`, id).Error
}
