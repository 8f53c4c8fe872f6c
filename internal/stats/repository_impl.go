package stats

import (
	"context"

	"github.com/smart-practice/backend/internal/stats/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) Collect(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats

	err := r.db.WithContext(ctx).
		Raw(`SELECT role, COUNT(*) AS count FROM users GROUP BY role ORDER BY role`).
		Scan(&stats.Users).Error
	if err != nil {
		return domain.Stats{}, err
	}

	err = r.db.WithContext(ctx).
		Raw(`SELECT status, COUNT(*) AS count FROM vacancies GROUP BY status ORDER BY status`).
		Scan(&stats.Vacancies).Error
	if err != nil {
		return domain.Stats{}, err
	}

	err = r.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) AS total,
		            COUNT(DISTINCT student_id) AS unique_students,
		            COUNT(DISTINCT vacancy_id) AS unique_vacancies
		     FROM applications`).
		Scan(&stats.Applications).Error
	if err != nil {
		return domain.Stats{}, err
	}

	if stats.Users == nil {
		stats.Users = []domain.RoleCount{}
	}
	if stats.Vacancies == nil {
		stats.Vacancies = []domain.StatusCount{}
	}

	return stats, nil
}
