package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smart-practice/backend/internal/application/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, application *domain.Application) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO applications (id, vacancy_id, student_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		application.ID,
		application.VacancyID,
		application.StudentID,
		application.Status,
		application.CreatedAt,
	).Error
}

func (r *repo) Exists(ctx context.Context, db *gorm.DB, vacancyID, studentID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM applications WHERE vacancy_id = ? AND student_id = ?`,
		vacancyID,
		studentID,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) CountByVacancy(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM applications WHERE vacancy_id = ?`,
		vacancyID,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) FindApplyTarget(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) (*domain.ApplyTarget, error) {
	var target domain.ApplyTarget
	err := db.WithContext(ctx).Raw(
		`SELECT v.id,
		        v.title,
		        u.telegram_id AS partner_telegram_id
		 FROM vacancies v
		 JOIN users u ON v.partner_id = u.id
		 WHERE v.id = ? AND v.status = 'active'`,
		vacancyID,
	).Scan(&target).Error
	if err != nil {
		return nil, err
	}
	if target.ID == 0 {
		return nil, nil
	}
	return &target, nil
}

func (r *repo) FindVacancyTitle(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) (*string, error) {
	var rows []string
	err := db.WithContext(ctx).Raw(
		`SELECT title FROM vacancies WHERE id = ?`,
		vacancyID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *repo) ListByStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]domain.MyApplication, error) {
	var rows []domain.MyApplication
	err := db.WithContext(ctx).Raw(
		`SELECT a.id,
		        a.status AS app_status,
		        a.created_at,
		        v.id AS vacancy_id,
		        v.title,
		        v.description,
		        v.position,
		        v.deadline_date,
		        v.reward,
		        v.status AS vacancy_status,
		        v.header_bg_color,
		        c.name AS company_name,
		        c.logo_url AS company_logo
		 FROM applications a
		 JOIN vacancies v ON a.vacancy_id = v.id
		 JOIN companies c ON v.company_id = c.id
		 WHERE a.student_id = ?
		 ORDER BY a.created_at DESC`,
		studentID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListApplicants(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) ([]domain.Applicant, error) {
	var rows []domain.Applicant
	err := db.WithContext(ctx).Raw(
		`SELECT a.id,
		        a.student_id,
		        a.created_at AS applied_at,
		        u.full_name,
		        u.phone,
		        u.course,
		        m.name AS major_name,
		        (SELECT COUNT(*) FROM skills s WHERE s.user_id = u.id AND s.is_verified = ?) AS verified_skills_count
		 FROM applications a
		 JOIN users u ON a.student_id = u.id
		 LEFT JOIN majors m ON u.major_id = m.id
		 WHERE a.vacancy_id = ?
		 ORDER BY a.created_at DESC`,
		true,
		vacancyID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
