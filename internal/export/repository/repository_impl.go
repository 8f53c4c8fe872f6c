package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smart-practice/backend/internal/export/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, request *domain.ExportRequest) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO export_requests (id, vacancy_id, partner_id, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		request.ID,
		request.VacancyID,
		request.PartnerID,
		string(request.Status),
		request.CreatedAt,
		request.UpdatedAt,
	).Error
}

func (r *repo) VacancyOwned(ctx context.Context, db *gorm.DB, vacancyID, partnerID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM vacancies WHERE id = ? AND partner_id = ?`,
		vacancyID,
		partnerID,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) HasPending(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM export_requests WHERE vacancy_id = ? AND status = 'pending'`,
		vacancyID,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) ListPending(ctx context.Context, db *gorm.DB) ([]domain.PendingRow, error) {
	var rows []domain.PendingRow
	err := db.WithContext(ctx).Raw(
		`SELECT er.*,
		        v.title AS vacancy_title,
		        c.name AS company_name,
		        u.full_name AS partner_name,
		        u.telegram_id AS partner_telegram_id
		 FROM export_requests er
		 JOIN vacancies v ON er.vacancy_id = v.id
		 JOIN companies c ON v.company_id = c.id
		 JOIN users u ON er.partner_id = u.id
		 WHERE er.status = 'pending'
		 ORDER BY er.created_at DESC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) FindWorkbookHeader(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) (*domain.WorkbookHeader, error) {
	var header domain.WorkbookHeader
	err := db.WithContext(ctx).Raw(
		`SELECT v.id AS vacancy_id,
		        v.title,
		        c.name AS company_name
		 FROM vacancies v
		 JOIN companies c ON v.company_id = c.id
		 WHERE v.id = ?`,
		vacancyID,
	).Scan(&header).Error
	if err != nil {
		return nil, err
	}
	if header.VacancyID == 0 {
		return nil, nil
	}
	return &header, nil
}

func (r *repo) WorkbookRows(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) ([]domain.StudentRow, error) {
	var rows []domain.StudentRow
	err := db.WithContext(ctx).Raw(
		`SELECT u.id AS student_id,
		        u.full_name,
		        u.phone,
		        u.course,
		        m.name AS major_name,
		        a.created_at AS applied_at
		 FROM applications a
		 JOIN users u ON a.student_id = u.id
		 LEFT JOIN majors m ON u.major_id = m.id
		 WHERE a.vacancy_id = ?
		 ORDER BY a.created_at DESC`,
		vacancyID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) VerifiedSkills(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) ([]domain.StudentSkill, error) {
	var rows []domain.StudentSkill
	err := db.WithContext(ctx).Raw(
		`SELECT s.user_id AS student_id,
		        s.skill_name
		 FROM skills s
		 JOIN applications a ON a.student_id = s.user_id
		 WHERE a.vacancy_id = ? AND s.is_verified = ?
		 ORDER BY s.created_at ASC`,
		vacancyID,
		true,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) MarkSent(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) (*domain.ExportRequest, error) {
	var request domain.ExportRequest
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM export_requests WHERE vacancy_id = ? AND status = 'pending'`,
		vacancyID,
	).Scan(&request).Error
	if err != nil {
		return nil, err
	}
	if request.ID == 0 {
		return nil, nil
	}

	err = db.WithContext(ctx).Exec(
		`UPDATE export_requests
		 SET status = 'sent', updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		request.ID,
	).Error
	if err != nil {
		return nil, err
	}
	request.Status = domain.StatusSent
	return &request, nil
}

func (r *repo) FindPartnerTelegramID(ctx context.Context, db *gorm.DB, partnerID snowflake.ID) (int64, error) {
	var id int64
	err := db.WithContext(ctx).Raw(
		`SELECT telegram_id FROM users WHERE id = ?`,
		partnerID,
	).Scan(&id).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) FindVacancyTitle(ctx context.Context, db *gorm.DB, vacancyID snowflake.ID) (string, error) {
	var title string
	err := db.WithContext(ctx).Raw(
		`SELECT title FROM vacancies WHERE id = ?`,
		vacancyID,
	).Scan(&title).Error
	if err != nil {
		return "", err
	}
	return title, nil
}
