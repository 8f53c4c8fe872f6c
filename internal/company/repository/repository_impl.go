package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smart-practice/backend/internal/company/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, company *domain.Company) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO companies (id, name, description, logo_url, invite_code, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		company.ID,
		company.Name,
		company.Description,
		company.LogoURL,
		company.InviteCode,
		company.CreatedAt,
		company.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Company, error) {
	var company domain.Company
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM companies WHERE id = ?`,
		id,
	).Scan(&company).Error
	if err != nil {
		return nil, err
	}
	if company.ID == 0 {
		return nil, nil
	}
	return &company, nil
}

func (r *repo) FindByInviteCode(ctx context.Context, db *gorm.DB, code string) (*domain.Company, error) {
	var company domain.Company
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM companies WHERE UPPER(invite_code) = UPPER(?)`,
		code,
	).Scan(&company).Error
	if err != nil {
		return nil, err
	}
	if company.ID == 0 {
		return nil, nil
	}
	return &company, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, company *domain.Company) error {
	return db.WithContext(ctx).Exec(
		`UPDATE companies
		 SET name = ?, description = ?, logo_url = ?, updated_at = ?
		 WHERE id = ?`,
		company.Name,
		company.Description,
		company.LogoURL,
		company.UpdatedAt,
		company.ID,
	).Error
}

func (r *repo) SetInviteCode(ctx context.Context, db *gorm.DB, id snowflake.ID, code string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE companies SET invite_code = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		code,
		id,
	).Error
}

func (r *repo) AssignUser(ctx context.Context, db *gorm.DB, userID, companyID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE users SET company_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		companyID,
		userID,
	).Error
}

func (r *repo) Members(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]domain.Member, error) {
	var members []domain.Member
	err := db.WithContext(ctx).Raw(
		`SELECT id, full_name, role, telegram_id, created_at
		 FROM users
		 WHERE company_id = ?
		 ORDER BY created_at DESC`,
		companyID,
	).Scan(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *repo) ListWithCounts(ctx context.Context, db *gorm.DB) ([]domain.AdminRow, error) {
	var rows []domain.AdminRow
	err := db.WithContext(ctx).Raw(
		`SELECT c.*,
		        (SELECT COUNT(*) FROM users u WHERE u.company_id = c.id) AS member_count,
		        (SELECT COUNT(*) FROM vacancies v WHERE v.company_id = c.id) AS vacancy_count
		 FROM companies c
		 ORDER BY c.created_at DESC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM companies WHERE id = ?`,
		id,
	).Error
}
