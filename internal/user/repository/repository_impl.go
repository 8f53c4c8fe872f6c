package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smart-practice/backend/internal/user/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByTelegramID(ctx context.Context, db *gorm.DB, telegramID int64) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM users WHERE telegram_id = ?`,
		telegramID,
	).Scan(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, nil
	}
	return &user, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM users WHERE id = ?`,
		id,
	).Scan(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, nil
	}
	return &user, nil
}

func (r *repo) FindProfile(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Profile, error) {
	var profile domain.Profile
	err := db.WithContext(ctx).Raw(
		`SELECT u.*,
		        c.name AS company_name,
		        c.logo_url AS company_logo,
		        c.invite_code AS invite_code,
		        m.name AS major_name
		 FROM users u
		 LEFT JOIN companies c ON u.company_id = c.id
		 LEFT JOIN majors m ON u.major_id = m.id
		 WHERE u.id = ?`,
		id,
	).Scan(&profile).Error
	if err != nil {
		return nil, err
	}
	if profile.ID == 0 {
		return nil, nil
	}
	return &profile, nil
}

func (r *repo) FindSkills(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]domain.ProfileSkill, error) {
	var skills []domain.ProfileSkill
	err := db.WithContext(ctx).Raw(
		`SELECT id, skill_name, is_verified
		 FROM skills
		 WHERE user_id = ?
		 ORDER BY created_at DESC`,
		userID,
	).Scan(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *repo) UpdateProfile(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Exec(
		`UPDATE users
		 SET full_name = ?, major_id = ?, course = ?, updated_at = ?
		 WHERE id = ?`,
		user.FullName,
		user.MajorID,
		user.Course,
		user.UpdatedAt,
		user.ID,
	).Error
}

func (r *repo) UpdateRole(ctx context.Context, db *gorm.DB, id snowflake.ID, role domain.Role) (*domain.User, error) {
	err := db.WithContext(ctx).Exec(
		`UPDATE users SET role = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(role),
		id,
	).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, db, id)
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.AdminRow, error) {
	var rows []domain.AdminRow
	stmt := db.WithContext(ctx).
		Table("users u").
		Select(`u.*, c.name AS company_name, m.name AS major_name`).
		Joins("LEFT JOIN companies c ON u.company_id = c.id").
		Joins("LEFT JOIN majors m ON u.major_id = m.id")
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		stmt = stmt.Where(
			"LOWER(u.full_name) LIKE LOWER(?) OR u.phone LIKE ? OR CAST(u.telegram_id AS TEXT) LIKE ?",
			like, like, like,
		)
	}
	if filter.Role != "" {
		stmt = stmt.Where("u.role = ?", string(filter.Role))
	}
	err := stmt.
		Order("u.created_at DESC, u.id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
