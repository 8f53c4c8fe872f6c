package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smart-practice/backend/internal/vacancy/domain"
	"gorm.io/gorm"
)

const feedColumns = `v.*,
	c.name AS company_name,
	c.logo_url AS company_logo,
	u.full_name AS partner_name,
	u.telegram_id AS partner_telegram_id,
	(SELECT COUNT(*) FROM applications a WHERE a.vacancy_id = v.id) AS application_count,
	(SELECT COUNT(*) FROM applications a WHERE a.vacancy_id = v.id AND a.status = 'active') AS active_applications`

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, vacancy *domain.Vacancy) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO vacancies (id, partner_id, company_id, title, description, position, major_ids,
		                        slots_count, deadline_date, reward, header_bg_color, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		vacancy.ID,
		vacancy.PartnerID,
		vacancy.CompanyID,
		vacancy.Title,
		vacancy.Description,
		vacancy.Position,
		vacancy.MajorIDs,
		vacancy.SlotsCount,
		vacancy.DeadlineDate,
		vacancy.Reward,
		vacancy.HeaderBgColor,
		string(vacancy.Status),
		vacancy.CreatedAt,
		vacancy.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Vacancy, error) {
	var vacancy domain.Vacancy
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM vacancies WHERE id = ?`,
		id,
	).Scan(&vacancy).Error
	if err != nil {
		return nil, err
	}
	if vacancy.ID == 0 {
		return nil, nil
	}
	return &vacancy, nil
}

func (r *repo) FindOwned(ctx context.Context, db *gorm.DB, id, partnerID snowflake.ID) (*domain.Vacancy, error) {
	var vacancy domain.Vacancy
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM vacancies WHERE id = ? AND partner_id = ?`,
		id,
		partnerID,
	).Scan(&vacancy).Error
	if err != nil {
		return nil, err
	}
	if vacancy.ID == 0 {
		return nil, nil
	}
	return &vacancy, nil
}

func (r *repo) FindForModeration(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.ModerationTarget, error) {
	var target domain.ModerationTarget
	err := db.WithContext(ctx).Raw(
		`SELECT v.*, u.telegram_id AS partner_telegram_id
		 FROM vacancies v
		 JOIN users u ON v.partner_id = u.id
		 WHERE v.id = ?`,
		id,
	).Scan(&target).Error
	if err != nil {
		return nil, err
	}
	if target.ID == 0 {
		return nil, nil
	}
	return &target, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, vacancy *domain.Vacancy) error {
	return db.WithContext(ctx).Exec(
		`UPDATE vacancies
		 SET title = ?, description = ?, position = ?, major_ids = ?,
		     slots_count = ?, deadline_date = ?, reward = ?, header_bg_color = ?, updated_at = ?
		 WHERE id = ?`,
		vacancy.Title,
		vacancy.Description,
		vacancy.Position,
		vacancy.MajorIDs,
		vacancy.SlotsCount,
		vacancy.DeadlineDate,
		vacancy.Reward,
		vacancy.HeaderBgColor,
		vacancy.UpdatedAt,
		vacancy.ID,
	).Error
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.Status) error {
	return db.WithContext(ctx).Exec(
		`UPDATE vacancies SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(status),
		id,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM vacancies WHERE id = ?`,
		id,
	).Error
}

func (r *repo) Feed(ctx context.Context, db *gorm.DB, filter domain.FeedFilter) ([]domain.FeedItem, error) {
	var items []domain.FeedItem
	stmt := db.WithContext(ctx).
		Table("vacancies v").
		Select(feedColumns).
		Joins("JOIN companies c ON v.company_id = c.id").
		Joins("JOIN users u ON v.partner_id = u.id")
	if filter.Status != "" {
		stmt = stmt.Where("v.status = ?", string(filter.Status))
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		stmt = stmt.Where("LOWER(v.title) LIKE LOWER(?) OR LOWER(v.description) LIKE LOWER(?)", like, like)
	}
	err := stmt.
		Order("v.created_at DESC, v.id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FeedItemByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.FeedItem, error) {
	var item domain.FeedItem
	err := db.WithContext(ctx).Raw(
		`SELECT `+feedColumns+`,
		        c.description AS company_description
		 FROM vacancies v
		 JOIN companies c ON v.company_id = c.id
		 JOIN users u ON v.partner_id = u.id
		 WHERE v.id = ?`,
		id,
	).Scan(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) ListByPartner(ctx context.Context, db *gorm.DB, partnerID snowflake.ID, status domain.Status) ([]domain.FeedItem, error) {
	var items []domain.FeedItem
	stmt := db.WithContext(ctx).
		Table("vacancies v").
		Select(feedColumns).
		Joins("JOIN companies c ON v.company_id = c.id").
		Joins("JOIN users u ON v.partner_id = u.id").
		Where("v.partner_id = ?", partnerID)
	if status != "" {
		stmt = stmt.Where("v.status = ?", string(status))
	}
	err := stmt.
		Order("v.created_at DESC, v.id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ModerationQueue(ctx context.Context, db *gorm.DB) ([]domain.FeedItem, error) {
	return r.Feed(ctx, db, domain.FeedFilter{Status: domain.StatusModeration})
}

func (r *repo) AppliedVacancyIDs(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]int64, error) {
	var ids []int64
	err := db.WithContext(ctx).Raw(
		`SELECT vacancy_id FROM applications WHERE student_id = ?`,
		studentID,
	).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repo) ArchiveOverdue(ctx context.Context, db *gorm.DB, before time.Time) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE vacancies
		 SET status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE status = ? AND deadline_date < ?`,
		string(domain.StatusArchived),
		string(domain.StatusActive),
		before,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
