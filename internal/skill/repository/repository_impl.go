package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smart-practice/backend/internal/skill/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, skill *domain.Skill) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO skills (id, user_id, skill_name, is_verified, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		skill.ID,
		skill.UserID,
		skill.SkillName,
		skill.IsVerified,
		skill.CreatedAt,
	).Error
}

func (r *repo) ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]domain.Skill, error) {
	var skills []domain.Skill
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM skills WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	).Scan(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *repo) FindDeletable(ctx context.Context, db *gorm.DB, id, userID snowflake.ID) (*domain.Skill, error) {
	var skill domain.Skill
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM skills WHERE id = ? AND user_id = ? AND is_verified = ?`,
		id,
		userID,
		false,
	).Scan(&skill).Error
	if err != nil {
		return nil, err
	}
	if skill.ID == 0 {
		return nil, nil
	}
	return &skill, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM skills WHERE id = ?`, id).Error
}

func (r *repo) ListPending(ctx context.Context, db *gorm.DB) ([]domain.PendingSkill, error) {
	var rows []domain.PendingSkill
	err := db.WithContext(ctx).Raw(
		`SELECT s.*,
		        u.full_name,
		        u.telegram_id
		 FROM skills s
		 JOIN users u ON s.user_id = u.id
		 WHERE s.is_verified = ?
		 ORDER BY s.created_at DESC`,
		false,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) FindReviewTarget(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.ReviewTarget, error) {
	var target domain.ReviewTarget
	err := db.WithContext(ctx).Raw(
		`SELECT s.id,
		        s.skill_name,
		        u.telegram_id AS owner_telegram_id
		 FROM skills s
		 JOIN users u ON s.user_id = u.id
		 WHERE s.id = ?`,
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

func (r *repo) SetVerified(ctx context.Context, db *gorm.DB, id snowflake.ID, verified bool) error {
	return db.WithContext(ctx).Exec(
		`UPDATE skills SET is_verified = ? WHERE id = ?`,
		verified,
		id,
	).Error
}
