package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Skill struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID     snowflake.ID `gorm:"index" json:"user_id"`
	SkillName  string       `json:"skill_name"`
	IsVerified bool         `json:"is_verified"`
	CreatedAt  time.Time    `json:"created_at"`
}

func (Skill) TableName() string { return "skills" }

// PendingSkill is a curator-facing row joined with the skill's owner.
type PendingSkill struct {
	Skill      `gorm:"embedded"`
	FullName   string `json:"full_name"`
	TelegramID int64  `json:"telegram_id"`
}

// ReviewTarget carries what Review needs to update the skill and
// notify its owner.
type ReviewTarget struct {
	ID              snowflake.ID
	SkillName       string
	OwnerTelegramID int64
}
