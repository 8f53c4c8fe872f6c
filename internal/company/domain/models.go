package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Company groups partner users and their vacancies. The invite code is issued
// on creation and stays stable unless explicitly regenerated.
type Company struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"not null" json:"name"`
	Description string       `json:"description"`
	LogoURL     string       `gorm:"column:logo_url" json:"logo_url,omitempty"`
	InviteCode  string       `gorm:"column:invite_code;uniqueIndex" json:"invite_code"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Member is an employee row as listed to company partners.
type Member struct {
	ID         snowflake.ID `json:"id"`
	FullName   string       `gorm:"column:full_name" json:"full_name"`
	Role       string       `json:"role"`
	TelegramID int64        `gorm:"column:telegram_id" json:"telegram_id"`
	CreatedAt  time.Time    `json:"created_at"`
}

// AdminRow is a company annotated with member and vacancy counts for the admin panel.
type AdminRow struct {
	Company      `gorm:"embedded"`
	MemberCount  int64 `gorm:"column:member_count" json:"member_count"`
	VacancyCount int64 `gorm:"column:vacancy_count" json:"vacancy_count"`
}
