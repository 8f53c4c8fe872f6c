package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusDraft      Status = "draft"
	StatusModeration Status = "moderation"
	StatusActive     Status = "active"
	StatusArchived   Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusModeration, StatusActive, StatusArchived:
		return true
	default:
		return false
	}
}

// Vacancy lifecycle: draft -> moderation -> active | draft (rejection),
// active -> archived (manual or overdue sweep), archived -> draft (restore).
// MajorIDs empty means no major restriction.
type Vacancy struct {
	ID            snowflake.ID               `gorm:"primaryKey" json:"id"`
	PartnerID     snowflake.ID               `gorm:"column:partner_id;not null;index" json:"partner_id"`
	CompanyID     snowflake.ID               `gorm:"column:company_id;not null;index" json:"company_id"`
	Title         string                     `gorm:"not null" json:"title"`
	Description   string                     `json:"description"`
	Position      string                     `json:"position"`
	MajorIDs      datatypes.JSONSlice[int64] `gorm:"column:major_ids" json:"major_ids"`
	SlotsCount    int                        `gorm:"column:slots_count" json:"slots_count"`
	DeadlineDate  time.Time                  `gorm:"column:deadline_date" json:"deadline_date"`
	Reward        string                     `json:"reward"`
	HeaderBgColor string                     `gorm:"column:header_bg_color" json:"header_bg_color"`
	Status        Status                     `gorm:"not null" json:"status"`
	CreatedAt     time.Time                  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time                  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// MatchesMajor reports whether the vacancy explicitly targets the given major.
func (v Vacancy) MatchesMajor(majorID int64) bool {
	for _, id := range v.MajorIDs {
		if id == majorID {
			return true
		}
	}
	return false
}

// FeedItem is a vacancy joined with company and partner display data and
// annotated with application counters. UserApplied is set for student callers
// only.
type FeedItem struct {
	Vacancy            `gorm:"embedded"`
	CompanyName        string `gorm:"column:company_name" json:"company_name"`
	CompanyLogo        string `gorm:"column:company_logo" json:"company_logo,omitempty"`
	CompanyDescription string `gorm:"column:company_description" json:"company_description,omitempty"`
	PartnerName        string `gorm:"column:partner_name" json:"partner_name,omitempty"`
	PartnerTelegramID  int64  `gorm:"column:partner_telegram_id" json:"-"`
	ApplicationCount   int64  `gorm:"column:application_count" json:"application_count"`
	ActiveApplications int64  `gorm:"column:active_applications" json:"active_applications"`
	UserApplied        *bool  `gorm:"-" json:"user_applied,omitempty"`
}

// ModerationTarget carries what the moderation workflow needs to transition a
// vacancy and notify its owner.
type ModerationTarget struct {
	Vacancy           `gorm:"embedded"`
	PartnerTelegramID int64 `gorm:"column:partner_telegram_id"`
}
