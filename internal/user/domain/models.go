package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Role string

const (
	RoleStudent Role = "student"
	RolePartner Role = "partner"
	RoleCurator Role = "curator"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RolePartner, RoleCurator, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is created by the Telegram bot on first contact; the role is assigned
// once during onboarding and afterwards only mutable by an admin.
type User struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	TelegramID int64         `gorm:"column:telegram_id;uniqueIndex;not null" json:"telegram_id"`
	Phone      string        `json:"phone"`
	FullName   string        `gorm:"column:full_name" json:"full_name"`
	Role       Role          `json:"role"`
	CompanyID  *snowflake.ID `gorm:"column:company_id" json:"company_id,omitempty"`
	MajorID    *snowflake.ID `gorm:"column:major_id" json:"major_id,omitempty"`
	Course     int           `json:"course,omitempty"`
	CreatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ProfileSkill mirrors the skill rows attached to a profile response.
type ProfileSkill struct {
	ID         snowflake.ID `json:"id"`
	SkillName  string       `gorm:"column:skill_name" json:"skill_name"`
	IsVerified bool         `gorm:"column:is_verified" json:"is_verified"`
}

// Profile is the user row joined with company and major display data.
type Profile struct {
	User        `gorm:"embedded"`
	CompanyName string         `gorm:"column:company_name" json:"company_name,omitempty"`
	CompanyLogo string         `gorm:"column:company_logo" json:"company_logo,omitempty"`
	InviteCode  string         `gorm:"column:invite_code" json:"invite_code,omitempty"`
	MajorName   string         `gorm:"column:major_name" json:"major_name,omitempty"`
	Skills      []ProfileSkill `gorm:"-" json:"skills"`
}

// AdminRow is a user as listed in the admin panel.
type AdminRow struct {
	User        `gorm:"embedded"`
	CompanyName string `gorm:"column:company_name" json:"company_name,omitempty"`
	MajorName   string `gorm:"column:major_name" json:"major_name,omitempty"`
}
