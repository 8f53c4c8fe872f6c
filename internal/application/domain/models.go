package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Application is a student's response to a vacancy. The composite unique
// index makes a repeat apply fail at the database even when two requests
// race past the existence pre-check.
type Application struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	VacancyID snowflake.ID `gorm:"uniqueIndex:idx_applications_vacancy_student" json:"vacancy_id"`
	StudentID snowflake.ID `gorm:"uniqueIndex:idx_applications_vacancy_student" json:"student_id"`
	Status    string       `gorm:"default:active" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

func (Application) TableName() string { return "applications" }

// MyApplication is a student-facing row joined with the vacancy and the
// company it belongs to.
type MyApplication struct {
	ID            snowflake.ID `json:"id"`
	Status        string       `gorm:"column:app_status" json:"app_status"`
	CreatedAt     time.Time    `json:"created_at"`
	VacancyID     snowflake.ID `json:"vacancy_id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Position      string       `json:"position"`
	DeadlineDate  time.Time    `json:"deadline_date"`
	Reward        string       `json:"reward"`
	VacancyStatus string       `json:"vacancy_status"`
	HeaderBgColor string       `json:"header_bg_color"`
	CompanyName   string       `json:"company_name"`
	CompanyLogo   string       `json:"company_logo"`
}

// Applicant is a partner-facing row about one student who applied.
type Applicant struct {
	ID                  snowflake.ID `json:"id"`
	StudentID           snowflake.ID `json:"student_id"`
	FullName            string       `json:"full_name"`
	Phone               string       `json:"phone"`
	Course              int          `json:"course"`
	MajorName           string       `json:"major_name"`
	VerifiedSkillsCount int64        `json:"verified_skills_count"`
	AppliedAt           time.Time    `json:"applied_at"`
}

// ApplyTarget carries the vacancy fields Apply needs to validate the
// request and notify the partner.
type ApplyTarget struct {
	ID                snowflake.ID
	Title             string
	PartnerTelegramID int64
}
