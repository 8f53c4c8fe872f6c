package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
)

// ExportRequest is a partner's ask to receive applicant data for one of
// their vacancies. Curators fulfil it off-band and mark it sent.
type ExportRequest struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	VacancyID snowflake.ID `gorm:"index" json:"vacancy_id"`
	PartnerID snowflake.ID `json:"partner_id"`
	Status    Status       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (ExportRequest) TableName() string { return "export_requests" }

// PendingRow is a curator-facing row joined with the vacancy, its
// company and the requesting partner.
type PendingRow struct {
	ExportRequest     `gorm:"embedded"`
	VacancyTitle      string `json:"vacancy_title"`
	CompanyName       string `json:"company_name"`
	PartnerName       string `json:"partner_name"`
	PartnerTelegramID int64  `json:"partner_telegram_id"`
}

// WorkbookHeader describes the vacancy a workbook is generated for.
type WorkbookHeader struct {
	VacancyID   snowflake.ID
	Title       string
	CompanyName string
}

// StudentRow is one applicant line of the workbook. Skills holds the
// student's verified skills joined with a comma.
type StudentRow struct {
	StudentID snowflake.ID `gorm:"column:student_id"`
	FullName  string
	Phone     string
	Course    int
	MajorName string
	Skills    string `gorm:"-"`
	AppliedAt time.Time
}

// StudentSkill is one verified skill of one applicant.
type StudentSkill struct {
	StudentID snowflake.ID
	SkillName string
}
