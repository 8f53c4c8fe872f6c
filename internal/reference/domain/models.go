package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Major is a study direction students and vacancies point at.
type Major struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	CreatedAt time.Time    `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Major) TableName() string { return "majors" }

var (
	ErrMajorNotFound = errors.New("major_not_found")
	ErrNameRequired  = errors.New("major_name_required")
)
