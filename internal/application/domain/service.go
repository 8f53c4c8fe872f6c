package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// ApplicantList pairs applicant rows with the vacancy title the
// client renders above them.
type ApplicantList struct {
	VacancyTitle string      `json:"vacancy_title"`
	Applications []Applicant `json:"applications"`
}

type Service interface {
	// Apply records the caller's response to a published vacancy and
	// notifies the vacancy's partner.
	Apply(ctx context.Context, vacancyID snowflake.ID) error

	// ListMine returns the caller's applications, newest first.
	ListMine(ctx context.Context) ([]MyApplication, error)

	// ListForVacancy returns every applicant of a vacancy.
	ListForVacancy(ctx context.Context, vacancyID snowflake.ID) (ApplicantList, error)
}

var (
	ErrVacancyNotFound = errors.New("vacancy_not_found")
	ErrAlreadyApplied  = errors.New("already_applied")
)
