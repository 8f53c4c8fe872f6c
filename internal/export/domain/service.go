package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Workbook is a generated spreadsheet written to a temporary file. The
// caller removes Path after streaming it out.
type Workbook struct {
	Path     string
	Filename string
}

type Service interface {
	// Request files an export request for the caller's vacancy.
	Request(ctx context.Context, vacancyID snowflake.ID) (ExportRequest, error)

	// ListPending returns every unfulfilled request, newest first.
	ListPending(ctx context.Context) ([]PendingRow, error)

	// BuildWorkbook generates the applicant spreadsheet for a vacancy.
	BuildWorkbook(ctx context.Context, vacancyID snowflake.ID) (Workbook, error)

	// MarkSent closes the vacancy's pending request and notifies the
	// partner who filed it.
	MarkSent(ctx context.Context, vacancyID snowflake.ID) error
}

var (
	ErrVacancyNotFound  = errors.New("vacancy_not_found")
	ErrRequestNotFound  = errors.New("export_request_not_found")
	ErrAlreadyRequested = errors.New("export_already_requested")
)
