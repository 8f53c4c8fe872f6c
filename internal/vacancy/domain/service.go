package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type ListRequest struct {
	Status string
	Search string
}

type CreateRequest struct {
	Title         string
	Description   string
	Position      string
	MajorIDs      []int64
	SlotsCount    int
	DeadlineDate  time.Time
	Reward        string
	HeaderBgColor string
}

type ModerateAction string

const (
	ActionApprove ModerateAction = "approve"
	ActionReject  ModerateAction = "reject"
)

type ModerateRequest struct {
	VacancyID snowflake.ID
	Action    ModerateAction
	Comment   string
}

type Service interface {
	// List computes the role-aware vacancy feed for the caller in context:
	// students default to active vacancies and get major-affinity ordering
	// plus a user_applied annotation, other roles see all statuses newest
	// first.
	List(ctx context.Context, req ListRequest) ([]FeedItem, error)
	Get(ctx context.Context, id snowflake.ID) (FeedItem, error)
	Create(ctx context.Context, req CreateRequest) (Vacancy, error)
	Update(ctx context.Context, id snowflake.ID, req CreateRequest) (Vacancy, error)
	Delete(ctx context.Context, id snowflake.ID) error
	Duplicate(ctx context.Context, id snowflake.ID) (Vacancy, error)
	ListMine(ctx context.Context, status string) ([]FeedItem, error)
	SetStatus(ctx context.Context, id snowflake.ID, status string) (Vacancy, error)

	ModerationQueue(ctx context.Context) ([]FeedItem, error)
	Moderate(ctx context.Context, req ModerateRequest) error

	AdminList(ctx context.Context) ([]FeedItem, error)

	// ArchiveOverdue archives every active vacancy whose deadline has passed.
	// Invoked by the daily sweep; returns the number of archived rows.
	ArchiveOverdue(ctx context.Context, now time.Time) (int64, error)
}

var (
	ErrNotFound      = errors.New("vacancy_not_found")
	ErrNoCompany     = errors.New("no_company")
	ErrTitleRequired = errors.New("invalid_title")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrInvalidAction = errors.New("invalid_action")
)
