package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateRequest struct {
	Name        string
	Description string
}

type UpdateRequest struct {
	Name        string
	Description string
	LogoURL     *string
}

type InviteResponse struct {
	InviteLink string `json:"invite_link"`
	InviteCode string `json:"invite_code"`
}

type AdminUpdateRequest struct {
	ID          snowflake.ID
	Name        string
	Description string
}

type Service interface {
	// Create makes a new company and attaches the creator to it.
	Create(ctx context.Context, creatorID snowflake.ID, req CreateRequest) (Company, error)
	Get(ctx context.Context, companyID *snowflake.ID) (Company, error)
	Update(ctx context.Context, companyID *snowflake.ID, req UpdateRequest) (Company, error)
	// Invite returns the company's stable invite code, issuing one only when absent.
	Invite(ctx context.Context, companyID *snowflake.ID) (InviteResponse, error)
	Join(ctx context.Context, userID snowflake.ID, inviteCode string) (snowflake.ID, error)
	Members(ctx context.Context, companyID *snowflake.ID) ([]Member, error)

	AdminList(ctx context.Context) ([]AdminRow, error)
	AdminUpdate(ctx context.Context, req AdminUpdateRequest) (Company, error)
	AdminDelete(ctx context.Context, id snowflake.ID) error
}

var (
	ErrNotFound      = errors.New("company_not_found")
	ErrNoCompany     = errors.New("no_company")
	ErrNameRequired  = errors.New("invalid_name")
	ErrCodeRequired  = errors.New("invalid_invite_code")
	ErrInvalidInvite = errors.New("invite_code_not_found")
)
