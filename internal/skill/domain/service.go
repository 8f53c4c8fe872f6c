package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type AddRequest struct {
	SkillName string `json:"skill_name"`
}

type ReviewRequest struct {
	SkillID    snowflake.ID
	IsVerified bool `json:"is_verified"`
}

type Service interface {
	// ListMine returns the caller's skills, newest first.
	ListMine(ctx context.Context) ([]Skill, error)

	// Add records a new unverified skill for the caller.
	Add(ctx context.Context, req AddRequest) (Skill, error)

	// Delete removes the caller's skill. Verified skills cannot be
	// deleted by their owner.
	Delete(ctx context.Context, id snowflake.ID) error

	// ListPending returns every unverified skill for curator review.
	ListPending(ctx context.Context) ([]PendingSkill, error)

	// Review verifies or rejects a skill and notifies its owner.
	Review(ctx context.Context, req ReviewRequest) error
}

var (
	ErrNotFound     = errors.New("skill_not_found")
	ErrNameRequired = errors.New("skill_name_required")
)
