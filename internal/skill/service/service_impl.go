package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smart-practice/backend/internal/identity"
	"github.com/smart-practice/backend/internal/notifier"
	"github.com/smart-practice/backend/internal/skill/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgSkillVerified = "✅ Ваш навык \"%s\" подтвержден!"
	msgSkillRejected = "❌ Ваш навык \"%s\" не подтвержден.\n\nПожалуйста, обратитесь к куратору для уточнений."
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Notifier notifier.Notifier
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	notifier notifier.Notifier
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("skill.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		notifier: p.Notifier,
	}
}

func (s *Service) ListMine(ctx context.Context) ([]domain.Skill, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	skills, err := s.repo.ListByUser(ctx, s.db, caller.ID)
	if err != nil {
		return nil, err
	}
	if skills == nil {
		skills = []domain.Skill{}
	}
	return skills, nil
}

func (s *Service) Add(ctx context.Context, req domain.AddRequest) (domain.Skill, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return domain.Skill{}, err
	}

	name := strings.TrimSpace(req.SkillName)
	if name == "" {
		return domain.Skill{}, domain.ErrNameRequired
	}

	skill := domain.Skill{
		ID:        s.genID.Generate(),
		UserID:    caller.ID,
		SkillName: name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &skill); err != nil {
		return domain.Skill{}, err
	}
	return skill, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	caller, err := identity.Require(ctx)
	if err != nil {
		return err
	}

	skill, err := s.repo.FindDeletable(ctx, s.db, id, caller.ID)
	if err != nil {
		return err
	}
	if skill == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, skill.ID)
}

func (s *Service) ListPending(ctx context.Context) ([]domain.PendingSkill, error) {
	rows, err := s.repo.ListPending(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.PendingSkill{}
	}
	return rows, nil
}

func (s *Service) Review(ctx context.Context, req domain.ReviewRequest) error {
	target, err := s.repo.FindReviewTarget(ctx, s.db, req.SkillID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.SetVerified(ctx, s.db, target.ID, req.IsVerified); err != nil {
		return err
	}

	if target.OwnerTelegramID != 0 {
		text := fmt.Sprintf(msgSkillRejected, target.SkillName)
		if req.IsVerified {
			text = fmt.Sprintf(msgSkillVerified, target.SkillName)
		}
		if err := s.notifier.Send(target.OwnerTelegramID, text); err != nil {
			s.log.Warn("notification failed", zap.Int64("chat_id", target.OwnerTelegramID), zap.Error(err))
		}
	}

	return nil
}
