package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smart-practice/backend/internal/application/domain"
	"github.com/smart-practice/backend/internal/identity"
	"github.com/smart-practice/backend/internal/notifier"
	"github.com/smart-practice/backend/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const msgNewApplication = "📬 Новый отклик на вакансию \"%s\"\n\nВсего заявок: %d\n\nПроверьте веб-приложение для деталей."

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
		log:      p.Log.Named("application.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		notifier: p.Notifier,
	}
}

func (s *Service) Apply(ctx context.Context, vacancyID snowflake.ID) error {
	caller, err := identity.Require(ctx)
	if err != nil {
		return err
	}

	target, err := s.repo.FindApplyTarget(ctx, s.db, vacancyID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrVacancyNotFound
	}

	exists, err := s.repo.Exists(ctx, s.db, vacancyID, caller.ID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrAlreadyApplied
	}

	application := domain.Application{
		ID:        s.genID.Generate(),
		VacancyID: vacancyID,
		StudentID: caller.ID,
		Status:    "active",
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &application); err != nil {
		// Two concurrent applies can both pass the pre-check; the unique
		// index decides the loser.
		if db.IsDuplicateKeyErr(err) {
			return domain.ErrAlreadyApplied
		}
		return err
	}

	if target.PartnerTelegramID != 0 {
		total, err := s.repo.CountByVacancy(ctx, s.db, vacancyID)
		if err != nil {
			s.log.Warn("count applications failed", zap.Int64("vacancy_id", int64(vacancyID)), zap.Error(err))
			total = 1
		}
		text := fmt.Sprintf(msgNewApplication, target.Title, total)
		if err := s.notifier.Send(target.PartnerTelegramID, text); err != nil {
			s.log.Warn("notification failed", zap.Int64("chat_id", target.PartnerTelegramID), zap.Error(err))
		}
	}

	return nil
}

func (s *Service) ListMine(ctx context.Context) ([]domain.MyApplication, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByStudent(ctx, s.db, caller.ID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.MyApplication{}
	}
	return rows, nil
}

func (s *Service) ListForVacancy(ctx context.Context, vacancyID snowflake.ID) (domain.ApplicantList, error) {
	title, err := s.repo.FindVacancyTitle(ctx, s.db, vacancyID)
	if err != nil {
		return domain.ApplicantList{}, err
	}
	if title == nil {
		return domain.ApplicantList{}, domain.ErrVacancyNotFound
	}

	rows, err := s.repo.ListApplicants(ctx, s.db, vacancyID)
	if err != nil {
		return domain.ApplicantList{}, err
	}
	if rows == nil {
		rows = []domain.Applicant{}
	}
	return domain.ApplicantList{VacancyTitle: *title, Applications: rows}, nil
}
