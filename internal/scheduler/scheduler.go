package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/smart-practice/backend/internal/clock"
	"github.com/smart-practice/backend/internal/config"
	vacancydomain "github.com/smart-practice/backend/internal/vacancy/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("scheduler: missing dependency")

const jobTimeout = 5 * time.Minute

type Params struct {
	fx.In

	Log        *zap.Logger
	Config     config.Config
	Clock      clock.Clock
	VacancySvc vacancydomain.Service
}

// Scheduler runs the daily sweep that archives vacancies whose deadline
// has passed.
type Scheduler struct {
	cron       *cron.Cron
	log        *zap.Logger
	spec       string
	clock      clock.Clock
	vacancySvc vacancydomain.Service
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.Clock == nil || p.VacancySvc == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		cron:       cron.New(),
		log:        p.Log.Named("scheduler"),
		spec:       p.Config.ArchiveJob,
		clock:      p.Clock,
		vacancySvc: p.VacancySvc,
	}, nil
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.runArchiveJob)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("scheduler started", zap.String("archive_spec", s.spec))
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) runArchiveJob() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.ArchiveOverdue(ctx); err != nil {
		s.log.Error("archive job failed", zap.Error(err))
	}
}

// ArchiveOverdue runs one sweep. Split out so tests can trigger it
// without waiting for the cron engine.
func (s *Scheduler) ArchiveOverdue(ctx context.Context) error {
	archived, err := s.vacancySvc.ArchiveOverdue(ctx, s.clock.Now())
	if err != nil {
		return err
	}
	s.log.Info("archive sweep finished", zap.Int64("archived", archived))
	return nil
}
