package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smart-practice/backend/internal/identity"
	"github.com/smart-practice/backend/internal/notifier"
	userdomain "github.com/smart-practice/backend/internal/user/domain"
	"github.com/smart-practice/backend/internal/vacancy/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	copySuffix = " (Копия)"

	msgApproved     = "✅ Ваша вакансия \"%s\" одобрена и опубликована!\n\nСтуденты теперь могут подавать заявки."
	msgRejected     = "❌ Ваша вакансия \"%s\" отклонена.\n\nПричина: %s"
	fallbackComment = "Причина не указана"
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
		log:      p.Log.Named("vacancy.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		notifier: p.Notifier,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.FeedItem, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	filter := domain.FeedFilter{Search: strings.TrimSpace(req.Search)}
	if status := strings.TrimSpace(req.Status); status != "" {
		parsed := domain.Status(status)
		if !parsed.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		filter.Status = parsed
	} else if caller.Role == userdomain.RoleStudent {
		// Students see only published vacancies unless they ask otherwise.
		filter.Status = domain.StatusActive
	}

	items, err := s.repo.Feed(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.FeedItem{}
	}

	if caller.Role == userdomain.RoleStudent {
		if err := s.annotateApplied(ctx, caller.ID, items); err != nil {
			return nil, err
		}
		if caller.MajorID != nil {
			// Major affinity widens visibility, it never narrows it: vacancies
			// for other majors stay in the feed and only sort after matches.
			majorID := int64(*caller.MajorID)
			sort.SliceStable(items, func(i, j int) bool {
				return items[i].MatchesMajor(majorID) && !items[j].MatchesMajor(majorID)
			})
		}
	}

	return items, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (domain.FeedItem, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return domain.FeedItem{}, err
	}

	item, err := s.repo.FeedItemByID(ctx, s.db, id)
	if err != nil {
		return domain.FeedItem{}, err
	}
	if item == nil {
		return domain.FeedItem{}, domain.ErrNotFound
	}

	if caller.Role == userdomain.RoleStudent {
		single := []domain.FeedItem{*item}
		if err := s.annotateApplied(ctx, caller.ID, single); err != nil {
			return domain.FeedItem{}, err
		}
		item = &single[0]
	}

	return *item, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Vacancy, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return domain.Vacancy{}, err
	}
	if caller.CompanyID == nil || *caller.CompanyID == 0 {
		return domain.Vacancy{}, domain.ErrNoCompany
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Vacancy{}, domain.ErrTitleRequired
	}

	now := time.Now().UTC()
	vacancy := domain.Vacancy{
		ID:            s.genID.Generate(),
		PartnerID:     caller.ID,
		CompanyID:     *caller.CompanyID,
		Title:         title,
		Description:   req.Description,
		Position:      req.Position,
		MajorIDs:      datatypes.NewJSONSlice(req.MajorIDs),
		SlotsCount:    req.SlotsCount,
		DeadlineDate:  req.DeadlineDate,
		Reward:        req.Reward,
		HeaderBgColor: req.HeaderBgColor,
		Status:        domain.StatusModeration,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &vacancy); err != nil {
		return domain.Vacancy{}, err
	}
	return vacancy, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.CreateRequest) (domain.Vacancy, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return domain.Vacancy{}, err
	}

	vacancy, err := s.repo.FindOwned(ctx, s.db, id, caller.ID)
	if err != nil {
		return domain.Vacancy{}, err
	}
	if vacancy == nil {
		return domain.Vacancy{}, domain.ErrNotFound
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		vacancy.Title = title
	}
	vacancy.Description = req.Description
	vacancy.Position = req.Position
	vacancy.MajorIDs = datatypes.NewJSONSlice(req.MajorIDs)
	vacancy.SlotsCount = req.SlotsCount
	vacancy.DeadlineDate = req.DeadlineDate
	vacancy.Reward = req.Reward
	vacancy.HeaderBgColor = req.HeaderBgColor
	vacancy.UpdatedAt = time.Now().UTC()

	// Edits never touch the status: a rejected draft stays a draft until the
	// partner resubmits it.
	if err := s.repo.Update(ctx, s.db, vacancy); err != nil {
		return domain.Vacancy{}, err
	}
	return *vacancy, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	caller, err := identity.Require(ctx)
	if err != nil {
		return err
	}

	if caller.Role != userdomain.RoleAdmin {
		owned, err := s.repo.FindOwned(ctx, s.db, id, caller.ID)
		if err != nil {
			return err
		}
		if owned == nil {
			return domain.ErrNotFound
		}
	}

	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) Duplicate(ctx context.Context, id snowflake.ID) (domain.Vacancy, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return domain.Vacancy{}, err
	}

	original, err := s.repo.FindOwned(ctx, s.db, id, caller.ID)
	if err != nil {
		return domain.Vacancy{}, err
	}
	if original == nil {
		return domain.Vacancy{}, domain.ErrNotFound
	}

	now := time.Now().UTC()
	duplicate := *original
	duplicate.ID = s.genID.Generate()
	duplicate.Title = original.Title + copySuffix
	duplicate.Status = domain.StatusDraft
	duplicate.CreatedAt = now
	duplicate.UpdatedAt = now

	if err := s.repo.Insert(ctx, s.db, &duplicate); err != nil {
		return domain.Vacancy{}, err
	}
	return duplicate, nil
}

func (s *Service) ListMine(ctx context.Context, status string) ([]domain.FeedItem, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	var parsed domain.Status
	if status = strings.TrimSpace(status); status != "" {
		parsed = domain.Status(status)
		if !parsed.Valid() {
			return nil, domain.ErrInvalidStatus
		}
	}

	items, err := s.repo.ListByPartner(ctx, s.db, caller.ID, parsed)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.FeedItem{}
	}
	return items, nil
}

func (s *Service) SetStatus(ctx context.Context, id snowflake.ID, status string) (domain.Vacancy, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return domain.Vacancy{}, err
	}

	parsed := domain.Status(strings.TrimSpace(status))
	if !parsed.Valid() {
		return domain.Vacancy{}, domain.ErrInvalidStatus
	}
	// Manual transitions cover archiving and restoring; everything else goes
	// through moderation. Admins may force any status.
	if caller.Role != userdomain.RoleAdmin &&
		parsed != domain.StatusArchived && parsed != domain.StatusDraft && parsed != domain.StatusModeration {
		return domain.Vacancy{}, domain.ErrInvalidStatus
	}

	var vacancy *domain.Vacancy
	switch caller.Role {
	case userdomain.RoleAdmin, userdomain.RoleCurator:
		vacancy, err = s.repo.FindByID(ctx, s.db, id)
	default:
		vacancy, err = s.repo.FindOwned(ctx, s.db, id, caller.ID)
	}
	if err != nil {
		return domain.Vacancy{}, err
	}
	if vacancy == nil {
		return domain.Vacancy{}, domain.ErrNotFound
	}

	if err := s.repo.UpdateStatus(ctx, s.db, vacancy.ID, parsed); err != nil {
		return domain.Vacancy{}, err
	}
	vacancy.Status = parsed
	return *vacancy, nil
}

func (s *Service) ModerationQueue(ctx context.Context) ([]domain.FeedItem, error) {
	items, err := s.repo.ModerationQueue(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.FeedItem{}
	}
	return items, nil
}

func (s *Service) Moderate(ctx context.Context, req domain.ModerateRequest) error {
	target, err := s.repo.FindForModeration(ctx, s.db, req.VacancyID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrNotFound
	}

	switch req.Action {
	case domain.ActionApprove:
		if err := s.repo.UpdateStatus(ctx, s.db, target.ID, domain.StatusActive); err != nil {
			return err
		}
		s.notify(target.PartnerTelegramID, fmt.Sprintf(msgApproved, target.Title))
		return nil

	case domain.ActionReject:
		if err := s.repo.UpdateStatus(ctx, s.db, target.ID, domain.StatusDraft); err != nil {
			return err
		}
		comment := strings.TrimSpace(req.Comment)
		if comment == "" {
			comment = fallbackComment
		}
		s.notify(target.PartnerTelegramID, fmt.Sprintf(msgRejected, target.Title, comment))
		return nil

	default:
		return domain.ErrInvalidAction
	}
}

func (s *Service) AdminList(ctx context.Context) ([]domain.FeedItem, error) {
	items, err := s.repo.Feed(ctx, s.db, domain.FeedFilter{})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.FeedItem{}
	}
	return items, nil
}

func (s *Service) ArchiveOverdue(ctx context.Context, now time.Time) (int64, error) {
	today := now.UTC().Truncate(24 * time.Hour)
	archived, err := s.repo.ArchiveOverdue(ctx, s.db, today)
	if err != nil {
		return 0, err
	}
	if archived > 0 {
		s.log.Info("archived overdue vacancies", zap.Int64("count", archived))
	}
	return archived, nil
}

func (s *Service) annotateApplied(ctx context.Context, studentID snowflake.ID, items []domain.FeedItem) error {
	ids, err := s.repo.AppliedVacancyIDs(ctx, s.db, studentID)
	if err != nil {
		return err
	}
	applied := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		applied[id] = struct{}{}
	}
	for i := range items {
		_, ok := applied[int64(items[i].ID)]
		items[i].UserApplied = &ok
	}
	return nil
}

func (s *Service) notify(chatID int64, text string) {
	if chatID == 0 {
		return
	}
	if err := s.notifier.Send(chatID, text); err != nil {
		s.log.Warn("notification failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
