package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smart-practice/backend/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("user.service"),
		repo: p.Repo,
	}
}

func (s *Service) GetByTelegramID(ctx context.Context, telegramID int64) (domain.User, error) {
	user, err := s.repo.FindByTelegramID(ctx, s.db, telegramID)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrNotFound
	}
	return *user, nil
}

func (s *Service) Profile(ctx context.Context, userID snowflake.ID) (domain.Profile, error) {
	profile, err := s.repo.FindProfile(ctx, s.db, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	if profile == nil {
		return domain.Profile{}, domain.ErrNotFound
	}

	skills, err := s.repo.FindSkills(ctx, s.db, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	if skills == nil {
		skills = []domain.ProfileSkill{}
	}
	profile.Skills = skills

	return *profile, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID snowflake.ID, req domain.UpdateProfileRequest) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, s.db, userID)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrNotFound
	}

	user.FullName = strings.TrimSpace(req.FullName)
	user.MajorID = req.MajorID
	user.Course = req.Course
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateProfile(ctx, s.db, user); err != nil {
		return domain.User{}, err
	}
	return *user, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.AdminRow, error) {
	filter := domain.ListFilter{
		Search: strings.TrimSpace(req.Search),
	}
	if role := strings.TrimSpace(req.Role); role != "" {
		filter.Role = domain.Role(role)
	}

	rows, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.AdminRow{}
	}
	return rows, nil
}

func (s *Service) ChangeRole(ctx context.Context, req domain.ChangeRoleRequest) (domain.User, error) {
	role := domain.Role(strings.TrimSpace(req.Role))
	if !role.Valid() {
		return domain.User{}, domain.ErrInvalidRole
	}

	existing, err := s.repo.FindByID(ctx, s.db, req.UserID)
	if err != nil {
		return domain.User{}, err
	}
	if existing == nil {
		return domain.User{}, domain.ErrNotFound
	}

	user, err := s.repo.UpdateRole(ctx, s.db, req.UserID, role)
	if err != nil {
		return domain.User{}, err
	}
	s.log.Info("user role changed",
		zap.Int64("user_id", int64(req.UserID)),
		zap.String("role", string(role)),
	)
	return *user, nil
}
