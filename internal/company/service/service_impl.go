package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smart-practice/backend/internal/company/domain"
	"github.com/smart-practice/backend/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const inviteCodeLength = 6

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Cfg   config.Config
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	cfg   config.Config
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("company.service"),
		cfg:   p.Cfg,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, creatorID snowflake.ID, req domain.CreateRequest) (domain.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Company{}, domain.ErrNameRequired
	}

	now := time.Now().UTC()
	company := domain.Company{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		InviteCode:  newInviteCode(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &company); err != nil {
		return domain.Company{}, err
	}
	if err := s.repo.AssignUser(ctx, s.db, creatorID, company.ID); err != nil {
		return domain.Company{}, err
	}

	return company, nil
}

func (s *Service) Get(ctx context.Context, companyID *snowflake.ID) (domain.Company, error) {
	company, err := s.find(ctx, companyID)
	if err != nil {
		return domain.Company{}, err
	}
	return *company, nil
}

func (s *Service) Update(ctx context.Context, companyID *snowflake.ID, req domain.UpdateRequest) (domain.Company, error) {
	company, err := s.find(ctx, companyID)
	if err != nil {
		return domain.Company{}, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		company.Name = name
	}
	company.Description = strings.TrimSpace(req.Description)
	if req.LogoURL != nil {
		company.LogoURL = *req.LogoURL
	}
	company.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, company); err != nil {
		return domain.Company{}, err
	}
	return *company, nil
}

func (s *Service) Invite(ctx context.Context, companyID *snowflake.ID) (domain.InviteResponse, error) {
	company, err := s.find(ctx, companyID)
	if err != nil {
		return domain.InviteResponse{}, err
	}

	code := company.InviteCode
	if code == "" {
		code = newInviteCode()
		if err := s.repo.SetInviteCode(ctx, s.db, company.ID, code); err != nil {
			return domain.InviteResponse{}, err
		}
	}

	return domain.InviteResponse{
		InviteLink: fmt.Sprintf("%s?start=invite_%s", s.cfg.WebAppURL, code),
		InviteCode: code,
	}, nil
}

func (s *Service) Join(ctx context.Context, userID snowflake.ID, inviteCode string) (snowflake.ID, error) {
	code := strings.TrimSpace(inviteCode)
	if code == "" {
		return 0, domain.ErrCodeRequired
	}

	company, err := s.repo.FindByInviteCode(ctx, s.db, code)
	if err != nil {
		return 0, err
	}
	if company == nil {
		return 0, domain.ErrInvalidInvite
	}

	if err := s.repo.AssignUser(ctx, s.db, userID, company.ID); err != nil {
		return 0, err
	}
	return company.ID, nil
}

func (s *Service) Members(ctx context.Context, companyID *snowflake.ID) ([]domain.Member, error) {
	company, err := s.find(ctx, companyID)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.Members(ctx, s.db, company.ID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []domain.Member{}
	}
	return members, nil
}

func (s *Service) AdminList(ctx context.Context) ([]domain.AdminRow, error) {
	rows, err := s.repo.ListWithCounts(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.AdminRow{}
	}
	return rows, nil
}

func (s *Service) AdminUpdate(ctx context.Context, req domain.AdminUpdateRequest) (domain.Company, error) {
	company, err := s.repo.FindByID(ctx, s.db, req.ID)
	if err != nil {
		return domain.Company{}, err
	}
	if company == nil {
		return domain.Company{}, domain.ErrNotFound
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		company.Name = name
	}
	company.Description = strings.TrimSpace(req.Description)
	company.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, company); err != nil {
		return domain.Company{}, err
	}
	return *company, nil
}

func (s *Service) AdminDelete(ctx context.Context, id snowflake.ID) error {
	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) find(ctx context.Context, companyID *snowflake.ID) (*domain.Company, error) {
	if companyID == nil || *companyID == 0 {
		return nil, domain.ErrNoCompany
	}
	company, err := s.repo.FindByID(ctx, s.db, *companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

func newInviteCode() string {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	for i, b := range buf {
		buf[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(buf)
}
