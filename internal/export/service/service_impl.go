package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smart-practice/backend/internal/clock"
	"github.com/smart-practice/backend/internal/export/domain"
	"github.com/smart-practice/backend/internal/identity"
	"github.com/smart-practice/backend/internal/notifier"
	"github.com/smart-practice/backend/pkg/db"
	"github.com/xuri/excelize/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgExportSent = "📧 Данные студентов по вакансии \"%s\" отправлены на вашу электронную почту!\n\nПроверьте письмо и свяжитесь с кандидатами."

	sheetName  = "Студенты"
	dateLayout = "02.01.2006"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	Notifier notifier.Notifier
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	notifier notifier.Notifier
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("export.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		notifier: p.Notifier,
	}
}

func (s *Service) Request(ctx context.Context, vacancyID snowflake.ID) (domain.ExportRequest, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return domain.ExportRequest{}, err
	}

	owned, err := s.repo.VacancyOwned(ctx, s.db, vacancyID, caller.ID)
	if err != nil {
		return domain.ExportRequest{}, err
	}
	if !owned {
		return domain.ExportRequest{}, domain.ErrVacancyNotFound
	}

	pending, err := s.repo.HasPending(ctx, s.db, vacancyID)
	if err != nil {
		return domain.ExportRequest{}, err
	}
	if pending {
		return domain.ExportRequest{}, domain.ErrAlreadyRequested
	}

	now := s.clock.Now()
	request := domain.ExportRequest{
		ID:        s.genID.Generate(),
		VacancyID: vacancyID,
		PartnerID: caller.ID,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, &request); err != nil {
		// Two concurrent requests can both pass the pre-check; the unique
		// index on pending rows decides the loser.
		if db.IsDuplicateKeyErr(err) {
			return domain.ExportRequest{}, domain.ErrAlreadyRequested
		}
		return domain.ExportRequest{}, err
	}
	return request, nil
}

func (s *Service) ListPending(ctx context.Context) ([]domain.PendingRow, error) {
	rows, err := s.repo.ListPending(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.PendingRow{}
	}
	return rows, nil
}

func (s *Service) BuildWorkbook(ctx context.Context, vacancyID snowflake.ID) (domain.Workbook, error) {
	header, err := s.repo.FindWorkbookHeader(ctx, s.db, vacancyID)
	if err != nil {
		return domain.Workbook{}, err
	}
	if header == nil {
		return domain.Workbook{}, domain.ErrVacancyNotFound
	}

	rows, err := s.repo.WorkbookRows(ctx, s.db, vacancyID)
	if err != nil {
		return domain.Workbook{}, err
	}
	skills, err := s.repo.VerifiedSkills(ctx, s.db, vacancyID)
	if err != nil {
		return domain.Workbook{}, err
	}

	byStudent := make(map[snowflake.ID][]string, len(rows))
	for _, skill := range skills {
		byStudent[skill.StudentID] = append(byStudent[skill.StudentID], skill.SkillName)
	}
	for i := range rows {
		rows[i].Skills = strings.Join(byStudent[rows[i].StudentID], ", ")
	}

	now := s.clock.Now()
	path := filepath.Join(os.TempDir(), fmt.Sprintf("students_%s_%d.xlsx", sanitizeTitle(header.Title), now.UnixMilli()))
	if err := s.writeWorkbook(path, header, rows, now); err != nil {
		return domain.Workbook{}, err
	}

	return domain.Workbook{Path: path, Filename: filepath.Base(path)}, nil
}

// sanitizeTitle strips path separators from a vacancy title so it is safe
// to embed in a temp filename.
func sanitizeTitle(title string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, title)
}

func (s *Service) writeWorkbook(path string, header *domain.WorkbookHeader, rows []domain.StudentRow, now time.Time) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warn("close workbook failed", zap.Error(err))
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	lines := [][]interface{}{
		{"Вакансия", header.Title},
		{"Компания", header.CompanyName},
		{"Дата выгрузки", now.Format(dateLayout)},
		{},
		{"ФИО", "Телефон", "Курс", "Направление", "Навыки", "Дата отклика"},
	}
	for _, row := range rows {
		lines = append(lines, []interface{}{
			row.FullName,
			row.Phone,
			row.Course,
			row.MajorName,
			row.Skills,
			row.AppliedAt.Format(dateLayout),
		})
	}
	for i, line := range lines {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheetName, cell, &line); err != nil {
			return err
		}
	}

	widths := []struct {
		col   string
		width float64
	}{
		{"A", 30}, {"B", 20}, {"C", 10}, {"D", 40}, {"E", 40}, {"F", 15},
	}
	for _, w := range widths {
		if err := f.SetColWidth(sheetName, w.col, w.col, w.width); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func (s *Service) MarkSent(ctx context.Context, vacancyID snowflake.ID) error {
	request, err := s.repo.MarkSent(ctx, s.db, vacancyID)
	if err != nil {
		return err
	}
	if request == nil {
		return domain.ErrRequestNotFound
	}

	chatID, err := s.repo.FindPartnerTelegramID(ctx, s.db, request.PartnerID)
	if err != nil {
		s.log.Warn("partner lookup failed", zap.Int64("partner_id", int64(request.PartnerID)), zap.Error(err))
		return nil
	}
	if chatID == 0 {
		return nil
	}

	title, err := s.repo.FindVacancyTitle(ctx, s.db, request.VacancyID)
	if err != nil || title == "" {
		title = "вакансия"
	}
	if err := s.notifier.Send(chatID, fmt.Sprintf(msgExportSent, title)); err != nil {
		s.log.Warn("notification failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	return nil
}
