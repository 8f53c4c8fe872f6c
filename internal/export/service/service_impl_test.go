package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smart-practice/backend/internal/clock"
	"github.com/smart-practice/backend/internal/export/domain"
	"github.com/smart-practice/backend/internal/export/repository"
	"github.com/smart-practice/backend/internal/identity"
	"github.com/smart-practice/backend/internal/notifier"
	userdomain "github.com/smart-practice/backend/internal/user/domain"
	pkgdb "github.com/smart-practice/backend/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type exportFixture struct {
	db      *gorm.DB
	rec     *notifier.Recorder
	clock   *clock.FakeClock
	svc     domain.Service
	node    *snowflake.Node
	partner userdomain.User
	vacancy snowflake.ID
}

func newExportFixture(t *testing.T) *exportFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	stmts := []string{
		`CREATE TABLE users (
			id BIGINT PRIMARY KEY,
			telegram_id BIGINT NOT NULL UNIQUE,
			phone TEXT NOT NULL DEFAULT '',
			full_name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'student',
			company_id BIGINT,
			major_id BIGINT,
			course INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE companies (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			logo_url TEXT NOT NULL DEFAULT '',
			invite_code TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE vacancies (
			id BIGINT PRIMARY KEY,
			partner_id BIGINT NOT NULL,
			company_id BIGINT NOT NULL,
			title TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'draft',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE applications (
			id BIGINT PRIMARY KEY,
			vacancy_id BIGINT NOT NULL,
			student_id BIGINT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE skills (
			id BIGINT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			skill_name TEXT NOT NULL,
			is_verified BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE majors (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE export_requests (
			id BIGINT PRIMARY KEY,
			vacancy_id BIGINT NOT NULL,
			partner_id BIGINT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE UNIQUE INDEX idx_export_requests_vacancy_pending ON export_requests (vacancy_id) WHERE status = 'pending'`,
	}
	for _, stmt := range stmts {
		require.NoError(t, db.Exec(stmt).Error)
	}

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	companyID := node.Generate()
	require.NoError(t, db.Exec(`INSERT INTO companies (id, name) VALUES (?, 'Acme')`, companyID).Error)

	partner := userdomain.User{ID: node.Generate(), TelegramID: 777, Role: userdomain.RolePartner, CompanyID: &companyID}
	require.NoError(t, db.Exec(
		`INSERT INTO users (id, telegram_id, role, company_id) VALUES (?, ?, 'partner', ?)`,
		partner.ID, partner.TelegramID, companyID,
	).Error)

	vacancyID := node.Generate()
	require.NoError(t, db.Exec(
		`INSERT INTO vacancies (id, partner_id, company_id, title, status) VALUES (?, ?, ?, 'Backend Intern', 'active')`,
		vacancyID, partner.ID, companyID,
	).Error)

	rec := &notifier.Recorder{}
	fc := clock.NewFakeClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:       db,
		Log:      zaptest.NewLogger(t),
		GenID:    node,
		Clock:    fc,
		Repo:     repository.Provide(),
		Notifier: rec,
	})

	return &exportFixture{db: db, rec: rec, clock: fc, svc: svc, node: node, partner: partner, vacancy: vacancyID}
}

func (f *exportFixture) partnerCtx() context.Context {
	return identity.WithUser(context.Background(), f.partner)
}

func TestRequestExport(t *testing.T) {
	f := newExportFixture(t)

	request, err := f.svc.Request(f.partnerCtx(), f.vacancy)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, request.Status)
	assert.Equal(t, f.partner.ID, request.PartnerID)

	// A second request while one is pending is refused.
	_, err = f.svc.Request(f.partnerCtx(), f.vacancy)
	assert.ErrorIs(t, err, domain.ErrAlreadyRequested)

	// Foreign vacancies look like they do not exist.
	other := userdomain.User{ID: f.node.Generate(), TelegramID: 999, Role: userdomain.RolePartner}
	require.NoError(t, f.db.Exec(
		`INSERT INTO users (id, telegram_id, role) VALUES (?, ?, 'partner')`,
		other.ID, other.TelegramID,
	).Error)
	_, err = f.svc.Request(identity.WithUser(context.Background(), other), f.vacancy)
	assert.ErrorIs(t, err, domain.ErrVacancyNotFound)
}

func TestRequestRaceLosesToUniqueIndex(t *testing.T) {
	f := newExportFixture(t)
	repo := repository.Provide()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// Two requests that both passed the pending pre-check; the unique
	// index on pending rows admits only one.
	first := domain.ExportRequest{
		ID: f.node.Generate(), VacancyID: f.vacancy, PartnerID: f.partner.ID,
		Status: domain.StatusPending, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Insert(context.Background(), f.db, &first))

	second := domain.ExportRequest{
		ID: f.node.Generate(), VacancyID: f.vacancy, PartnerID: f.partner.ID,
		Status: domain.StatusPending, CreatedAt: now, UpdatedAt: now,
	}
	err := repo.Insert(context.Background(), f.db, &second)
	require.Error(t, err)
	assert.True(t, pkgdb.IsDuplicateKeyErr(err))

	var count int64
	require.NoError(t, f.db.Raw(
		`SELECT COUNT(*) FROM export_requests WHERE vacancy_id = ? AND status = 'pending'`, f.vacancy,
	).Scan(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRequestAllowedAfterSent(t *testing.T) {
	f := newExportFixture(t)

	_, err := f.svc.Request(f.partnerCtx(), f.vacancy)
	require.NoError(t, err)
	require.NoError(t, f.svc.MarkSent(context.Background(), f.vacancy))

	// A sent request does not block a new one.
	request, err := f.svc.Request(f.partnerCtx(), f.vacancy)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, request.Status)
}

func TestListPendingJoinsPartner(t *testing.T) {
	f := newExportFixture(t)

	_, err := f.svc.Request(f.partnerCtx(), f.vacancy)
	require.NoError(t, err)

	rows, err := f.svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Backend Intern", rows[0].VacancyTitle)
	assert.Equal(t, "Acme", rows[0].CompanyName)
	assert.Equal(t, f.partner.TelegramID, rows[0].PartnerTelegramID)
}

func TestMarkSentNotifiesPartner(t *testing.T) {
	f := newExportFixture(t)

	// Nothing pending yet.
	assert.ErrorIs(t, f.svc.MarkSent(context.Background(), f.vacancy), domain.ErrRequestNotFound)

	_, err := f.svc.Request(f.partnerCtx(), f.vacancy)
	require.NoError(t, err)
	require.NoError(t, f.svc.MarkSent(context.Background(), f.vacancy))

	msg, ok := f.rec.Last()
	require.True(t, ok, "expected a notification to the partner")
	assert.Equal(t, f.partner.TelegramID, msg.ChatID)
	assert.Contains(t, msg.Text, "Данные студентов по вакансии \"Backend Intern\"")

	var status string
	require.NoError(t, f.db.Raw(`SELECT status FROM export_requests WHERE vacancy_id = ?`, f.vacancy).Scan(&status).Error)
	assert.Equal(t, "sent", status)

	// The request is closed, marking again finds nothing.
	assert.ErrorIs(t, f.svc.MarkSent(context.Background(), f.vacancy), domain.ErrRequestNotFound)
}

func TestBuildWorkbook(t *testing.T) {
	f := newExportFixture(t)

	majorID := f.node.Generate()
	require.NoError(t, f.db.Exec(`INSERT INTO majors (id, name) VALUES (?, 'Информатика')`, majorID).Error)

	studentID := f.node.Generate()
	require.NoError(t, f.db.Exec(
		`INSERT INTO users (id, telegram_id, full_name, phone, role, major_id, course)
		 VALUES (?, 111, 'Иван Петров', '+79990001122', 'student', ?, 3)`,
		studentID, majorID,
	).Error)
	require.NoError(t, f.db.Exec(
		`INSERT INTO applications (id, vacancy_id, student_id, created_at) VALUES (?, ?, ?, ?)`,
		f.node.Generate(), f.vacancy, studentID, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	).Error)
	skillBase := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	for i, skill := range []struct {
		name     string
		verified bool
	}{{"Go", true}, {"SQL", true}, {"Juggling", false}} {
		require.NoError(t, f.db.Exec(
			`INSERT INTO skills (id, user_id, skill_name, is_verified, created_at) VALUES (?, ?, ?, ?, ?)`,
			f.node.Generate(), studentID, skill.name, skill.verified, skillBase.Add(time.Duration(i)*time.Minute),
		).Error)
	}

	workbook, err := f.svc.BuildWorkbook(context.Background(), f.vacancy)
	require.NoError(t, err)
	defer os.Remove(workbook.Path)

	assert.True(t, strings.HasPrefix(workbook.Filename, "students_Backend Intern_"))
	assert.True(t, strings.HasSuffix(workbook.Filename, ".xlsx"))

	file, err := excelize.OpenFile(workbook.Path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows("Студенты")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 6)

	assert.Equal(t, []string{"Вакансия", "Backend Intern"}, rows[0])
	assert.Equal(t, []string{"Компания", "Acme"}, rows[1])
	assert.Equal(t, []string{"Дата выгрузки", "10.03.2025"}, rows[2])
	assert.Equal(t, []string{"ФИО", "Телефон", "Курс", "Направление", "Навыки", "Дата отклика"}, rows[4])

	student := rows[5]
	require.Len(t, student, 6)
	assert.Equal(t, "Иван Петров", student[0])
	assert.Equal(t, "+79990001122", student[1])
	assert.Equal(t, "3", student[2])
	assert.Equal(t, "Информатика", student[3])
	assert.Equal(t, "Go, SQL", student[4])
	assert.Equal(t, "01.03.2025", student[5])

	_, err = f.svc.BuildWorkbook(context.Background(), f.node.Generate())
	assert.ErrorIs(t, err, domain.ErrVacancyNotFound)
}

func TestBuildWorkbookSanitizesFilename(t *testing.T) {
	f := newExportFixture(t)

	vacancyID := f.node.Generate()
	require.NoError(t, f.db.Exec(
		`INSERT INTO vacancies (id, partner_id, company_id, title, status) VALUES (?, ?, ?, 'C/C++ Developer', 'active')`,
		vacancyID, f.partner.ID, *f.partner.CompanyID,
	).Error)

	workbook, err := f.svc.BuildWorkbook(context.Background(), vacancyID)
	require.NoError(t, err)
	defer os.Remove(workbook.Path)

	assert.True(t, strings.HasPrefix(workbook.Filename, "students_C_C++ Developer_"))
	assert.NotContains(t, workbook.Filename, "/")
	_, err = os.Stat(workbook.Path)
	require.NoError(t, err)
}
