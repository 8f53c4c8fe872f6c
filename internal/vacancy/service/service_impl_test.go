package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smart-practice/backend/internal/identity"
	"github.com/smart-practice/backend/internal/notifier"
	userdomain "github.com/smart-practice/backend/internal/user/domain"
	"github.com/smart-practice/backend/internal/vacancy/domain"
	"github.com/smart-practice/backend/internal/vacancy/repository"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return node
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	prepareSchema(t, db)
	return db
}

func prepareSchema(t *testing.T, db *gorm.DB) {
	t.Helper()
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
			description TEXT NOT NULL DEFAULT '',
			position TEXT NOT NULL DEFAULT '',
			major_ids TEXT NOT NULL DEFAULT '[]',
			slots_count INTEGER NOT NULL DEFAULT 0,
			deadline_date DATETIME,
			reward TEXT NOT NULL DEFAULT '',
			header_bg_color TEXT NOT NULL DEFAULT '',
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
		`CREATE UNIQUE INDEX idx_applications_vacancy_student ON applications (vacancy_id, student_id)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("schema: %v", err)
		}
	}
}

func newService(t *testing.T, db *gorm.DB, rec notifier.Notifier) domain.Service {
	t.Helper()
	if rec == nil {
		rec = &notifier.Recorder{}
	}
	return New(Params{
		DB:       db,
		Log:      zaptest.NewLogger(t),
		GenID:    mustNode(t),
		Repo:     repository.Provide(),
		Notifier: rec,
	})
}

func seedUser(t *testing.T, db *gorm.DB, user userdomain.User) {
	t.Helper()
	err := db.Exec(
		`INSERT INTO users (id, telegram_id, phone, full_name, role, company_id, major_id, course)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.TelegramID, user.Phone, user.FullName, string(user.Role), user.CompanyID, user.MajorID, user.Course,
	).Error
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func seedCompany(t *testing.T, db *gorm.DB, id snowflake.ID, name string) {
	t.Helper()
	if err := db.Exec(`INSERT INTO companies (id, name) VALUES (?, ?)`, id, name).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
}

func seedVacancy(t *testing.T, db *gorm.DB, v domain.Vacancy) {
	t.Helper()
	majorIDs := "[]"
	if len(v.MajorIDs) > 0 {
		parts := make([]string, len(v.MajorIDs))
		for i, id := range v.MajorIDs {
			parts[i] = fmt.Sprintf("%d", id)
		}
		majorIDs = "[" + strings.Join(parts, ",") + "]"
	}
	err := db.Exec(
		`INSERT INTO vacancies (id, partner_id, company_id, title, description, major_ids, deadline_date, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.PartnerID, v.CompanyID, v.Title, v.Description, majorIDs, v.DeadlineDate, string(v.Status), v.CreatedAt, v.UpdatedAt,
	).Error
	if err != nil {
		t.Fatalf("seed vacancy: %v", err)
	}
}

func ctxAs(user userdomain.User) context.Context {
	return identity.WithUser(context.Background(), user)
}

func TestListStudentDefaultsToActive(t *testing.T) {
	db := openTestDB(t)
	node := mustNode(t)

	companyID := node.Generate()
	seedCompany(t, db, companyID, "Acme")
	partner := userdomain.User{ID: node.Generate(), TelegramID: 100, Role: userdomain.RolePartner, CompanyID: &companyID}
	seedUser(t, db, partner)
	student := userdomain.User{ID: node.Generate(), TelegramID: 200, Role: userdomain.RoleStudent}
	seedUser(t, db, student)

	now := time.Now().UTC()
	seedVacancy(t, db, domain.Vacancy{ID: node.Generate(), PartnerID: partner.ID, CompanyID: companyID, Title: "Published", Status: domain.StatusActive, DeadlineDate: now.Add(72 * time.Hour), CreatedAt: now, UpdatedAt: now})
	seedVacancy(t, db, domain.Vacancy{ID: node.Generate(), PartnerID: partner.ID, CompanyID: companyID, Title: "Hidden", Status: domain.StatusDraft, DeadlineDate: now.Add(72 * time.Hour), CreatedAt: now, UpdatedAt: now})

	svc := newService(t, db, nil)

	items, err := svc.List(ctxAs(student), domain.ListRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 vacancy in student feed, got %d", len(items))
	}
	if items[0].Title != "Published" {
		t.Fatalf("expected the active vacancy, got %q", items[0].Title)
	}
	if items[0].UserApplied == nil || *items[0].UserApplied {
		t.Fatalf("expected user_applied=false annotation, got %v", items[0].UserApplied)
	}

	// Partners see every status by default.
	all, err := svc.List(ctxAs(partner), domain.ListRequest{})
	if err != nil {
		t.Fatalf("list as partner: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 vacancies for partner, got %d", len(all))
	}
}

func TestListStudentMajorAffinityOrdering(t *testing.T) {
	db := openTestDB(t)
	node := mustNode(t)

	companyID := node.Generate()
	seedCompany(t, db, companyID, "Acme")
	partner := userdomain.User{ID: node.Generate(), TelegramID: 100, Role: userdomain.RolePartner, CompanyID: &companyID}
	seedUser(t, db, partner)

	majorID := node.Generate()
	otherMajor := node.Generate()
	student := userdomain.User{ID: node.Generate(), TelegramID: 200, Role: userdomain.RoleStudent, MajorID: &majorID}
	seedUser(t, db, student)

	base := time.Now().UTC()
	// The off-major vacancy is newest, so without affinity it would lead the feed.
	seedVacancy(t, db, domain.Vacancy{ID: node.Generate(), PartnerID: partner.ID, CompanyID: companyID, Title: "Other major", MajorIDs: []int64{int64(otherMajor)}, Status: domain.StatusActive, DeadlineDate: base.Add(72 * time.Hour), CreatedAt: base.Add(2 * time.Minute), UpdatedAt: base})
	seedVacancy(t, db, domain.Vacancy{ID: node.Generate(), PartnerID: partner.ID, CompanyID: companyID, Title: "My major", MajorIDs: []int64{int64(majorID)}, Status: domain.StatusActive, DeadlineDate: base.Add(72 * time.Hour), CreatedAt: base.Add(time.Minute), UpdatedAt: base})
	seedVacancy(t, db, domain.Vacancy{ID: node.Generate(), PartnerID: partner.ID, CompanyID: companyID, Title: "No majors", Status: domain.StatusActive, DeadlineDate: base.Add(72 * time.Hour), CreatedAt: base, UpdatedAt: base})

	svc := newService(t, db, nil)

	items, err := svc.List(ctxAs(student), domain.ListRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected every active vacancy in the feed, got %d", len(items))
	}
	if items[0].Title != "My major" {
		t.Fatalf("expected the matching vacancy first, got %q", items[0].Title)
	}
	// The remaining two keep their newest-first order.
	if items[1].Title != "Other major" || items[2].Title != "No majors" {
		t.Fatalf("expected stable order after matches, got %q then %q", items[1].Title, items[2].Title)
	}
}

func TestListStudentAppliedAnnotation(t *testing.T) {
	db := openTestDB(t)
	node := mustNode(t)

	companyID := node.Generate()
	seedCompany(t, db, companyID, "Acme")
	partner := userdomain.User{ID: node.Generate(), TelegramID: 100, Role: userdomain.RolePartner, CompanyID: &companyID}
	seedUser(t, db, partner)
	student := userdomain.User{ID: node.Generate(), TelegramID: 200, Role: userdomain.RoleStudent}
	seedUser(t, db, student)

	now := time.Now().UTC()
	applied := domain.Vacancy{ID: node.Generate(), PartnerID: partner.ID, CompanyID: companyID, Title: "Applied", Status: domain.StatusActive, DeadlineDate: now.Add(72 * time.Hour), CreatedAt: now.Add(time.Minute), UpdatedAt: now}
	fresh := domain.Vacancy{ID: node.Generate(), PartnerID: partner.ID, CompanyID: companyID, Title: "Fresh", Status: domain.StatusActive, DeadlineDate: now.Add(72 * time.Hour), CreatedAt: now, UpdatedAt: now}
	seedVacancy(t, db, applied)
	seedVacancy(t, db, fresh)

	if err := db.Exec(`INSERT INTO applications (id, vacancy_id, student_id) VALUES (?, ?, ?)`, node.Generate(), applied.ID, student.ID).Error; err != nil {
		t.Fatalf("seed application: %v", err)
	}

	svc := newService(t, db, nil)

	items, err := svc.List(ctxAs(student), domain.ListRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, item := range items {
		if item.UserApplied == nil {
			t.Fatalf("expected user_applied annotation on %q", item.Title)
		}
		want := item.ID == applied.ID
		if *item.UserApplied != want {
			t.Fatalf("vacancy %q: expected user_applied=%v, got %v", item.Title, want, *item.UserApplied)
		}
	}
}

func TestCreateValidation(t *testing.T) {
	db := openTestDB(t)
	node := mustNode(t)

	companyID := node.Generate()
	seedCompany(t, db, companyID, "Acme")
	noCompany := userdomain.User{ID: node.Generate(), TelegramID: 100, Role: userdomain.RolePartner}
	seedUser(t, db, noCompany)
	partner := userdomain.User{ID: node.Generate(), TelegramID: 101, Role: userdomain.RolePartner, CompanyID: &companyID}
	seedUser(t, db, partner)

	svc := newService(t, db, nil)

	if _, err := svc.Create(ctxAs(noCompany), domain.CreateRequest{Title: "Intern"}); err != domain.ErrNoCompany {
		t.Fatalf("expected ErrNoCompany, got %v", err)
	}
	if _, err := svc.Create(ctxAs(partner), domain.CreateRequest{Title: "   "}); err != domain.ErrTitleRequired {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}

	created, err := svc.Create(ctxAs(partner), domain.CreateRequest{Title: "Intern", DeadlineDate: time.Now().UTC().Add(72 * time.Hour)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != domain.StatusModeration {
		t.Fatalf("expected new vacancy in moderation, got %s", created.Status)
	}
	if created.PartnerID != partner.ID || created.CompanyID != companyID {
		t.Fatalf("expected ownership from caller, got partner=%d company=%d", created.PartnerID, created.CompanyID)
	}
}

func TestDuplicateCopiesAsDraft(t *testing.T) {
	db := openTestDB(t)
	node := mustNode(t)

	companyID := node.Generate()
	seedCompany(t, db, companyID, "Acme")
	partner := userdomain.User{ID: node.Generate(), TelegramID: 100, Role: userdomain.RolePartner, CompanyID: &companyID}
	seedUser(t, db, partner)

	now := time.Now().UTC()
	original := domain.Vacancy{ID: node.Generate(), PartnerID: partner.ID, CompanyID: companyID, Title: "Backend Intern", Status: domain.StatusActive, DeadlineDate: now.Add(72 * time.Hour), CreatedAt: now, UpdatedAt: now}
	seedVacancy(t, db, original)

	svc := newService(t, db, nil)

	dup, err := svc.Duplicate(ctxAs(partner), original.ID)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if dup.ID == original.ID {
		t.Fatalf("expected a new id for the duplicate")
	}
	if dup.Title != "Backend Intern (Копия)" {
		t.Fatalf("expected copy suffix in title, got %q", dup.Title)
	}
	if dup.Status != domain.StatusDraft {
		t.Fatalf("expected duplicate in draft, got %s", dup.Status)
	}

	// Only the owner may duplicate.
	other := userdomain.User{ID: node.Generate(), TelegramID: 101, Role: userdomain.RolePartner, CompanyID: &companyID}
	seedUser(t, db, other)
	if _, err := svc.Duplicate(ctxAs(other), original.ID); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign vacancy, got %v", err)
	}
}

func TestModerateApproveNotifiesPartner(t *testing.T) {
	db := openTestDB(t)
	node := mustNode(t)
	rec := &notifier.Recorder{}

	companyID := node.Generate()
	seedCompany(t, db, companyID, "Acme")
	partner := userdomain.User{ID: node.Generate(), TelegramID: 555, Role: userdomain.RolePartner, CompanyID: &companyID}
	seedUser(t, db, partner)
	curator := userdomain.User{ID: node.Generate(), TelegramID: 900, Role: userdomain.RoleCurator}
	seedUser(t, db, curator)

	now := time.Now().UTC()
	vacancy := domain.Vacancy{ID: node.Generate(), PartnerID: partner.ID, CompanyID: companyID, Title: "Backend Intern", Status: domain.StatusModeration, DeadlineDate: now.Add(72 * time.Hour), CreatedAt: now, UpdatedAt: now}
	seedVacancy(t, db, vacancy)

	svc := newService(t, db, rec)

	if err := svc.Moderate(ctxAs(curator), domain.ModerateRequest{VacancyID: vacancy.ID, Action: domain.ActionApprove}); err != nil {
		t.Fatalf("moderate: %v", err)
	}

	var status string
	if err := db.Raw(`SELECT status FROM vacancies WHERE id = ?`, vacancy.ID).Scan(&status).Error; err != nil {
		t.Fatalf("read status: %v", err)
	}
	if status != "active" {
		t.Fatalf("expected approved vacancy active, got %s", status)
	}

	msg, ok := rec.Last()
	if !ok {
		t.Fatalf("expected a notification to the partner")
	}
	if msg.ChatID != partner.TelegramID {
		t.Fatalf("expected notification to chat %d, got %d", partner.TelegramID, msg.ChatID)
	}
	if !strings.Contains(msg.Text, "одобрена и опубликована") || !strings.Contains(msg.Text, vacancy.Title) {
		t.Fatalf("unexpected approval text: %q", msg.Text)
	}
}

func TestModerateRejectUsesFallbackComment(t *testing.T) {
	db := openTestDB(t)
	node := mustNode(t)
	rec := &notifier.Recorder{}

	companyID := node.Generate()
	seedCompany(t, db, companyID, "Acme")
	partner := userdomain.User{ID: node.Generate(), TelegramID: 555, Role: userdomain.RolePartner, CompanyID: &companyID}
	seedUser(t, db, partner)
	curator := userdomain.User{ID: node.Generate(), TelegramID: 900, Role: userdomain.RoleCurator}
	seedUser(t, db, curator)

	now := time.Now().UTC()
	vacancy := domain.Vacancy{ID: node.Generate(), PartnerID: partner.ID, CompanyID: companyID, Title: "Backend Intern", Status: domain.StatusModeration, DeadlineDate: now.Add(72 * time.Hour), CreatedAt: now, UpdatedAt: now}
	seedVacancy(t, db, vacancy)

	svc := newService(t, db, rec)

	if err := svc.Moderate(ctxAs(curator), domain.ModerateRequest{VacancyID: vacancy.ID, Action: domain.ActionReject, Comment: "  "}); err != nil {
		t.Fatalf("moderate: %v", err)
	}

	var status string
	if err := db.Raw(`SELECT status FROM vacancies WHERE id = ?`, vacancy.ID).Scan(&status).Error; err != nil {
		t.Fatalf("read status: %v", err)
	}
	if status != "draft" {
		t.Fatalf("expected rejected vacancy back in draft, got %s", status)
	}

	msg, ok := rec.Last()
	if !ok {
		t.Fatalf("expected a notification to the partner")
	}
	if !strings.Contains(msg.Text, "Причина: Причина не указана") {
		t.Fatalf("expected fallback rejection reason, got %q", msg.Text)
	}

	if err := svc.Moderate(ctxAs(curator), domain.ModerateRequest{VacancyID: vacancy.ID, Action: "publish"}); err != domain.ErrInvalidAction {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}

func TestSetStatusRoleRules(t *testing.T) {
	db := openTestDB(t)
	node := mustNode(t)

	companyID := node.Generate()
	seedCompany(t, db, companyID, "Acme")
	partner := userdomain.User{ID: node.Generate(), TelegramID: 100, Role: userdomain.RolePartner, CompanyID: &companyID}
	seedUser(t, db, partner)
	admin := userdomain.User{ID: node.Generate(), TelegramID: 900, Role: userdomain.RoleAdmin}
	seedUser(t, db, admin)

	now := time.Now().UTC()
	vacancy := domain.Vacancy{ID: node.Generate(), PartnerID: partner.ID, CompanyID: companyID, Title: "Backend Intern", Status: domain.StatusActive, DeadlineDate: now.Add(72 * time.Hour), CreatedAt: now, UpdatedAt: now}
	seedVacancy(t, db, vacancy)

	svc := newService(t, db, nil)

	// Partners cannot publish directly, that is the moderation flow.
	if _, err := svc.SetStatus(ctxAs(partner), vacancy.ID, "active"); err != domain.ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus for partner publishing, got %v", err)
	}

	updated, err := svc.SetStatus(ctxAs(partner), vacancy.ID, "archived")
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if updated.Status != domain.StatusArchived {
		t.Fatalf("expected archived, got %s", updated.Status)
	}

	forced, err := svc.SetStatus(ctxAs(admin), vacancy.ID, "active")
	if err != nil {
		t.Fatalf("admin set status: %v", err)
	}
	if forced.Status != domain.StatusActive {
		t.Fatalf("expected admin to force active, got %s", forced.Status)
	}
}

func TestArchiveOverdue(t *testing.T) {
	db := openTestDB(t)
	node := mustNode(t)

	companyID := node.Generate()
	seedCompany(t, db, companyID, "Acme")
	partner := userdomain.User{ID: node.Generate(), TelegramID: 100, Role: userdomain.RolePartner, CompanyID: &companyID}
	seedUser(t, db, partner)

	now := time.Now().UTC()
	overdue := domain.Vacancy{ID: node.Generate(), PartnerID: partner.ID, CompanyID: companyID, Title: "Overdue", Status: domain.StatusActive, DeadlineDate: now.Add(-48 * time.Hour), CreatedAt: now, UpdatedAt: now}
	current := domain.Vacancy{ID: node.Generate(), PartnerID: partner.ID, CompanyID: companyID, Title: "Current", Status: domain.StatusActive, DeadlineDate: now.Add(72 * time.Hour), CreatedAt: now, UpdatedAt: now}
	draft := domain.Vacancy{ID: node.Generate(), PartnerID: partner.ID, CompanyID: companyID, Title: "Old draft", Status: domain.StatusDraft, DeadlineDate: now.Add(-48 * time.Hour), CreatedAt: now, UpdatedAt: now}
	seedVacancy(t, db, overdue)
	seedVacancy(t, db, current)
	seedVacancy(t, db, draft)

	svc := newService(t, db, nil)

	archived, err := svc.ArchiveOverdue(context.Background(), now)
	if err != nil {
		t.Fatalf("archive overdue: %v", err)
	}
	if archived != 1 {
		t.Fatalf("expected 1 archived vacancy, got %d", archived)
	}

	var status string
	if err := db.Raw(`SELECT status FROM vacancies WHERE id = ?`, overdue.ID).Scan(&status).Error; err != nil {
		t.Fatalf("read status: %v", err)
	}
	if status != "archived" {
		t.Fatalf("expected overdue vacancy archived, got %s", status)
	}
	if err := db.Raw(`SELECT status FROM vacancies WHERE id = ?`, draft.ID).Scan(&status).Error; err != nil {
		t.Fatalf("read status: %v", err)
	}
	if status != "draft" {
		t.Fatalf("the sweep must only touch active vacancies, got %s", status)
	}

	// Running the sweep again archives nothing new.
	again, err := svc.ArchiveOverdue(context.Background(), now)
	if err != nil {
		t.Fatalf("archive overdue second run: %v", err)
	}
	if again != 0 {
		t.Fatalf("expected idempotent sweep, got %d", again)
	}
}
