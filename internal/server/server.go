package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smart-practice/backend/internal/application"
	applicationdomain "github.com/smart-practice/backend/internal/application/domain"
	"github.com/smart-practice/backend/internal/company"
	companydomain "github.com/smart-practice/backend/internal/company/domain"
	"github.com/smart-practice/backend/internal/config"
	"github.com/smart-practice/backend/internal/export"
	exportdomain "github.com/smart-practice/backend/internal/export/domain"
	"github.com/smart-practice/backend/internal/notifier"
	"github.com/smart-practice/backend/internal/reference"
	referencedomain "github.com/smart-practice/backend/internal/reference/domain"
	"github.com/smart-practice/backend/internal/skill"
	skilldomain "github.com/smart-practice/backend/internal/skill/domain"
	"github.com/smart-practice/backend/internal/stats"
	statsdomain "github.com/smart-practice/backend/internal/stats/domain"
	"github.com/smart-practice/backend/internal/user"
	userdomain "github.com/smart-practice/backend/internal/user/domain"
	"github.com/smart-practice/backend/internal/vacancy"
	vacancydomain "github.com/smart-practice/backend/internal/vacancy/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	notifier.Module,
	user.Module,
	company.Module,
	vacancy.Module,
	application.Module,
	skill.Module,
	export.Module,
	reference.Module,
	stats.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	db             *gorm.DB
	genID          *snowflake.Node
	userSvc        userdomain.Service
	companySvc     companydomain.Service
	vacancySvc     vacancydomain.Service
	applicationSvc applicationdomain.Service
	skillSvc       skilldomain.Service
	exportSvc      exportdomain.Service
	refRepo        referencedomain.Repository
	statsRepo      statsdomain.Repository
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	DB             *gorm.DB
	GenID          *snowflake.Node
	UserSvc        userdomain.Service
	CompanySvc     companydomain.Service
	VacancySvc     vacancydomain.Service
	ApplicationSvc applicationdomain.Service
	SkillSvc       skilldomain.Service
	ExportSvc      exportdomain.Service
	RefRepo        referencedomain.Repository
	StatsRepo      statsdomain.Repository
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		db:             p.DB,
		genID:          p.GenID,
		userSvc:        p.UserSvc,
		companySvc:     p.CompanySvc,
		vacancySvc:     p.VacancySvc,
		applicationSvc: p.ApplicationSvc,
		skillSvc:       p.SkillSvc,
		exportSvc:      p.ExportSvc,
		refRepo:        p.RefRepo,
		statsRepo:      p.StatsRepo,
	}

	svc.registerAuthRoutes()
	svc.registerUserRoutes()
	svc.registerSkillRoutes()
	svc.registerCompanyRoutes()
	svc.registerVacancyRoutes()
	svc.registerCuratorRoutes()
	svc.registerAdminRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/api/auth")

	auth.GET("/me", s.Me)
	auth.POST("/profile", s.UpdateMe)
	auth.GET("/majors", s.ListMajors)
}

func (s *Server) registerUserRoutes() {
	users := s.engine.Group("/api/users", s.AuthRequired())

	users.GET("/profile", s.GetProfile)
	users.PUT("/profile", s.UpdateProfile)
	users.GET("/applications", s.RequireRole(userdomain.RoleStudent), s.ListMyApplications)

	users.GET("", s.RequireRole(userdomain.RoleAdmin), s.ListUsers)
	users.PUT("/:id/role", s.RequireRole(userdomain.RoleAdmin), s.ChangeUserRole)
}

func (s *Server) registerSkillRoutes() {
	skills := s.engine.Group("/api/skills", s.AuthRequired())

	skills.GET("", s.ListSkills)
	skills.POST("", s.RequireRole(userdomain.RoleStudent), s.AddSkill)
	skills.DELETE("/:id", s.RequireRole(userdomain.RoleStudent), s.DeleteSkill)

	skills.GET("/pending/verification", s.RequireRole(userdomain.RoleCurator), s.ListPendingSkills)
	skills.PUT("/:id/verify", s.RequireRole(userdomain.RoleCurator), s.ReviewSkill)
}

func (s *Server) registerCompanyRoutes() {
	companies := s.engine.Group("/api/companies", s.AuthRequired())

	companies.POST("", s.RequireRole(userdomain.RolePartner, userdomain.RoleCurator), s.CreateCompany)
	companies.GET("/my", s.RequireRole(userdomain.RolePartner, userdomain.RoleCurator), s.GetMyCompany)
	companies.PUT("/my", s.RequireRole(userdomain.RolePartner, userdomain.RoleCurator), s.UpdateMyCompany)
	companies.POST("/invite", s.RequireRole(userdomain.RolePartner), s.CompanyInvite)
	companies.POST("/join", s.RequireRole(userdomain.RolePartner), s.JoinCompany)
	companies.GET("/members", s.RequireRole(userdomain.RolePartner), s.ListCompanyMembers)
}

func (s *Server) registerVacancyRoutes() {
	vacancies := s.engine.Group("/api/vacancies", s.AuthRequired())

	vacancies.GET("", s.ListVacancies)
	vacancies.GET("/:id", s.GetVacancy)
	vacancies.POST("", s.RequireRole(userdomain.RolePartner), s.CreateVacancy)
	vacancies.PUT("/:id", s.RequireRole(userdomain.RolePartner), s.UpdateVacancy)
	vacancies.DELETE("/:id", s.RequireRole(userdomain.RolePartner, userdomain.RoleAdmin), s.DeleteVacancy)
	vacancies.PUT("/:id/status", s.RequireRole(userdomain.RolePartner, userdomain.RoleCurator, userdomain.RoleAdmin), s.SetVacancyStatus)

	vacancies.POST("/:id/apply", s.RequireRole(userdomain.RoleStudent), s.ApplyToVacancy)
	vacancies.POST("/:id/hide", s.RequireRole(userdomain.RoleStudent), s.HideVacancy)

	vacancies.GET("/partner/my", s.RequireRole(userdomain.RolePartner), s.ListMyVacancies)
	vacancies.POST("/:id/duplicate", s.RequireRole(userdomain.RolePartner), s.DuplicateVacancy)
	vacancies.GET("/:id/applications", s.RequireRole(userdomain.RolePartner), s.ListVacancyApplications)
	vacancies.POST("/:id/export-request", s.RequireRole(userdomain.RolePartner), s.RequestExport)
}

func (s *Server) registerCuratorRoutes() {
	curator := s.engine.Group("/api/curator", s.AuthRequired(), s.RequireRole(userdomain.RoleCurator))

	curator.GET("/vacancies/moderation", s.ListModerationQueue)
	curator.PUT("/vacancies/:id/moderate", s.ModerateVacancy)

	curator.GET("/export-requests", s.ListExportRequests)
	curator.GET("/export/:id/download", s.DownloadExport)
	curator.PUT("/export/:id/sent", s.MarkExportSent)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/api/admin", s.AuthRequired(), s.RequireRole(userdomain.RoleAdmin))

	admin.GET("/companies", s.AdminListCompanies)
	admin.PUT("/companies/:id", s.AdminUpdateCompany)
	admin.DELETE("/companies/:id", s.AdminDeleteCompany)

	admin.GET("/vacancies", s.AdminListVacancies)
	admin.PUT("/vacancies/:id/status", s.SetVacancyStatus)
	admin.DELETE("/vacancies/:id", s.DeleteVacancy)

	admin.GET("/majors", s.ListMajors)
	admin.POST("/majors", s.CreateMajor)
	admin.PUT("/majors/:id", s.UpdateMajor)
	admin.DELETE("/majors/:id", s.DeleteMajor)

	admin.GET("/stats", s.GetStats)
}
