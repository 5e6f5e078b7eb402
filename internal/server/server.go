package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/brightfund/brightfund/internal/auth"
	authdomain "github.com/brightfund/brightfund/internal/auth/domain"
	"github.com/brightfund/brightfund/internal/bootstrap"
	bootstrapdomain "github.com/brightfund/brightfund/internal/bootstrap/domain"
	"github.com/brightfund/brightfund/internal/config"
	"github.com/brightfund/brightfund/internal/invitation"
	invitationdomain "github.com/brightfund/brightfund/internal/invitation/domain"
	"github.com/brightfund/brightfund/internal/joinrequest"
	joinrequestdomain "github.com/brightfund/brightfund/internal/joinrequest/domain"
	"github.com/brightfund/brightfund/internal/logger"
	"github.com/brightfund/brightfund/internal/organization"
	orgdomain "github.com/brightfund/brightfund/internal/organization/domain"
	"github.com/brightfund/brightfund/internal/providers/email"
	"github.com/brightfund/brightfund/internal/staff"
	staffdomain "github.com/brightfund/brightfund/internal/staff/domain"
	"github.com/brightfund/brightfund/pkg/db"
)

var Module = fx.Module("http.server",
	config.Module,
	logger.Module,
	db.Module,
	fx.Provide(NewEngine),
	auth.Module,
	organization.Module,
	bootstrap.Module,
	staff.Module,
	email.Module,
	invitation.Module,
	joinrequest.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log.Named("http")))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, sd fx.Shutdowner, log *zap.Logger, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server terminated", zap.Error(err))
					_ = sd.Shutdown()
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
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	genID        *snowflake.Node
	authsvc      authdomain.Service
	orgsvc       orgdomain.Service
	bootstrapsvc bootstrapdomain.Service
	staffsvc     staffdomain.Service
	invitesvc    invitationdomain.Service
	joinreqsvc   joinrequestdomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	GenID        *snowflake.Node
	Authsvc      authdomain.Service
	Orgsvc       orgdomain.Service
	Bootstrapsvc bootstrapdomain.Service
	Staffsvc     staffdomain.Service
	Invitesvc    invitationdomain.Service
	Joinreqsvc   joinrequestdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		authsvc:      p.Authsvc,
		orgsvc:       p.Orgsvc,
		bootstrapsvc: p.Bootstrapsvc,
		staffsvc:     p.Staffsvc,
		invitesvc:    p.Invitesvc,
		joinreqsvc:   p.Joinreqsvc,
	}

	svc.registerSuperadminRoutes()
	svc.registerAuthRoutes()
	svc.registerPublicRoutes()
	svc.registerAdminRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerSuperadminRoutes() {
	superadmin := s.engine.Group("/superadmin")

	superadmin.POST("/login", s.SuperadminLogin)

	guarded := superadmin.Group("", s.AuthRequired(), s.SystemRequired())
	{
		guarded.POST("/organizations", s.CreateOrganization)
		guarded.POST("/users", s.CreateOrganizationAdmin)
	}
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/login", s.Login)
	auth.POST("/register/staff", s.OptionalAuth(), s.RegisterStaff)
	auth.POST("/register-request", s.CreateRegistrationRequest)
	auth.POST("/invite-user", s.AuthRequired(), s.AdminRequired(), s.InviteUser)
}

func (s *Server) registerPublicRoutes() {
	public := s.engine.Group("/public")

	public.GET("/organizations", s.ListPublicOrganizations)
	public.GET("/roles", s.ListRoles)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin")
	admin.Use(s.AuthRequired(), s.AdminRequired())

	admin.GET("/all-requests/:organization_id", s.ListRegistrationRequests)
	admin.POST("/approve-request", s.ApproveRegistrationRequest)
	admin.POST("/reject-request", s.RejectRegistrationRequest)
}
