package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/noah-isme/academic-records-api/internal/middleware"
	"github.com/noah-isme/academic-records-api/internal/service"
	"github.com/noah-isme/academic-records-api/pkg/config"
	"github.com/noah-isme/academic-records-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/academic-records-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/academic-records-api/pkg/middleware/requestid"

	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Participants *ParticipantHandler
	Catalog      *CatalogHandler
	Programs     *ProgramHandler
	Enrollments  *EnrollmentHandler
	Imports      *ImportHandler
	Exports      *ExportHandler
	Dashboard    *DashboardHandler
}

// NewRouter assembles the gin engine: global middleware, health probes,
// metrics, swagger outside production, and the versioned API group. All
// mutating routes sit behind JWT auth plus the admin role.
func NewRouter(cfg *config.Config, logr *zap.Logger, auth *service.AuthService, metrics *service.MetricsService, h Handlers) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("", middleware.JWT(auth))
	admin := authed.Group("", middleware.RequireAdmin())

	authed.GET("/students", h.Participants.List)
	authed.GET("/students/:id", h.Participants.Get)
	admin.POST("/students", h.Participants.Create)
	admin.PUT("/students/:id", h.Participants.Update)
	admin.DELETE("/students/:id", h.Participants.Delete)
	authed.GET("/students/:id/grade-history", h.Participants.GradeHistory)

	authed.GET("/students/:id/courses", h.Enrollments.List)
	admin.POST("/students/:id/courses", h.Enrollments.Enroll)
	admin.PUT("/students/:id/courses/:courseId/grade", h.Enrollments.UpdateGrade)
	admin.DELETE("/students/:id/courses/:courseId", h.Enrollments.Unenroll)
	authed.GET("/students/:id/gpa", h.Enrollments.GPA)
	authed.GET("/students/:id/transcript", h.Exports.Transcript)

	authed.GET("/courses", h.Catalog.List)
	authed.GET("/courses/:id", h.Catalog.Get)
	admin.POST("/courses", h.Catalog.Create)
	admin.PUT("/courses/:id", h.Catalog.Update)
	admin.DELETE("/courses/:id", h.Catalog.Delete)

	authed.GET("/programs", h.Programs.List)
	authed.GET("/programs/:name", h.Programs.Get)
	admin.POST("/programs", h.Programs.Create)
	admin.PUT("/programs/:name", h.Programs.Update)
	admin.DELETE("/programs/:name", h.Programs.Delete)

	admin.POST("/import/:kind", h.Imports.Import)
	authed.GET("/export/:kind", h.Exports.Export)
	authed.GET("/templates/:kind", h.Exports.Template)

	if cfg.Dashboard.Enabled {
		authed.GET("/dashboard", h.Dashboard.Summary)
	}

	return r
}
