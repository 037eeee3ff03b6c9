package main

import (
	"context"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	_ "github.com/noah-isme/academic-records-api/api/swagger"
	"github.com/noah-isme/academic-records-api/internal/handler"
	"github.com/noah-isme/academic-records-api/internal/persistence"
	"github.com/noah-isme/academic-records-api/internal/seed"
	"github.com/noah-isme/academic-records-api/internal/service"
	"github.com/noah-isme/academic-records-api/internal/store"
	"github.com/noah-isme/academic-records-api/pkg/cache"
	"github.com/noah-isme/academic-records-api/pkg/config"
	"github.com/noah-isme/academic-records-api/pkg/export"
	"github.com/noah-isme/academic-records-api/pkg/logger"
)

// @title Academic Records API
// @version 1.0.0
// @description Catalog, enrollment and grade-record service for a student records portal
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx := context.Background()

	var adapter persistence.Adapter = persistence.Noop{}
	var pg *persistence.Postgres
	switch cfg.Persistence.Driver {
	case "postgres":
		pg, err = persistence.Connect(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("postgres connection failed", "error", err)
		}
		defer pg.Close() //nolint:errcheck
		if err := pg.Migrate(ctx); err != nil {
			logr.Sugar().Fatalw("postgres migration failed", "error", err)
		}
		adapter = pg
	case "memory":
		adapter = persistence.NewMemory()
	default:
		logr.Sugar().Fatalw("unknown persistence driver", "driver", cfg.Persistence.Driver)
	}

	if cfg.Persistence.Async {
		async := persistence.NewAsync(adapter, cfg.Persistence, logr)
		async.Start(ctx)
		defer async.Stop()
		adapter = async
	}

	metrics := service.NewMetricsService()

	participants := store.NewParticipantStore(adapter, logr, metrics.RecordPersistenceOp)
	catalog := store.NewCatalogStore(adapter, logr, metrics.RecordPersistenceOp)
	programs := store.NewProgramStore(adapter, logr, metrics.RecordPersistenceOp)

	if cfg.Seed.Enabled {
		stores := seed.Stores{Participants: participants, Catalog: catalog, Programs: programs}
		if err := seed.Load(ctx, stores, logr); err != nil {
			logr.Sugar().Fatalw("seed failed", "error", err)
		}
	}

	var cacheBackend service.CacheBackend
	if cfg.Dashboard.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheBackend = service.NewRedisCache(redisClient)
		}
	}
	cacheSvc := service.NewCacheService(cacheBackend, metrics, cfg.Dashboard.CacheTTL, logr)

	validate := validator.New()
	csvCodec := export.NewCSVCodec()
	pdfExporter := export.NewPDFExporter()

	enrollmentSvc := service.NewEnrollmentService(participants, catalog, validate, logr)
	catalogSvc := service.NewCatalogService(catalog, enrollmentSvc, validate, logr)
	programSvc := service.NewProgramService(programs, enrollmentSvc, validate, logr)
	participantSvc := service.NewParticipantService(participants, validate, logr)
	importSvc := service.NewImportService(participants, catalog, programs, enrollmentSvc, csvCodec, logr)
	exportSvc := service.NewExportService(participants, catalog, programs, csvCodec, pdfExporter, logr)
	dashboardSvc := service.NewDashboardService(participants, catalog, programs, cacheSvc, logr)
	authSvc := service.NewAuthService(participants, validate, logr, service.AuthConfig{
		Secret:        cfg.JWT.Secret,
		Expiry:        cfg.JWT.Expiration,
		Issuer:        cfg.JWT.Issuer,
		AdminUsername: cfg.Admin.Username,
		AdminPassword: cfg.Admin.Password,
	})

	handlers := handler.Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		Participants: handler.NewParticipantHandler(participantSvc, dashboardSvc),
		Catalog:      handler.NewCatalogHandler(catalogSvc, dashboardSvc),
		Programs:     handler.NewProgramHandler(programSvc, dashboardSvc),
		Enrollments:  handler.NewEnrollmentHandler(enrollmentSvc, dashboardSvc),
		Imports:      handler.NewImportHandler(importSvc, dashboardSvc),
		Exports:      handler.NewExportHandler(exportSvc),
		Dashboard:    handler.NewDashboardHandler(dashboardSvc),
	}

	r := handler.NewRouter(cfg, logr, authSvc, metrics, handlers)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "driver", cfg.Persistence.Driver)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
