package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/craftlab-hq/ops-backend/internal/config"
	"github.com/craftlab-hq/ops-backend/internal/handler"
	"github.com/craftlab-hq/ops-backend/internal/middleware"
	"github.com/craftlab-hq/ops-backend/internal/migration"
	"github.com/craftlab-hq/ops-backend/internal/repository"
	"github.com/craftlab-hq/ops-backend/internal/routes"
	"github.com/craftlab-hq/ops-backend/internal/service"
	pkgcache "github.com/craftlab-hq/ops-backend/pkg/cache"
	pkgjwt "github.com/craftlab-hq/ops-backend/pkg/jwt"
	pkglogger "github.com/craftlab-hq/ops-backend/pkg/logger"
	pkgredis "github.com/craftlab-hq/ops-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	pkglogger.InitStructured(env)
	zl := pkglogger.GetLogger()
	zl.Info().Strs("env_files", dotenvFiles).Str("env", env).Msg("starting ops-backend")

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := migration.Run(db); err != nil {
		zl.Warn().Err(err).Msg("migration warning")
	}

	// Redis is optional; the cache layer tolerates a nil client
	var cacheService pkgcache.Service
	if cfg.Redis.Enabled {
		redisClient, err := pkgredis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
		)
		if err != nil {
			zl.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
		} else {
			cacheService = pkgcache.NewService(redisClient)
			zl.Info().Msg("cache service initialized")
		}
	}

	jwtManager := pkgjwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	contentRepo := repository.NewContentRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	delegationRepo := repository.NewDelegationRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo, cacheService)
	moduleService := service.NewModuleService(moduleRepo, cacheService)
	contentService := service.NewContentService(contentRepo, checklistRepo, delegationRepo, userRepo, cacheService)
	approvalService := service.NewApprovalService(approvalRepo, delegationRepo, contentRepo, userRepo, cacheService)
	versionService := service.NewVersionService(versionRepo, contentRepo, delegationRepo, cacheService)
	commentService := service.NewCommentService(commentRepo, contentRepo)
	ledgerService := service.NewLedgerService(ledgerRepo, cacheService)

	// HTTP engine
	if env != "development" && env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.Setup(router, routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		User:     handler.NewUserHandler(userService),
		Module:   handler.NewModuleHandler(moduleService, userRepo),
		Content:  handler.NewContentHandler(contentService, userRepo),
		Approval: handler.NewApprovalHandler(approvalService, contentService, userRepo),
		Version:  handler.NewVersionHandler(versionService, userRepo),
		Comment:  handler.NewCommentHandler(commentService, userRepo),
		Ledger:   handler.NewLedgerHandler(ledgerService, userRepo),
	}, jwtManager)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zl.Info().Str("addr", addr).Msg("listening")
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func getConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "configs/config.yaml"
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.GetDSN()
	if _, err := mysqldriver.ParseDSN(dsn); err != nil {
		return nil, fmt.Errorf("invalid DSN: %w", err)
	}

	logLevel := gormlogger.Warn
	if cfg.Server.Env == "development" || cfg.Server.Env == "dev" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}
