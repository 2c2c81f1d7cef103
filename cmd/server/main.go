package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/telaris/confetrack/internal/config"
	"github.com/telaris/confetrack/internal/middleware"
	"github.com/telaris/confetrack/internal/production/entity"
	"github.com/telaris/confetrack/internal/production/handler"
	"github.com/telaris/confetrack/internal/production/repository"
	"github.com/telaris/confetrack/internal/production/service"
	"github.com/telaris/confetrack/internal/production/sse"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting confetrack service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := autoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	rdb := initRedis(cfg.Redis)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, db, rdb, cfg)
	handlers := handler.NewHandlers(services, cfg)

	if err := services.Auth.EnsureAdminUser(context.Background(),
		config.GetEnvOrDefault("ADMIN_USERNAME", "admin"),
		config.GetEnvOrDefault("ADMIN_PASSWORD", "admin123")); err != nil {
		zapLogger.Fatal("Failed to seed admin user", zap.Error(err))
	}

	scheduler := startSnapshotTicker(services, zapLogger)
	defer scheduler.Stop()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/v1/sse"})))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Employee{},
		&entity.Garment{},
		&entity.Operation{},
		&entity.ProductionOrder{},
		&entity.Assignment{},
		&entity.Remission{},
	)
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// startSnapshotTicker pushes a dashboard snapshot to SSE clients every 30s,
// so open dashboards stay current without polling.
func startSnapshotTicker(services *service.Services, zapLogger *zap.Logger) *cron.Cron {
	scheduler := cron.New()
	scheduler.AddFunc("@every 30s", func() {
		summary, err := services.Dashboard.Summary(context.Background())
		if err != nil {
			zapLogger.Warn("Snapshot refresh failed", zap.Error(err))
			return
		}
		raw, err := json.Marshal(summary)
		if err != nil {
			return
		}
		sse.PublishSnapshot(string(raw))
	})
	scheduler.Start()
	return scheduler
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/logout", h.Auth.Logout)

			employees := authorized.Group("/employees")
			{
				employees.GET("", h.Employee.List)
				employees.POST("", h.Employee.Create)
				employees.GET("/:id", h.Employee.Get)
				employees.PUT("/:id", h.Employee.Update)
				employees.DELETE("/:id", middleware.RequireRole("admin"), h.Employee.Delete)

				employees.GET("/:id/payroll", h.Payroll.EmployeeDetail)
			}

			garments := authorized.Group("/garments")
			{
				garments.GET("", h.Garment.List)
				garments.POST("", h.Garment.Create)
				garments.GET("/:id", h.Garment.Get)
				garments.PUT("/:id", h.Garment.Update)
				garments.DELETE("/:id", middleware.RequireRole("admin"), h.Garment.Delete)
			}

			operations := authorized.Group("/operations")
			{
				operations.GET("", h.Operation.List)
				operations.POST("", h.Operation.Create)
				operations.GET("/:id", h.Operation.Get)
				operations.PUT("/:id", h.Operation.Update)
				operations.DELETE("/:id", middleware.RequireRole("admin"), h.Operation.Delete)
			}

			orders := authorized.Group("/orders")
			{
				orders.GET("", h.Order.List)
				orders.POST("", h.Order.Create)
				orders.GET("/:id", h.Order.Get)
				orders.GET("/:id/progress", h.Order.Progress)
				orders.PUT("/:id", h.Order.Update)
				orders.DELETE("/:id", middleware.RequireRole("admin"), h.Order.Delete)
			}

			assignments := authorized.Group("/assignments")
			{
				assignments.GET("", h.Assignment.List)
				assignments.POST("", h.Assignment.Create)
				assignments.GET("/:id", h.Assignment.Get)
				assignments.POST("/:id/complete", h.Assignment.Complete)
				assignments.POST("/:id/revert", h.Assignment.Revert)
				assignments.DELETE("/:id", h.Assignment.Delete)
			}

			remissions := authorized.Group("/remissions")
			{
				remissions.GET("", h.Remission.List)
				remissions.POST("", h.Remission.Create)
				remissions.GET("/dispatchable", h.Remission.Dispatchable)
				remissions.GET("/:id", h.Remission.Get)
				remissions.DELETE("/:id", h.Remission.Delete)
			}

			authorized.GET("/payroll", h.Payroll.Summary)
			authorized.GET("/dashboard/summary", h.Dashboard.Summary)
			authorized.GET("/sse/events", h.SSE.Stream)
		}
	}
}
