package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"advisor/internal/config"
	cronrunner "advisor/internal/cron"
	"advisor/internal/db"
	"advisor/internal/handler"
	"advisor/internal/ledger"
	"advisor/internal/logger"
	"advisor/internal/platform"
	"advisor/internal/profiling"
	gormrepository "advisor/internal/repository/gorm"
	"advisor/internal/service"

	_ "advisor/docs"
)

func main() {
	cfgPath := os.Getenv("BK_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("BK_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	profilingSvc := &profiling.Service{Logger: logger}
	strategySvc := &service.StrategyService{Repo: store, Logger: logger}
	advisorSvc := &service.AdvisorService{
		Repo:       store,
		Logger:     logger,
		DefaultTTL: cfg.Advisor.RecommendationTTL,
	}
	perfLedger := &ledger.Ledger{Repo: store, Logger: logger}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	platformClient := initPlatformClient(logger)
	engine.Use(platform.RequireBearerMiddleware())
	engine.Use(platform.InjectClientMiddleware(platformClient))
	engine.Use(platform.WriteAuditMiddleware(platformClient, logger))

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	platform.RegisterDocs(engine)

	profilingHandler := &handler.ProfilingHandler{Service: profilingSvc}
	profilingHandler.Register(engine)
	strategyHandler := &handler.StrategyHandler{Repo: store, Service: strategySvc}
	strategyHandler.Register(engine)
	backtestHandler := &handler.BacktestHandler{Repo: store, Ledger: perfLedger}
	backtestHandler.Register(engine)
	performanceHandler := &handler.PerformanceHandler{Ledger: perfLedger}
	performanceHandler.Register(engine)
	recommendationHandler := &handler.RecommendationHandler{Repo: store, Service: advisorSvc}
	recommendationHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	baseCtx := ctx
	if platformClient != nil {
		baseCtx = platform.WithClient(ctx, platformClient)
	}

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, baseCtx)

		_, err = cronRunner.Add(cfg.Cron.RecommendationPurge, func(ctx context.Context) {
			deleted, err := advisorSvc.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("cron recommendation purge failed", zap.Error(err))
				return
			}
			if deleted > 0 {
				platform.LogBestEffortCtx(ctx, "advisor_cron_recommendation_purge", "info", map[string]any{
					"deleted": deleted,
				})
			}
		})
		if err != nil {
			logger.Warn("cron register recommendation purge failed", zap.Error(err))
		}

		_, err = cronRunner.Add(cfg.Cron.BacktestSweep, func(ctx context.Context) {
			failed, err := perfLedger.SweepStaleRunning(ctx, cfg.Advisor.BacktestStaleAfter, cfg.Advisor.SweepLimit)
			if err != nil {
				logger.Warn("cron backtest sweep failed", zap.Error(err))
				return
			}
			if failed > 0 {
				platform.LogBestEffortCtx(ctx, "advisor_cron_backtest_sweep", "warn", map[string]any{
					"failed": failed,
				})
			}
		})
		if err != nil {
			logger.Warn("cron register backtest sweep failed", zap.Error(err))
		}

		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization,"+platform.UserIDHeader)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func initPlatformClient(logger *zap.Logger) *platform.Client {
	base := strings.TrimSpace(os.Getenv("BK_PLATFORM_API_BASE"))
	apiKey := strings.TrimSpace(os.Getenv("BK_PLATFORM_API_KEY"))
	if base == "" || apiKey == "" {
		return nil
	}

	p := &platform.Client{BaseURL: base, APIKey: apiKey}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := p.Login(ctx); err != nil {
		if logger != nil {
			logger.Warn("platform login failed (audit logs disabled)", zap.Error(err))
		}
		return nil
	}
	if logger != nil {
		logger.Info("platform login ok")
	}
	return p
}
