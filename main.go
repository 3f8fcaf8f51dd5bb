package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dpiportal/backend"
	"dpiportal/config"
	"dpiportal/cron"
	"dpiportal/database"
	auditRepo "dpiportal/database/repository/audit"
	"dpiportal/handlers"
	"dpiportal/middleware"
	"dpiportal/routes"
	"dpiportal/services/access"
	"dpiportal/services/admin"
	"dpiportal/services/composer"
	"dpiportal/services/navigation"
	"dpiportal/services/session"
	"dpiportal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.InitDB(context.Background()); err != nil {
		logger.Fatal("main: mongo unavailable", zap.Error(err))
	}
	logger.Info("main: connected to mongo", zap.String("database", cfg.DatabaseName))
	cacheClient := utils.GetCacheClient()
	authClient := utils.GetAuthCacheClient()

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	utils.StartHealthMonitor(healthCtx, []*redis.Client{cacheClient, authClient}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	var err error

	// repositories and stores.
	auditRepository := auditRepo.NewMongoAuditRepo()
	var sealer *session.Sealer
	if cfg.JWTSecret != "" {
		if sealer, err = session.NewSealer(cfg.JWTSecret); err != nil {
			logger.Sugar().Fatalf("main: failed to build token sealer: %v", err)
		}
	} else {
		logger.Warn("main: JWT_SECRET not set, sandbox tokens are stored unencrypted")
	}
	sessionStore := session.NewRedisStore(authClient, sealer)
	listCache := admin.NewRedisListCache(cacheClient, utils.UserListCacheTTL)
	confirmations := admin.NewRedisConfirmationStore(authClient, sealer)

	// services.
	api := backend.NewHTTPClient(cfg.BackendBaseURL())
	sessions := &session.Manager{
		Store:   sessionStore,
		Backend: api,
		TTL:     cfg.SessionTTL,
		Logger:  logger,
	}
	adminService := &admin.DefaultAdminService{
		Backend:       api,
		Cache:         listCache,
		Confirmations: confirmations,
		Audit:         auditRepository,
		PageSize:      cfg.AdminPageSize,
		Logger:        logger,
	}

	nav := navigation.Default
	if cfg.NavigationFile != "" {
		loaded, err := navigation.LoadFile(cfg.NavigationFile)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to load navigation file: %v", err)
		}
		nav = loaded
	}

	proxyHandler, err := handlers.NewProxyHandler(cfg.APIURL)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid API_URL: %v", err)
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Sessions: sessions,
		Access:   access.Default,

		Auth:       handlers.NewAuthHandler(sessions),
		Catalog:    handlers.NewCatalogHandler(access.Default, nav),
		Playground: handlers.NewPlaygroundHandler(composer.New(cfg.APIURL, logger), sessions, access.Default, cfg.APIProxyPrefix),
		Admin:      handlers.NewAdminHandler(adminService),
		Proxy:      proxyHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	refreshWorker := cron.StartAdminRefreshWorker(adminService)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("api", cfg.APIURL))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	refreshWorker.Shutdown()
	if err := database.Close(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}
	_ = logger.Sync()

	logger.Sugar().Info("main: server stopped gracefully")
}
