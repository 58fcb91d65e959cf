package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/application/usecase/audit"
	"github.com/yardops/yardops/application/usecase/auth"
	"github.com/yardops/yardops/application/usecase/carrier"
	"github.com/yardops/yardops/application/usecase/role"
	"github.com/yardops/yardops/application/usecase/user_management"
	"github.com/yardops/yardops/application/usecase/yard"
	"github.com/yardops/yardops/infrastructure/adapter/memory"
	"github.com/yardops/yardops/infrastructure/adapter/postgres"
	"github.com/yardops/yardops/infrastructure/config"
	"github.com/yardops/yardops/infrastructure/http/handler"
	"github.com/yardops/yardops/infrastructure/http/middleware"
	"github.com/yardops/yardops/infrastructure/service/jwt"
	"github.com/yardops/yardops/infrastructure/service/logger"
	"github.com/yardops/yardops/infrastructure/service/mailer"
	"github.com/yardops/yardops/infrastructure/service/password"
	"github.com/yardops/yardops/infrastructure/service/ratelimit"
)

type repositories struct {
	users    outbound.UserRepository
	roles    outbound.RoleRepository
	carriers outbound.CarrierRepository
	yards    outbound.YardRepository
	audits   outbound.AuditRepository
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "yardops",
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env":   cfg.Environment,
		"store": cfg.Store,
	})

	repos, cleanup, err := buildRepositories(ctx, cfg)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize store", err, nil)
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer cleanup()

	rateLimiter, err := ratelimit.New(ratelimit.Config{
		Enabled:  cfg.RateLimitEnabled,
		RedisURL: cfg.RedisURL,
	}, structuredLogger)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize rate limiter", err, nil)
		log.Fatalf("Failed to initialize rate limiter: %v", err)
	}

	tokenService := jwt.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL)
	passwordService := password.NewBcryptPasswordService(0)
	emailSender := mailer.NewLogMailer(structuredLogger)

	recorder := audit.NewRecorder(repos.audits)
	trail := audit.NewQueryEngine(repos.audits)

	authUseCase := auth.NewAuthUseCase(repos.users, tokenService, passwordService,
		rateLimiter, recorder, structuredLogger)
	userUseCase := user_management.NewUserManagementUseCase(repos.users, repos.roles,
		passwordService, emailSender, recorder, structuredLogger, cfg.DefaultUserPassword)
	roleUseCase := role.NewRoleUseCase(repos.roles, recorder, structuredLogger)
	carrierUseCase := carrier.NewCarrierUseCase(repos.carriers, recorder, structuredLogger)
	yardUseCase := yard.NewYardUseCase(repos.yards, recorder, structuredLogger)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	router := mux.NewRouter()
	handler.NewAuthHandler(authUseCase, userUseCase, authMiddleware).RegisterRoutes(router)
	handler.NewUserHandler(userUseCase, authMiddleware).RegisterRoutes(router)
	handler.NewRoleHandler(roleUseCase, authMiddleware).RegisterRoutes(router)
	handler.NewCarrierHandler(carrierUseCase, authMiddleware).RegisterRoutes(router)
	handler.NewYardHandler(yardUseCase, authMiddleware).RegisterRoutes(router)
	handler.NewActivityHandler(trail, authMiddleware).RegisterRoutes(router)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"healthy"}`)
	}).Methods(http.MethodGet)

	var httpHandler http.Handler = router
	httpHandler = middleware.CorrelationIDMiddleware(httpHandler)
	if cfg.CORSEnabled && len(cfg.CORSAllowedOrigins) > 0 {
		httpHandler = middleware.CORSMiddleware(httpHandler, cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		structuredLogger.Info(ctx, "Starting server", map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			structuredLogger.Error(ctx, "Server failed to start", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	structuredLogger.Info(ctx, "Shutting down server...", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, nil)
	}
	structuredLogger.Info(ctx, "Server exited", nil)
}

func buildRepositories(ctx context.Context, cfg *config.Config) (*repositories, func(), error) {
	if cfg.Store == "memory" {
		users := memory.NewUserRepository()
		return &repositories{
			users:    users,
			roles:    memory.NewRoleRepository(users),
			carriers: memory.NewCarrierRepository(),
			yards:    memory.NewYardRepository(),
			audits:   memory.NewAuditRepository(users),
		}, func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &repositories{
		users:    postgres.NewUserRepository(db),
		roles:    postgres.NewRoleRepository(db),
		carriers: postgres.NewCarrierRepository(db),
		yards:    postgres.NewYardRepository(db),
		audits:   postgres.NewAuditRepository(db),
	}, func() { db.Close() }, nil
}
