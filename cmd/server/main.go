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
	"github.com/sirupsen/logrus"

	"mytodo-server/internal/config"
	apphttp "mytodo-server/internal/http"
	"mytodo-server/internal/mail"
	"mytodo-server/internal/repository/sqlite"
	"mytodo-server/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	todoRepo := sqlite.NewTodoRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := todoRepo.Init(ctx); err != nil {
		logger.Fatalf("init todo repository: %v", err)
	}

	mailer := mail.NewDispatcher(buildMailSender(cfg, logger), logger)

	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	authService := service.NewAuthService(userRepo, mailer, cfg.Auth.JWTSecret, tokenTTL)
	todoService := service.NewTodoService(todoRepo)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		authService,
		todoService,
		cfg.Auth.JWTSecret,
		tokenTTL,
		cfg.IsProduction(),
		cfg.CORS.AllowedOrigins,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildMailSender(cfg config.Config, logger *logrus.Logger) mail.Sender {
	if cfg.SMTP.Host == "" {
		logger.Warn("smtp host not configured, mail will be logged only")
		return &mail.LogSender{Logger: logger}
	}

	logger.Infof("sending mail via %s:%d as %s", cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Sender)
	return mail.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)
}
