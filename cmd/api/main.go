// @title OpenInvite API
// @version 1.0
// @description Renders host-authored invitation templates for guests and collects RSVPs.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"openinvite/config"
	_ "openinvite/docs"
	"openinvite/internal/adapters/auth"
	"openinvite/internal/adapters/calendar"
	"openinvite/internal/adapters/email"
	"openinvite/internal/adapters/templatefetch"
	httpdelivery "openinvite/internal/delivery/http"
	"openinvite/internal/delivery/http/controllers"
	"openinvite/internal/delivery/http/middleware"
	"openinvite/internal/render"
	"openinvite/internal/repository/postgres"
	"openinvite/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	var cache templatefetch.Cache
	if cfg.Template.RedisURL != "" {
		rdb, err := templatefetch.NewRedisClient(ctx, cfg.Template.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		cache = templatefetch.NewRedisCache(rdb, cfg.Template.CacheTTL)
		logger.Info("template cache enabled", "ttl", cfg.Template.CacheTTL)
	}
	fetcher := templatefetch.NewHTTPFetcher(nil, templatefetch.Config{
		Timeout:   cfg.Template.FetchTimeout,
		MaxBytes:  cfg.Template.MaxBytes,
		AllowHTTP: cfg.Template.AllowHTTP,
	}, cache, logger)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		return err
	}
	emailTemplates, err := email.NewTemplateRenderer()
	if err != nil {
		return err
	}

	invitationRepo := postgres.NewInvitationRepository(db)
	guestRepo := postgres.NewGuestRepository(db)
	responseRepo := postgres.NewResponseRepository(db)
	userRepo := postgres.NewUserRepository(db)

	tokens := auth.NewJWT(cfg.JWTSecret)
	engine := render.NewDefaultEngine()

	emailService := services.NewEmailService(mailer, emailTemplates, logger)
	cardService := services.NewCardService(invitationRepo, guestRepo, responseRepo, fetcher,
		calendar.NewICSEncoder(), engine, cfg.PublicBaseURL, cfg.ContextTimeout, logger)
	responseService := services.NewResponseService(invitationRepo, guestRepo, responseRepo, userRepo,
		emailService, cfg.ContextTimeout, logger)
	authService := services.NewAuthService(userRepo, auth.NewBcryptHasher(auth.DefaultBcryptCost), tokens,
		cfg.JWTExpiry, cfg.ContextTimeout)

	docsController, err := controllers.NewDocsController(logger, render.DefaultCatalog())
	if err != nil {
		return err
	}
	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Card:   controllers.NewCardController(logger, cardService),
		RSVP:   controllers.NewRSVPController(logger, responseService),
		Auth:   controllers.NewAuthController(logger, authService, cfg.JWTExpiry),
		Docs:   docsController,
		Health: controllers.NewHealthController(logger, db),
	}, middleware.RequireHost(tokens, logger))

	var handler http.Handler = router
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
