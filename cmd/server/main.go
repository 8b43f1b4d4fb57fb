package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/userhive/account-api/internal/api"
	"github.com/userhive/account-api/internal/core/ports"
	"github.com/userhive/account-api/internal/core/service"
	"github.com/userhive/account-api/internal/infrastructure/auth"
	"github.com/userhive/account-api/internal/infrastructure/config"
	"github.com/userhive/account-api/internal/infrastructure/store/jsonfile"
	"github.com/userhive/account-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                      Account API
// @version                    1.0
// @description                User accounts and role-based access control.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("configuration failed")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// A corrupt store document stops the process here unless the
	// deployment explicitly opted into resetting.
	store, err := jsonfile.Open(cfg.Store.Path, cfg.Store.AllowReset, log)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("user store unusable")
	}

	hasher := auth.NewBcryptHasher()
	sessions := auth.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)
	accounts := service.NewAccountService(store, hasher, sessions, log)

	if err := accounts.EnsureSuperAdmin(ctx, ports.RegistrationInput{
		FirstName: cfg.SuperAdmin.FirstName,
		LastName:  cfg.SuperAdmin.LastName,
		Email:     cfg.SuperAdmin.Email,
		Password:  cfg.SuperAdmin.Password,
	}); err != nil {
		log.Fatal().Err(err).Msg("superAdmin bootstrap failed")
	}

	e := api.NewRouter(accounts, sessions, store, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
