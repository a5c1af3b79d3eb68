package main

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finanzas-app/backend/internal/amqp"
	"github.com/finanzas-app/backend/internal/auth"
	"github.com/finanzas-app/backend/internal/config"
	v1 "github.com/finanzas-app/backend/internal/controllers/v1"
	"github.com/finanzas-app/backend/internal/models"
	"github.com/finanzas-app/backend/internal/money"
	"github.com/finanzas-app/backend/internal/repositories"
	"github.com/finanzas-app/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title						Finanzas
// @version					1.0
// @description				The backend for Finanzas, a personal income and expense tracker.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	if err := config.LoadDotenv(); err != nil {
		log.Fatal().Err(err).Msg("Loading .env file")
	}

	cfg := config.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	_, logFormatSet := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!logFormatSet && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	db, err := models.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	formatter, err := money.NewFormatter(cfg.Currency, cfg.Locale)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	authRepository := auth.NewRepository(db, []byte(cfg.JWTSecret), cfg.SessionTTL)

	// Export session events if a broker is configured
	if cfg.AMQPURL != "" {
		publisher, err := amqp.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		defer publisher.Close()

		events, unsubscribe := authRepository.Subscribe()
		defer unsubscribe()

		go publisher.Run(ctx, events)
		log.Info().Str("exchange", cfg.AMQPExchange).Msg("Publishing session events")
	}

	co := v1.New(db, repositories.NewTransactions(db), repositories.NewCategories(db), authRepository, formatter)

	r, teardown, err := router.Config(cfg)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(co, r.Group("/"), cfg.EnablePprof)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,

		// Cancel all request contexts on shutdown so that
		// open session event streams end
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("listen: %s\n", err)
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("Server started")

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
