package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-cafe/candidate-portal/internal/config"
	"github.com/golang-cafe/candidate-portal/internal/dashboard"
	"github.com/golang-cafe/candidate-portal/internal/handler"
	"github.com/golang-cafe/candidate-portal/internal/notification"
	"github.com/golang-cafe/candidate-portal/internal/remotelog"
	"github.com/golang-cafe/candidate-portal/internal/server"
	"github.com/golang-cafe/candidate-portal/internal/template"
	"github.com/golang-cafe/candidate-portal/internal/webhook"
	"github.com/golang-cafe/candidate-portal/static"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to load config")
	}
	if cfg.Env == "dev" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	events := remotelog.NewShipper(cfg.LogEndpointURL, logger)
	dash, err := dashboard.New(webhook.NewClient(cfg.CandidatesURL, cfg.FetchTimeout), events, cfg.CacheTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to create dashboard")
	}
	defer dash.Close()

	svr := server.NewServer(
		cfg,
		mux.NewRouter(),
		template.NewTemplate(static.Views),
		sessions.NewCookieStore(cfg.SessionKey),
		dash,
		events,
		logger,
	)
	handler.RegisterRoutes(svr)

	// first fetch, the page shows a loading state until it resolves
	go dash.Load(context.Background(), notification.LogNotifier{Logger: logger})

	srv := &http.Server{
		Addr:         svr.Addr(),
		Handler:      svr.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.FetchTimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("server shutdown")
		}
		close(idleConnsClosed)
	}()

	logger.Info().Str("addr", srv.Addr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server failed")
	}

	<-idleConnsClosed
	events.Wait()
}
