package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	handlers "github.com/flow-tools/cbm-insight/pkg/handlers/analysis"
	cbmmiddleware "github.com/flow-tools/cbm-insight/pkg/server/middleware"
	"github.com/flow-tools/cbm-insight/pkg/services/analysis"
	"github.com/flow-tools/cbm-insight/pkg/services/ingest"
	"github.com/flow-tools/cbm-insight/pkg/services/session"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server

	shutdownTimeout time.Duration
}

type Dependencies struct {
	Sessions session.Store
	Ingest   ingest.Service
	Analyzer analysis.Analyzer
}

type Config struct {
	Addr            string
	MaxUploadBytes  int64
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	deps := config.Dependencies
	handler := handlers.NewHandler(deps.Sessions, deps.Ingest, deps.Analyzer)

	router := chi.NewRouter()

	router.Use(cbmmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.With(cbmmiddleware.BodyLimit(config.MaxUploadBytes)).
			Post("/uploads", handler.Upload)
		r.Post("/sessions/{session}/analyze", handler.Analyze)
		r.Get("/sessions/{session}/export/csv", handler.ExportCSV)
		r.Post("/sessions/{session}/export/pdf", handler.ExportPDF)
		r.Delete("/sessions/{session}", handler.DeleteSession)
	})
	router.Get("/health", handler.Health)

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// Router exposes the configured mux for tests.
func (w *WebAPI) Router() http.Handler {
	return w.router
}
