package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/diewo77/invoice-builder/internal/export"
	"github.com/diewo77/invoice-builder/internal/handlers"
	"github.com/diewo77/invoice-builder/internal/services"
	"github.com/diewo77/invoice-builder/internal/store"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
	log zerolog.Logger
}

// NewApp creates a new application with all routes configured.
func NewApp(st store.Store, exporter *export.Manager, defaultLang string, log zerolog.Logger) *App {
	app := &App{mux: http.NewServeMux(), log: log}

	h := handlers.NewInvoiceHandler(st, services.NewInvoiceService(), exporter, defaultLang, log)
	h.Register(app.mux)

	app.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return app
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	a.mux.ServeHTTP(w, r)
	a.log.Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Dur("took", time.Since(start)).
		Msg("request")
}
