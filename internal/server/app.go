// Package server implements the companion CSV collector. Clients configured
// with the postcsv backend POST their CSV batches here; the server appends
// the body verbatim to a single growing file, so a batch that is retried
// after a lost response simply appears twice and can be de-duplicated
// downstream.
package server

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cdot/divelog/internal/logging"
	"github.com/cdot/divelog/internal/server/config"
)

type App struct {
	config *config.Config
	logger logging.Logger
	router *chi.Mux
}

func NewApp(cfg *config.Config, logger logging.Logger) *App {
	app := &App{config: cfg, logger: logger}
	app.router = app.newRouter()
	return app
}

func (app *App) newRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if creds := app.credentials(); len(creds) > 0 {
		r.Use(middleware.BasicAuth("divelog", creds))
	}

	r.Post("/upload", app.handleUpload)
	return r
}

// credentials converts the configured user:password pairs into the map
// middleware.BasicAuth expects. Malformed pairs are skipped.
func (app *App) credentials() map[string]string {
	creds := map[string]string{}
	for _, u := range app.config.Users {
		user, pass, ok := strings.Cut(u, ":")
		if !ok {
			app.logger.Warn(context.Background(), "ignoring malformed user entry", "entry", u)
			continue
		}
		creds[user] = pass
	}
	return creds
}

// handleUpload appends the request body to the configured file, creating it
// on first use. The body is treated as opaque text; clients send CSV but the
// server never parses it.
func (app *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		app.logger.Error(ctx, "error reading upload", "error", err)
		http.Error(w, "POST failed", http.StatusBadRequest)
		return
	}

	f, err := os.OpenFile(app.config.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		app.logger.Error(ctx, "error opening log file", "file", app.config.File, "error", err)
		http.Error(w, "POST failed", http.StatusBadRequest)
		return
	}
	defer f.Close()

	if _, err := f.Write(body); err != nil {
		app.logger.Error(ctx, "error appending to log file", "file", app.config.File, "error", err)
		http.Error(w, "POST failed", http.StatusBadRequest)
		return
	}

	app.logger.Info(ctx, "appended upload", "bytes", len(body), "file", app.config.File)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Uploaded"))
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until the context is cancelled or an interrupt arrives, then
// shuts the listener down gracefully.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.initSignalHandler(cancel)

	srv := &http.Server{Addr: app.config.Addr, Handler: app.router}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "csv server listening", "addr", app.config.Addr, "file", app.config.File)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
