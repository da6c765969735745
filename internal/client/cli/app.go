// Package cli implements the interactive logbook client. The REPL edits an
// in-memory form snapshot; every change is captured into the current Page
// and persisted, mirroring how the paper sheet it replaces is filled in.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/cdot/divelog/internal/client/client"
	"github.com/cdot/divelog/internal/client/cloudstore"
	"github.com/cdot/divelog/internal/client/config"
	"github.com/cdot/divelog/internal/client/models"
	"github.com/cdot/divelog/internal/client/services"
	"github.com/cdot/divelog/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	repos   *client.Repositories
	service *services.PageService
	snap    *models.Snapshot
	log     logging.Logger

	// storeKey is the backend credential, read once at startup and
	// refreshed only by setkey/importkey.
	storeKey cloudstore.Key

	reader *bufio.Reader
	out    io.Writer

	// newStore is a seam so tests can substitute a fake backend.
	newStore func(key cloudstore.Key) (cloudstore.Store, error)
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	repos, err := client.InitDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	snap := newFormSnapshot()

	a := &App{
		config:  cfg,
		repos:   repos,
		service: services.NewPageService(repos.Pages, snap, log),
		snap:    snap,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}

	a.storeKey, err = cloudstore.LoadKey(ctx, repos.KV)
	if err != nil {
		return nil, err
	}

	a.newStore = func(key cloudstore.Key) (cloudstore.Store, error) {
		return cloudstore.New(key, cloudstore.Options{
			HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
			In:         a.reader,
			Out:        a.out,
			Logger:     log,
		})
	}

	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	if err := a.service.Initialize(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Dive logbook (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
	return a.repos.DB.Close()
}

// status labels the prompt with the current page and the configured backend.
func (a *App) status() string {
	s := ""
	if p := a.service.Current(); p != nil {
		s = p.Describe()
	}
	if backend := a.storeKey.Field(0); backend != "" {
		s = s + " (" + backend + ")"
	}
	return s
}
