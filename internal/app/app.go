// Package app provides the application container shared by the CLI
// commands, the HTTP server and the terminal browser.
package app

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/sanixdarker/gqlpath/internal/catalog"
	"github.com/sanixdarker/gqlpath/internal/config"
	"github.com/sanixdarker/gqlpath/internal/storage"
)

// App is the main application container. The run archive is opened on
// first use so commands that never save or list runs do not touch the
// database.
type App struct {
	Config *config.Config
	Logger *log.Logger

	once    sync.Once
	db      *sql.DB
	catalog *catalog.Service
	openErr error
}

// New creates a new application instance logging to stderr.
func New(cfg *config.Config) *App {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates an application whose logger writes to w.
func NewWithWriter(cfg *config.Config, w io.Writer) *App {
	return &App{Config: cfg, Logger: NewLogger(w, cfg.Debug)}
}

// NewLogger builds the structured logger used across gqlpath.
func NewLogger(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "gqlpath",
		Level:           level,
		ReportTimestamp: true,
	})
}

// Catalog returns the run archive, opening the database on first call.
func (a *App) Catalog() (*catalog.Service, error) {
	a.once.Do(func() {
		db, err := storage.Open(a.Config.DBPath)
		if err != nil {
			a.openErr = fmt.Errorf("failed to initialize database: %w", err)
			return
		}
		a.db = db
		a.catalog = catalog.NewService(catalog.NewRepository(db))
		a.Logger.Debug("opened run archive", "path", a.Config.DBPath)
	})
	return a.catalog, a.openErr
}

// Close cleans up application resources.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
