// Package ssh serves the path browser to SSH clients.
package ssh

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/sanixdarker/gqlpath/internal/tui"
)

// DefaultPort is used when Config.Port is zero.
const DefaultPort = 2222

// validateKeyPermissions checks that an existing host key is only readable
// by its owner.
func validateKeyPermissions(keyPath string) error {
	info, err := os.Stat(keyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // generated on first start
		}
		return fmt.Errorf("failed to stat key file: %w", err)
	}

	if perms := info.Mode().Perm(); perms != 0600 {
		return fmt.Errorf("SSH host key has insecure permissions %o, expected 0600", perms)
	}
	return nil
}

// Config holds server configuration.
type Config struct {
	Port    int
	KeyPath string
	Title   string
	Entries []tui.Entry
	Logger  *log.Logger
}

// Server gives every SSH session its own browser over the same entries.
type Server struct {
	server  *ssh.Server
	logger  *log.Logger
	port    int
	title   string
	entries []tui.Entry
}

// New creates an SSH server. The host key at KeyPath is generated when it
// does not exist.
func New(cfg Config) (*Server, error) {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	if cfg.KeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home dir: %w", err)
		}
		cfg.KeyPath = filepath.Join(home, ".ssh", "gqlpath_ed25519")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.KeyPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := validateKeyPermissions(cfg.KeyPath); err != nil {
		return nil, err
	}

	s := &Server{
		logger:  cfg.Logger,
		port:    cfg.Port,
		title:   cfg.Title,
		entries: cfg.Entries,
	}

	server, err := wish.NewServer(
		wish.WithAddress(fmt.Sprintf(":%d", cfg.Port)),
		wish.WithHostKeyPath(cfg.KeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			logging.MiddlewareWithLogger(cfg.Logger),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.server = server
	return s, nil
}

func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	renderer := bubbletea.MakeRenderer(sess)
	model := tui.NewModel(s.title, s.entries).WithStyles(tui.StylesFor(renderer))
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// ListenAndServe starts the SSH server and blocks until it is shut down.
func (s *Server) ListenAndServe() error {
	s.logger.Info("SSH browser listening", "addr", s.Addr(), "paths", len(s.entries))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf(":%d", s.port)
}
