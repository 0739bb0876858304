package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sanixdarker/gqlpath/internal/config"
)

func TestCatalog_Lazy(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "runs.db")

	a := NewWithWriter(cfg, &bytes.Buffer{})
	defer a.Close()

	if _, err := os.Stat(cfg.DBPath); !os.IsNotExist(err) {
		t.Fatal("database should not exist before first use")
	}

	svc, err := a.Catalog()
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	again, _ := a.Catalog()
	if svc != again {
		t.Error("Catalog should return the same service")
	}
	if _, err := os.Stat(cfg.DBPath); err != nil {
		t.Errorf("database not created: %v", err)
	}
}

func TestCatalog_OpenError(t *testing.T) {
	cfg := config.Default()
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg.DBPath = filepath.Join(file, "runs.db")

	a := NewWithWriter(cfg, &bytes.Buffer{})
	if _, err := a.Catalog(); err == nil {
		t.Error("expected error when the parent is a file")
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug output at info level: %q", buf.String())
	}

	NewLogger(&buf, true).Debug("shown", "k", "v")
	if !strings.Contains(buf.String(), "gqlpath") || !strings.Contains(buf.String(), "k=v") {
		t.Errorf("unexpected log line %q", buf.String())
	}
}
