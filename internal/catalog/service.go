package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/sanixdarker/gqlpath/pkg/querygen"
)

// Service provides the run archive operations used by the CLI and server.
type Service struct {
	repo *Repository
}

// NewService creates a new Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// SaveResult archives a generation result. schema is the raw introspection
// document, which is identified by its hash only.
func (s *Service) SaveResult(schema []byte, operation string, opts querygen.Options, res *querygen.Result) (*Run, error) {
	run := &Run{
		Root:       res.Root,
		Target:     res.Target,
		Operation:  operation,
		SchemaHash: HashSchema(schema),
		Options:    opts,
		PathCount:  len(res.Paths),
	}
	for i, b := range res.Bodies {
		label := ""
		if i < len(res.Labels) {
			label = res.Labels[i]
		}
		run.Bodies = append(run.Bodies, Body{Index: i + 1, Path: label, Body: b})
	}

	if err := s.repo.Create(run); err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}
	return run, nil
}

// GetRun retrieves a run by ID, or nil when it does not exist.
func (s *Service) GetRun(id string) (*Run, error) {
	return s.repo.GetByID(id)
}

// ListRuns retrieves a page of runs.
func (s *Service) ListRuns(page, pageSize int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	runs, total, err := s.repo.List((page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	if runs == nil {
		runs = []*Run{}
	}
	return &Page{Runs: runs, Total: total, Page: page, PageSize: pageSize}, nil
}

// DeleteRun removes a run and reports whether it existed.
func (s *Service) DeleteRun(id string) (bool, error) {
	return s.repo.Delete(id)
}

// HashSchema returns the hex SHA-256 of a schema document.
func HashSchema(schema []byte) string {
	h := sha256.Sum256(schema)
	return hex.EncodeToString(h[:])
}
