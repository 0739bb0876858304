package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sanixdarker/gqlpath/pkg/querygen"
)

// Repository handles database operations for runs.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a run and its bodies in one transaction.
func (r *Repository) Create(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	opts, err := json.Marshal(run.Options)
	if err != nil {
		return fmt.Errorf("failed to encode options: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, root, target, operation, schema_hash, options, path_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Root, run.Target, run.Operation, run.SchemaHash, string(opts), run.PathCount, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	for _, b := range run.Bodies {
		vars, err := b.Body.Variables.MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to encode variables: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO bodies (run_id, idx, path, operation_name, query, variables)
			VALUES (?, ?, ?, ?, ?, ?)
		`, run.ID, b.Index, b.Path, b.Body.OperationName, b.Body.Query, string(vars))
		if err != nil {
			return fmt.Errorf("failed to store body %d: %w", b.Index, err)
		}
	}

	return tx.Commit()
}

// GetByID retrieves a run with its bodies. A missing run returns nil, nil.
func (r *Repository) GetByID(id string) (*Run, error) {
	run, err := scanRun(r.db.QueryRow(`
		SELECT id, root, target, operation, schema_hash, options, path_count, created_at
		FROM runs WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	run.Bodies, err = r.bodies(run.ID)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// List retrieves runs, newest first, without their bodies.
func (r *Repository) List(offset, limit int) ([]*Run, int, error) {
	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count runs: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT id, root, target, operation, schema_hash, options, path_count, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list runs: %w", err)
	}

	return runs, total, nil
}

// Delete removes a run; its bodies go with it.
func (r *Repository) Delete(id string) (bool, error) {
	res, err := r.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete run: %w", err)
	}
	return n > 0, nil
}

func (r *Repository) bodies(runID string) ([]Body, error) {
	rows, err := r.db.Query(`
		SELECT idx, path, operation_name, query, variables
		FROM bodies WHERE run_id = ? ORDER BY idx
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bodies: %w", err)
	}
	defer rows.Close()

	var out []Body
	for rows.Next() {
		var b Body
		var vars string
		if err := rows.Scan(&b.Index, &b.Path, &b.Body.OperationName, &b.Body.Query, &vars); err != nil {
			return nil, fmt.Errorf("failed to scan body: %w", err)
		}
		if err := b.Body.Variables.UnmarshalJSON([]byte(vars)); err != nil {
			return nil, fmt.Errorf("failed to decode variables of body %d: %w", b.Index, err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	run := &Run{}
	var opts string
	if err := row.Scan(&run.ID, &run.Root, &run.Target, &run.Operation, &run.SchemaHash, &opts, &run.PathCount, &run.CreatedAt); err != nil {
		return nil, err
	}
	run.Options = querygen.DefaultOptions()
	if err := json.Unmarshal([]byte(opts), &run.Options); err != nil {
		return nil, fmt.Errorf("failed to decode options: %w", err)
	}
	return run, nil
}
