package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driven"
)

// metricsStore implements driven.MetricsStore.
type metricsStore struct {
	store *Store
}

var _ driven.MetricsStore = (*metricsStore)(nil)

// Save stores or replaces a run.
func (s *metricsStore) Save(ctx context.Context, run *domain.MetricsRun) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}

	metricsJSON, err := json.Marshal(run.Metrics)
	if err != nil {
		return fmt.Errorf("marshalling metrics: %w", err)
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO metrics_runs (id, chunk_path, total_nodes, metrics, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			chunk_path = excluded.chunk_path,
			total_nodes = excluded.total_nodes,
			metrics = excluded.metrics,
			created_at = excluded.created_at
	`, run.ID, run.ChunkPath, run.Metrics.TotalNodes(), string(metricsJSON), createdAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving metrics run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID.
func (s *metricsStore) Get(ctx context.Context, id string) (*domain.MetricsRun, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, chunk_path, metrics, created_at FROM metrics_runs WHERE id = ?
	`, id)
	return scanMetricsRun(row)
}

// List returns all runs, newest first.
func (s *metricsStore) List(ctx context.Context) ([]domain.MetricsRun, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, chunk_path, metrics, created_at FROM metrics_runs
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying metrics runs: %w", err)
	}
	return collectMetricsRuns(rows)
}

// ListByChunk returns the runs of one chunk file, newest first.
func (s *metricsStore) ListByChunk(ctx context.Context, chunkPath string) ([]domain.MetricsRun, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, chunk_path, metrics, created_at FROM metrics_runs
		WHERE chunk_path = ?
		ORDER BY created_at DESC, id DESC
	`, chunkPath)
	if err != nil {
		return nil, fmt.Errorf("querying metrics runs: %w", err)
	}
	return collectMetricsRuns(rows)
}

// Delete removes a run.
func (s *metricsStore) Delete(ctx context.Context, id string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM metrics_runs WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting metrics run: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMetricsRun(row scanner) (*domain.MetricsRun, error) {
	var (
		run         domain.MetricsRun
		metricsJSON string
		createdAt   int64
	)
	if err := row.Scan(&run.ID, &run.ChunkPath, &metricsJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning metrics run: %w", err)
	}
	if err := json.Unmarshal([]byte(metricsJSON), &run.Metrics); err != nil {
		return nil, fmt.Errorf("unmarshalling metrics of run %s: %w", run.ID, err)
	}
	run.CreatedAt = time.Unix(0, createdAt)
	return &run, nil
}

func collectMetricsRuns(rows *sql.Rows) ([]domain.MetricsRun, error) {
	defer rows.Close()

	var runs []domain.MetricsRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanMetricsRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating metrics runs: %w", err)
	}
	return runs, nil
}
