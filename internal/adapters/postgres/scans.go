package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"osintkit/internal/domain"
	"osintkit/internal/ports"
)

const scanColumns = `id, target, target_type, status, settings, created_at, started_at, finished_at`

func scanScan(row pgx.Row) (domain.Scan, error) {
	var (
		s           domain.Scan
		typ, status string
	)
	err := row.Scan(&s.ID, &s.Target, &typ, &status, &s.Settings, &s.CreatedAt, &s.StartedAt, &s.FinishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Scan{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Scan{}, err
	}
	s.Type = domain.TargetType(typ)
	s.Status = domain.ScanStatus(status)
	if s.Settings.Modules == nil {
		s.Settings.Modules = []string{}
	}
	return s, nil
}

// CreateScan inserts the scan and its queued job in one transaction.
func (db *DB) CreateScan(ctx context.Context, scan domain.Scan) (domain.Scan, error) {
	out, _, err := db.createScan(ctx, scan, false)
	return out, err
}

// CreateClaimedScan inserts the scan with its job already running.
func (db *DB) CreateClaimedScan(ctx context.Context, scan domain.Scan) (domain.Scan, ports.ScanJob, error) {
	return db.createScan(ctx, scan, true)
}

func (db *DB) createScan(ctx context.Context, scan domain.Scan, claimed bool) (out domain.Scan, job ports.ScanJob, err error) {
	if scan.ID == "" {
		scan.ID = uuid.NewString()
	}
	if scan.CreatedAt.IsZero() {
		scan.CreatedAt = time.Now().UTC()
	}
	if scan.Settings.Modules == nil {
		scan.Settings.Modules = []string{}
	}

	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return out, job, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	out, err = scanScan(tx.QueryRow(ctx, `
        INSERT INTO scans (id, target, target_type, status, settings, created_at)
        VALUES ($1, $2, $3, 'queued', $4, $5)
        RETURNING `+scanColumns,
		scan.ID, scan.Target, string(scan.Type), scan.Settings, scan.CreatedAt))
	if err != nil {
		return out, job, fmt.Errorf("insert scan: %w", err)
	}

	job = ports.ScanJob{ID: uuid.NewString(), ScanID: out.ID}
	status := "queued"
	var startedAt *time.Time
	if claimed {
		status = "running"
		job.Attempts = 1
		startedAt = &scan.CreatedAt
	}
	if _, err = tx.Exec(ctx, `
        INSERT INTO scan_jobs (id, scan_id, status, attempts, queued_at, started_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		job.ID, out.ID, status, job.Attempts, scan.CreatedAt, startedAt); err != nil {
		return out, job, fmt.Errorf("enqueue scan job: %w", err)
	}
	return out, job, nil
}

func (db *DB) GetScan(ctx context.Context, scanID string) (domain.Scan, error) {
	if uuid.Validate(scanID) != nil {
		return domain.Scan{}, domain.ErrNotFound
	}
	return scanScan(db.Pool.QueryRow(ctx, `SELECT `+scanColumns+` FROM scans WHERE id = $1`, scanID))
}

func (db *DB) ListScans(ctx context.Context, limit int) ([]domain.Scan, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT `+scanColumns+` FROM scans
        ORDER BY created_at DESC, id DESC
        LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Scan{}
	for rows.Next() {
		s, err := scanScan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// TransitionScan applies the move with a single conditional UPDATE so two
// workers can never both win a transition out of the same state.
func (db *DB) TransitionScan(ctx context.Context, scanID string, status domain.ScanStatus, at time.Time) (domain.Scan, error) {
	if uuid.Validate(scanID) != nil {
		return domain.Scan{}, domain.ErrNotFound
	}
	from := make([]string, 0, 2)
	for _, s := range domain.SourceStatuses(status) {
		from = append(from, string(s))
	}
	scan, err := scanScan(db.Pool.QueryRow(ctx, `
        UPDATE scans SET
            status = $2,
            started_at = CASE WHEN $2 = 'running' THEN COALESCE(started_at, $3) ELSE started_at END,
            finished_at = CASE WHEN $2 IN ('completed', 'failed') THEN $3 ELSE finished_at END
        WHERE id = $1 AND status = ANY($4)
        RETURNING `+scanColumns,
		scanID, string(status), at, from))
	if !errors.Is(err, domain.ErrNotFound) {
		return scan, err
	}

	current, err := db.GetScan(ctx, scanID)
	if err != nil {
		return domain.Scan{}, err
	}
	return domain.Scan{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current.Status, status)
}
