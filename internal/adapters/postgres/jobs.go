package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"osintkit/internal/domain"
	"osintkit/internal/ports"
)

// ClaimNext selects the next queued job using SKIP LOCKED and marks it
// running. The scan itself is moved to running by the processor.
func (db *DB) ClaimNext(ctx context.Context) (job ports.ScanJob, found bool, err error) {
	err = db.Pool.QueryRow(ctx, `
        UPDATE scan_jobs SET status = 'running', started_at = now(), attempts = attempts + 1
        WHERE id = (
            SELECT id FROM scan_jobs
            WHERE status = 'queued'
            ORDER BY queued_at
            FOR UPDATE SKIP LOCKED
            LIMIT 1
        )
        RETURNING id, scan_id, attempts`).Scan(&job.ID, &job.ScanID, &job.Attempts)
	if errors.Is(err, pgx.ErrNoRows) {
		return job, false, nil
	}
	if err != nil {
		return job, false, err
	}
	return job, true, nil
}

func (db *DB) MarkCompleted(ctx context.Context, jobID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	tag, err := db.Pool.Exec(ctx, `UPDATE scan_jobs SET status = 'completed', finished_at = now(), last_error = NULL WHERE id = $1`, jobID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkFailed fails the job and, unless it already finished, its scan.
func (db *DB) MarkFailed(ctx context.Context, jobID string, reason string) (err error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var scanID string
	err = tx.QueryRow(ctx, `
        UPDATE scan_jobs SET status = 'failed', finished_at = now(), last_error = $2
        WHERE id = $1
        RETURNING scan_id`, jobID, reason).Scan(&scanID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
        UPDATE scans SET status = 'failed', finished_at = now()
        WHERE id = $1 AND status IN ('queued', 'running')`, scanID)
	return err
}

// RequeueStale returns expired running jobs to the queue, or fails them and
// their scans once maxAttempts is used up.
func (db *DB) RequeueStale(ctx context.Context, lease time.Duration, maxAttempts int) (requeued, failed int, err error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	cutoff := time.Now().Add(-lease)
	tag, err := tx.Exec(ctx, `
        UPDATE scan_jobs SET status = 'queued', queued_at = now(), started_at = NULL
        WHERE status = 'running' AND started_at < $1 AND attempts < $2`, cutoff, maxAttempts)
	if err != nil {
		return 0, 0, err
	}
	requeued = int(tag.RowsAffected())

	err = tx.QueryRow(ctx, `
        WITH dead AS (
            UPDATE scan_jobs SET status = 'failed', finished_at = now(), last_error = 'lease expired after max attempts'
            WHERE status = 'running' AND started_at < $1 AND attempts >= $2
            RETURNING scan_id
        ), scans_failed AS (
            UPDATE scans SET status = 'failed', finished_at = now()
            WHERE id IN (SELECT scan_id FROM dead) AND status IN ('queued', 'running')
        )
        SELECT count(*) FROM dead`, cutoff, maxAttempts).Scan(&failed)
	if err != nil {
		return 0, 0, err
	}
	return requeued, failed, nil
}
