package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"osintkit/internal/domain"
)

func (db *DB) InsertReport(ctx context.Context, r domain.Report) (domain.Report, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Sections == nil {
		r.Sections = map[string]any{}
	}
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO reports (id, scan_id, title, summary, sections, score, embedding, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.ScanID, r.Title, r.Summary, r.Sections, r.Score, r.Embedding, r.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		return domain.Report{}, fmt.Errorf("report for scan %s: %w", r.ScanID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Report{}, err
	}
	return r, nil
}

func (db *DB) GetReport(ctx context.Context, reportID string) (domain.Report, error) {
	if uuid.Validate(reportID) != nil {
		return domain.Report{}, domain.ErrNotFound
	}
	var r domain.Report
	err := db.Pool.QueryRow(ctx, `
        SELECT id, scan_id, title, summary, sections, score, embedding, created_at
        FROM reports WHERE id = $1`, reportID).
		Scan(&r.ID, &r.ScanID, &r.Title, &r.Summary, &r.Sections, &r.Score, &r.Embedding, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Report{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Report{}, err
	}
	return r, nil
}
