package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"osintkit/internal/domain"
)

const codeForeignKeyViolation = "23503"

func (db *DB) InsertFinding(ctx context.Context, f domain.Finding) (domain.Finding, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO findings (id, entity_id, source, finding_type, confidence, raw_result, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		f.ID, f.EntityID, f.Source, f.Type, f.Confidence, f.RawResult, f.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		return domain.Finding{}, fmt.Errorf("finding for entity %s: %w", f.EntityID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Finding{}, mapErr(err)
	}
	return f, nil
}

// ListFindings returns findings for the given entities in insertion order.
func (db *DB) ListFindings(ctx context.Context, entityIDs ...string) ([]domain.Finding, error) {
	ids := make([]string, 0, len(entityIDs))
	for _, id := range entityIDs {
		if uuid.Validate(id) == nil {
			ids = append(ids, id)
		}
	}
	out := []domain.Finding{}
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := db.Pool.Query(ctx, `
        SELECT id, entity_id, source, finding_type, confidence, raw_result, created_at
        FROM findings
        WHERE entity_id = ANY($1::uuid[])
        ORDER BY created_at, id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var f domain.Finding
		if err := rows.Scan(&f.ID, &f.EntityID, &f.Source, &f.Type, &f.Confidence, &f.RawResult, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
