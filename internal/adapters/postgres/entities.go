package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"osintkit/internal/domain"
)

const entityColumns = `id, scan_id, type, canonical_value, metadata, first_seen, last_seen`

func scanEntity(row pgx.Row) (domain.Entity, error) {
	var (
		e   domain.Entity
		typ string
	)
	err := row.Scan(&e.ID, &e.ScanID, &typ, &e.CanonicalValue, &e.Metadata, &e.FirstSeen, &e.LastSeen)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Entity{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Entity{}, err
	}
	e.Type = domain.EntityType(typ)
	if e.Metadata == nil {
		e.Metadata = map[string]any{}
	}
	return e, nil
}

// UpsertEntity is one statement: the insert-or-merge on (type,
// canonical_value) and the scan link happen atomically. Metadata must be a
// JSON object; a JSON null would turn || into an array concatenation.
func (db *DB) UpsertEntity(ctx context.Context, scanID string, typ domain.EntityType, value string, metadata map[string]any, at time.Time) (domain.Entity, error) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	var scan *string
	if scanID != "" {
		scan = &scanID
	}
	ent, err := scanEntity(db.Pool.QueryRow(ctx, `
        WITH ent AS (
            INSERT INTO entities (id, scan_id, type, canonical_value, metadata, first_seen, last_seen)
            VALUES ($1, $2::uuid, $3, $4, $5, $6, $6)
            ON CONFLICT (type, canonical_value) DO UPDATE
                SET last_seen = EXCLUDED.last_seen,
                    metadata  = entities.metadata || EXCLUDED.metadata
            RETURNING `+entityColumns+`
        ), link AS (
            INSERT INTO scan_entities (scan_id, entity_id)
            SELECT $2::uuid, id FROM ent WHERE $2::uuid IS NOT NULL
            ON CONFLICT DO NOTHING
        )
        SELECT `+entityColumns+` FROM ent`,
		uuid.NewString(), scan, string(typ), value, metadata, at))
	if err != nil {
		return domain.Entity{}, mapErr(err)
	}
	return ent, nil
}

func (db *DB) GetEntity(ctx context.Context, entityID string) (domain.Entity, error) {
	if uuid.Validate(entityID) != nil {
		return domain.Entity{}, domain.ErrNotFound
	}
	return scanEntity(db.Pool.QueryRow(ctx, `SELECT `+entityColumns+` FROM entities WHERE id = $1`, entityID))
}

func (db *DB) ListScanEntities(ctx context.Context, scanID string) ([]domain.Entity, error) {
	if uuid.Validate(scanID) != nil {
		return []domain.Entity{}, nil
	}
	rows, err := db.Pool.Query(ctx, `
        SELECT e.id, e.scan_id, e.type, e.canonical_value, e.metadata, e.first_seen, e.last_seen
        FROM scan_entities se
        JOIN entities e ON e.id = se.entity_id
        WHERE se.scan_id = $1
        ORDER BY se.linked_at, e.type, e.canonical_value`, scanID)
	if err != nil {
		return nil, err
	}
	return collectEntities(rows)
}

// SearchEntities is a substring match on canonical_value. LIKE wildcards in
// query are matched literally.
func (db *DB) SearchEntities(ctx context.Context, query string, limit, offset int) ([]domain.Entity, int, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"

	var total int
	if err := db.Pool.QueryRow(ctx, `SELECT count(*) FROM entities WHERE canonical_value LIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := db.Pool.Query(ctx, `
        SELECT `+entityColumns+` FROM entities
        WHERE canonical_value LIKE $1
        ORDER BY last_seen DESC, canonical_value
        LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	ents, err := collectEntities(rows)
	return ents, total, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func collectEntities(rows pgx.Rows) ([]domain.Entity, error) {
	defer rows.Close()
	out := []domain.Entity{}
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
