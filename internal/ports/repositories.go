package ports

import (
	"context"
	"errors"
	"time"

	"osintkit/internal/domain"
)

// ErrConflict marks a storage error that is safe to retry: serialization
// failures, deadlocks and unique violations racing on the entity key.
var ErrConflict = errors.New("storage conflict")

// ScanRepository manages scan records. CreateScan also enqueues the scan's job.
type ScanRepository interface {
	CreateScan(ctx context.Context, scan domain.Scan) (domain.Scan, error)
	// CreateClaimedScan creates the scan with its job already running, so no
	// worker can claim it. The caller processes the scan and finishes the job.
	CreateClaimedScan(ctx context.Context, scan domain.Scan) (domain.Scan, ScanJob, error)
	GetScan(ctx context.Context, scanID string) (domain.Scan, error)
	ListScans(ctx context.Context, limit int) ([]domain.Scan, error)
	// TransitionScan moves a scan to status, stamping started_at on the
	// first move to running and finished_at on terminal moves. It returns
	// domain.ErrInvalidTransition when the current status forbids the move.
	TransitionScan(ctx context.Context, scanID string, status domain.ScanStatus, at time.Time) (domain.Scan, error)
}

// EntityRepository stores entities deduplicated by (type, canonical_value).
type EntityRepository interface {
	// UpsertEntity atomically finds or creates the entity, merges metadata
	// at the top level, bumps last_seen and links the entity to scanID.
	UpsertEntity(ctx context.Context, scanID string, typ domain.EntityType, value string, metadata map[string]any, at time.Time) (domain.Entity, error)
	GetEntity(ctx context.Context, entityID string) (domain.Entity, error)
	ListScanEntities(ctx context.Context, scanID string) ([]domain.Entity, error)
	SearchEntities(ctx context.Context, query string, limit, offset int) (entities []domain.Entity, total int, err error)
}

// FindingRepository is append-only.
type FindingRepository interface {
	InsertFinding(ctx context.Context, finding domain.Finding) (domain.Finding, error)
	ListFindings(ctx context.Context, entityIDs ...string) ([]domain.Finding, error)
}

type ReportRepository interface {
	InsertReport(ctx context.Context, report domain.Report) (domain.Report, error)
	GetReport(ctx context.Context, reportID string) (domain.Report, error)
}

// ScanLog keeps a bounded per-scan log of module events.
type ScanLog interface {
	Append(ctx context.Context, scanID string, event domain.ModuleEvent) error
	Tail(ctx context.Context, scanID string, n int) ([]domain.ModuleEvent, error)
}
