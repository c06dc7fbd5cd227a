package ports

import (
	"context"

	"osintkit/internal/domain"
)

// Scanner submits and inspects scans.
type Scanner interface {
	Submit(ctx context.Context, target, targetType string, modules []string) (domain.Scan, error)
	// SubmitInline is Submit for callers that run the scan themselves.
	SubmitInline(ctx context.Context, target, targetType string, modules []string) (domain.Scan, ScanJob, error)
	Get(ctx context.Context, scanID string) (domain.ScanGraph, error)
	List(ctx context.Context, limit int) ([]domain.Scan, error)
	Log(ctx context.Context, scanID string, n int) ([]domain.ModuleEvent, error)
}

// Entities exposes the entity graph.
type Entities interface {
	Get(ctx context.Context, entityID string) (domain.EntityDetail, error)
	Search(ctx context.Context, query string, limit, offset int) ([]domain.Entity, int, error)
}

// Reports generates and fetches LLM reports.
type Reports interface {
	Generate(ctx context.Context, scanID string) (domain.Report, error)
	Get(ctx context.Context, reportID string) (domain.Report, error)
	AvailableModels(ctx context.Context) ([]string, error)
}
