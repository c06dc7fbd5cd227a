package scanner

import (
	"context"
	"fmt"
	"strings"

	"osintkit/internal/domain"
	"osintkit/internal/modules"
	"osintkit/internal/ports"
)

// DefaultListLimit caps ListScans when the caller passes no limit.
const DefaultListLimit = 100

type Service struct {
	scans    ports.ScanRepository
	entities ports.EntityRepository
	findings ports.FindingRepository
	events   ports.ScanLog
	registry *modules.Registry
}

func New(scans ports.ScanRepository, entities ports.EntityRepository, findings ports.FindingRepository, events ports.ScanLog, registry *modules.Registry) *Service {
	return &Service{scans: scans, entities: entities, findings: findings, events: events, registry: registry}
}

// Submit validates the request and creates a queued scan together with its
// job. Module names are stored as given.
func (s *Service) Submit(ctx context.Context, target, targetType string, mods []string) (domain.Scan, error) {
	scan, err := s.prepare(target, targetType, mods)
	if err != nil {
		return domain.Scan{}, err
	}
	scan, err = s.scans.CreateScan(ctx, scan)
	if err != nil {
		return domain.Scan{}, fmt.Errorf("create scan: %w", err)
	}
	return scan, nil
}

// SubmitInline validates like Submit but creates the job already claimed, so
// background workers never pick the scan up.
func (s *Service) SubmitInline(ctx context.Context, target, targetType string, mods []string) (domain.Scan, ports.ScanJob, error) {
	scan, err := s.prepare(target, targetType, mods)
	if err != nil {
		return domain.Scan{}, ports.ScanJob{}, err
	}
	scan, job, err := s.scans.CreateClaimedScan(ctx, scan)
	if err != nil {
		return domain.Scan{}, ports.ScanJob{}, fmt.Errorf("create scan: %w", err)
	}
	return scan, job, nil
}

func (s *Service) prepare(target, targetType string, mods []string) (domain.Scan, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return domain.Scan{}, domain.ErrEmptyTarget
	}
	typ, err := domain.ParseTargetType(targetType)
	if err != nil {
		return domain.Scan{}, fmt.Errorf("%w: %q", err, targetType)
	}
	// "https://" and the like carry no host to scan.
	if typ == domain.TargetDomain && domain.NormalizeHost(target) == "" {
		return domain.Scan{}, fmt.Errorf("%w: no host in %q", domain.ErrEmptyTarget, target)
	}
	if err := s.registry.Validate(mods); err != nil {
		return domain.Scan{}, err
	}
	return domain.Scan{
		Target:   target,
		Type:     typ,
		Settings: domain.ScanSettings{Modules: mods},
	}, nil
}

// Get returns the scan with every entity linked to it and their findings.
func (s *Service) Get(ctx context.Context, scanID string) (domain.ScanGraph, error) {
	scan, err := s.scans.GetScan(ctx, scanID)
	if err != nil {
		return domain.ScanGraph{}, err
	}
	ents, err := s.entities.ListScanEntities(ctx, scanID)
	if err != nil {
		return domain.ScanGraph{}, fmt.Errorf("list entities: %w", err)
	}
	ids := make([]string, len(ents))
	for i, e := range ents {
		ids[i] = e.ID
	}
	fs := []domain.Finding{}
	if len(ids) > 0 {
		if fs, err = s.findings.ListFindings(ctx, ids...); err != nil {
			return domain.ScanGraph{}, fmt.Errorf("list findings: %w", err)
		}
	}
	return domain.ScanGraph{Scan: scan, Entities: ents, Findings: fs}, nil
}

func (s *Service) List(ctx context.Context, limit int) ([]domain.Scan, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.scans.ListScans(ctx, limit)
}

// Log returns the last n module events of a scan.
func (s *Service) Log(ctx context.Context, scanID string, n int) ([]domain.ModuleEvent, error) {
	if _, err := s.scans.GetScan(ctx, scanID); err != nil {
		return nil, err
	}
	if s.events == nil {
		return []domain.ModuleEvent{}, nil
	}
	return s.events.Tail(ctx, scanID, n)
}

var _ ports.Scanner = (*Service)(nil)
