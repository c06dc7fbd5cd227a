package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"osintkit/internal/domain"
	"osintkit/internal/ports"
)

type entityKey struct {
	typ   domain.EntityType
	value string
}

type job struct {
	ports.ScanJob
	status    string
	queuedAt  time.Time
	startedAt time.Time
	lastError string
}

// Store keeps every repository in process memory. It backs tests and
// single-process development runs.
type Store struct {
	mu sync.Mutex

	scans        map[string]domain.Scan
	entities     map[string]domain.Entity
	entityKeys   map[entityKey]string
	scanEntities map[string][]string
	linked       map[string]map[string]struct{}
	findings     []domain.Finding
	reports      map[string]domain.Report
	jobs         []*job

	now func() time.Time
}

func New() *Store {
	return &Store{
		scans:        make(map[string]domain.Scan),
		entities:     make(map[string]domain.Entity),
		entityKeys:   make(map[entityKey]string),
		scanEntities: make(map[string][]string),
		linked:       make(map[string]map[string]struct{}),
		reports:      make(map[string]domain.Report),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the clock used for job bookkeeping.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// ScanRepository

func (s *Store) CreateScan(_ context.Context, scan domain.Scan) (domain.Scan, error) {
	scan, _ = s.createScan(scan, false)
	return scan, nil
}

func (s *Store) CreateClaimedScan(_ context.Context, scan domain.Scan) (domain.Scan, ports.ScanJob, error) {
	scan, j := s.createScan(scan, true)
	return scan, j.ScanJob, nil
}

func (s *Store) createScan(scan domain.Scan, claimed bool) (domain.Scan, *job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if scan.ID == "" {
		scan.ID = uuid.NewString()
	}
	now := s.now()
	if scan.CreatedAt.IsZero() {
		scan.CreatedAt = now
	}
	scan.Status = domain.StatusQueued
	scan.Settings.Modules = append([]string{}, scan.Settings.Modules...)
	s.scans[scan.ID] = scan

	j := &job{
		ScanJob:  ports.ScanJob{ID: uuid.NewString(), ScanID: scan.ID},
		status:   "queued",
		queuedAt: now,
	}
	if claimed {
		j.status = "running"
		j.Attempts = 1
		j.startedAt = now
	}
	s.jobs = append(s.jobs, j)
	return scan, j
}

func (s *Store) GetScan(_ context.Context, scanID string) (domain.Scan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scan, ok := s.scans[scanID]
	if !ok {
		return domain.Scan{}, domain.ErrNotFound
	}
	return scan, nil
}

func (s *Store) ListScans(_ context.Context, limit int) ([]domain.Scan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Scan, 0, len(s.scans))
	for _, sc := range s.scans {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) TransitionScan(_ context.Context, scanID string, status domain.ScanStatus, at time.Time) (domain.Scan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scan, ok := s.scans[scanID]
	if !ok {
		return domain.Scan{}, domain.ErrNotFound
	}
	if !scan.Status.CanTransition(status) {
		return domain.Scan{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, scan.Status, status)
	}
	applyTransition(&scan, status, at)
	s.scans[scanID] = scan
	return scan, nil
}

func applyTransition(scan *domain.Scan, status domain.ScanStatus, at time.Time) {
	scan.Status = status
	if status == domain.StatusRunning && scan.StartedAt == nil {
		t := at
		scan.StartedAt = &t
	}
	if status.Terminal() {
		t := at
		scan.FinishedAt = &t
	}
}

// EntityRepository

func (s *Store) UpsertEntity(_ context.Context, scanID string, typ domain.EntityType, value string, metadata map[string]any, at time.Time) (domain.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := entityKey{typ: typ, value: value}
	var ent domain.Entity
	if id, ok := s.entityKeys[k]; ok {
		ent = s.entities[id]
		ent.LastSeen = at
		ent.Metadata = domain.MergeMetadata(ent.Metadata, metadata)
	} else {
		ent = domain.Entity{
			ID:             uuid.NewString(),
			Type:           typ,
			CanonicalValue: value,
			Metadata:       domain.MergeMetadata(nil, metadata),
			FirstSeen:      at,
			LastSeen:       at,
		}
		if scanID != "" {
			id := scanID
			ent.ScanID = &id
		}
		s.entityKeys[k] = ent.ID
	}
	s.entities[ent.ID] = ent

	if scanID != "" {
		set, ok := s.linked[scanID]
		if !ok {
			set = make(map[string]struct{})
			s.linked[scanID] = set
		}
		if _, ok := set[ent.ID]; !ok {
			set[ent.ID] = struct{}{}
			s.scanEntities[scanID] = append(s.scanEntities[scanID], ent.ID)
		}
	}
	return copyEntity(ent), nil
}

func (s *Store) GetEntity(_ context.Context, entityID string) (domain.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ent, ok := s.entities[entityID]
	if !ok {
		return domain.Entity{}, domain.ErrNotFound
	}
	return copyEntity(ent), nil
}

func (s *Store) ListScanEntities(_ context.Context, scanID string) ([]domain.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.scanEntities[scanID]
	out := make([]domain.Entity, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyEntity(s.entities[id]))
	}
	return out, nil
}

func (s *Store) SearchEntities(_ context.Context, query string, limit, offset int) ([]domain.Entity, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	var hits []domain.Entity
	for _, e := range s.entities {
		if strings.Contains(e.CanonicalValue, q) {
			hits = append(hits, copyEntity(e))
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].LastSeen.Equal(hits[j].LastSeen) {
			return hits[i].CanonicalValue < hits[j].CanonicalValue
		}
		return hits[i].LastSeen.After(hits[j].LastSeen)
	})
	total := len(hits)
	if offset >= total {
		return []domain.Entity{}, total, nil
	}
	hits = hits[offset:]
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, total, nil
}

func copyEntity(e domain.Entity) domain.Entity {
	e.Metadata = domain.MergeMetadata(nil, e.Metadata)
	return e
}

// FindingRepository

func (s *Store) InsertFinding(_ context.Context, f domain.Finding) (domain.Finding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entities[f.EntityID]; !ok {
		return domain.Finding{}, fmt.Errorf("finding for entity %s: %w", f.EntityID, domain.ErrNotFound)
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	s.findings = append(s.findings, f)
	return f, nil
}

func (s *Store) ListFindings(_ context.Context, entityIDs ...string) ([]domain.Finding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[string]struct{}, len(entityIDs))
	for _, id := range entityIDs {
		want[id] = struct{}{}
	}
	out := []domain.Finding{}
	for _, f := range s.findings {
		if _, ok := want[f.EntityID]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// ReportRepository

func (s *Store) InsertReport(_ context.Context, r domain.Report) (domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.scans[r.ScanID]; !ok {
		return domain.Report{}, fmt.Errorf("report for scan %s: %w", r.ScanID, domain.ErrNotFound)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.reports[r.ID] = r
	return r, nil
}

func (s *Store) GetReport(_ context.Context, reportID string) (domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[reportID]
	if !ok {
		return domain.Report{}, domain.ErrNotFound
	}
	return r, nil
}

var (
	_ ports.ScanRepository    = (*Store)(nil)
	_ ports.EntityRepository  = (*Store)(nil)
	_ ports.FindingRepository = (*Store)(nil)
	_ ports.ReportRepository  = (*Store)(nil)
	_ ports.JobRepository     = (*Store)(nil)
	_ ports.ScanLog           = (*ScanLog)(nil)
)
