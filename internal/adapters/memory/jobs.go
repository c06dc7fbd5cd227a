package memory

import (
	"context"
	"time"

	"osintkit/internal/domain"
	"osintkit/internal/ports"
)

func (s *Store) ClaimNext(_ context.Context) (ports.ScanJob, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.status == "queued" {
			j.status = "running"
			j.Attempts++
			j.startedAt = s.now()
			return j.ScanJob, true, nil
		}
	}
	return ports.ScanJob{}, false, nil
}

func (s *Store) MarkCompleted(_ context.Context, jobID string) error {
	return s.finishJob(jobID, "completed", "")
}

// MarkFailed fails the job and, unless it already finished, its scan.
func (s *Store) MarkFailed(_ context.Context, jobID string, reason string) error {
	return s.finishJob(jobID, "failed", reason)
}

func (s *Store) finishJob(jobID, status, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.ID != jobID {
			continue
		}
		j.status = status
		j.lastError = reason
		if status == "failed" {
			if scan, ok := s.scans[j.ScanID]; ok && scan.Status.CanTransition(domain.StatusFailed) {
				applyTransition(&scan, domain.StatusFailed, s.now())
				s.scans[j.ScanID] = scan
			}
		}
		return nil
	}
	return domain.ErrNotFound
}

func (s *Store) RequeueStale(_ context.Context, lease time.Duration, maxAttempts int) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	cutoff := now.Add(-lease)
	var requeued, failed int
	for _, j := range s.jobs {
		if j.status != "running" || !j.startedAt.Before(cutoff) {
			continue
		}
		if j.Attempts >= maxAttempts {
			j.status = "failed"
			j.lastError = "lease expired after max attempts"
			if scan, ok := s.scans[j.ScanID]; ok && scan.Status.CanTransition(domain.StatusFailed) {
				applyTransition(&scan, domain.StatusFailed, now)
				s.scans[j.ScanID] = scan
			}
			failed++
			continue
		}
		j.status = "queued"
		j.queuedAt = now
		requeued++
	}
	return requeued, failed, nil
}
