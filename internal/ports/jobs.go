package ports

import (
	"context"
	"time"
)

type ScanJob struct {
	ID       string
	ScanID   string
	Attempts int
}

// JobRepository supports claiming and updating scan jobs.
type JobRepository interface {
	ClaimNext(ctx context.Context) (job ScanJob, found bool, err error)
	MarkCompleted(ctx context.Context, jobID string) error
	MarkFailed(ctx context.Context, jobID string, reason string) error
	// RequeueStale puts jobs stuck in running for longer than lease back on
	// the queue. Jobs that already used maxAttempts are failed instead, and
	// so is their scan.
	RequeueStale(ctx context.Context, lease time.Duration, maxAttempts int) (requeued, failed int, err error)
}
