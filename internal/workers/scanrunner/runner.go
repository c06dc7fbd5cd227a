package scanrunner

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"osintkit/internal/ports"
)

// ScanProcessor performs the scan work for a job's scan id.
type ScanProcessor interface {
	Process(ctx context.Context, scanID string) error
}

type Options struct {
	Concurrency  int
	PollInterval time.Duration
	// Lease is how long a job may stay running before it counts as
	// abandoned. Zero disables stale job recovery.
	Lease       time.Duration
	MaxAttempts int
	Logger      *logrus.Logger
}

// Run starts worker goroutines that claim jobs and process them. It blocks
// until ctx is done and every in-flight job has returned.
func Run(ctx context.Context, repo ports.JobRepository, processor ScanProcessor, opts Options) {
	if opts.Concurrency < 1 {
		return
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 500 * time.Millisecond
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	jobsCh := make(chan ports.ScanJob)

	var wg sync.WaitGroup
	for i := 0; i < opts.Concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for job := range jobsCh {
				handle(ctx, repo, processor, job, log.WithFields(logrus.Fields{
					"worker":  idx,
					"job_id":  job.ID,
					"scan_id": job.ScanID,
					"attempt": job.Attempts,
				}))
			}
		}(i)
	}

	dispatch(ctx, repo, jobsCh, opts, log)
	close(jobsCh)
	wg.Wait()
}

// dispatch claims jobs on every tick until ctx is done. A job is only
// claimed once a worker is free to take it.
func dispatch(ctx context.Context, repo ports.JobRepository, jobsCh chan<- ports.ScanJob, opts Options, log *logrus.Logger) {
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	var lastSweep time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if opts.Lease > 0 && time.Since(lastSweep) >= opts.Lease/2 {
			lastSweep = time.Now()
			requeued, failed, err := repo.RequeueStale(ctx, opts.Lease, opts.MaxAttempts)
			switch {
			case err != nil:
				log.WithError(err).Warn("stale job sweep failed")
			case requeued > 0 || failed > 0:
				log.WithFields(logrus.Fields{"requeued": requeued, "failed": failed}).Warn("recovered stale jobs")
			}
		}

		for {
			job, found, err := repo.ClaimNext(ctx)
			if err != nil {
				if ctx.Err() == nil {
					log.WithError(err).Error("job claim error")
				}
				break
			}
			if !found {
				break
			}
			select {
			case jobsCh <- job:
			case <-ctx.Done():
				// Claimed but never started; the stale sweep re-queues it.
				return
			}
		}
	}
}

func handle(ctx context.Context, repo ports.JobRepository, processor ScanProcessor, job ports.ScanJob, log *logrus.Entry) {
	start := time.Now()
	if err := processor.Process(ctx, job.ScanID); err != nil {
		if merr := repo.MarkFailed(context.WithoutCancel(ctx), job.ID, err.Error()); merr != nil {
			log.WithError(merr).Error("mark job failed")
		}
		log.WithError(err).Error("job failed")
		return
	}
	if err := repo.MarkCompleted(context.WithoutCancel(ctx), job.ID); err != nil {
		log.WithError(err).Error("mark job completed")
		return
	}
	log.WithField("duration", time.Since(start).String()).Info("job completed")
}

// ProcessInline runs a job the caller already holds, using the same
// processor as the background workers, then completes or fails it.
func ProcessInline(ctx context.Context, repo ports.JobRepository, processor ScanProcessor, job ports.ScanJob) error {
	if err := processor.Process(ctx, job.ScanID); err != nil {
		_ = repo.MarkFailed(context.WithoutCancel(ctx), job.ID, err.Error())
		return err
	}
	return repo.MarkCompleted(context.WithoutCancel(ctx), job.ID)
}
