package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"osintkit/internal/domain"
	"osintkit/internal/ports"
)

// Service finds or creates entities by (type, canonical value).
type Service struct {
	repo    ports.EntityRepository
	now     func() time.Time
	backoff func() retry.Backoff
}

type Option func(*Service)

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithBackoff replaces the conflict retry policy.
func WithBackoff(b func() retry.Backoff) Option { return func(s *Service) { s.backoff = b } }

func New(repo ports.EntityRepository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(4, retry.NewExponential(20*time.Millisecond))
		},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Resolve canonicalizes value, then upserts the entity. Storage conflicts
// are retried here and never reach the caller unless retries run out.
func (s *Service) Resolve(ctx context.Context, scanID string, typ domain.EntityType, value string, metadata map[string]any) (domain.Entity, error) {
	if !typ.Valid() {
		return domain.Entity{}, fmt.Errorf("%w: %q", domain.ErrInvalidEntityType, typ)
	}
	canonical := domain.Canonicalize(typ, value)
	if canonical == "" {
		return domain.Entity{}, fmt.Errorf("resolve %s: empty value", typ)
	}
	if metadata == nil {
		metadata = map[string]any{}
	}

	var ent domain.Entity
	err := retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		e, err := s.repo.UpsertEntity(ctx, scanID, typ, canonical, metadata, s.now())
		if errors.Is(err, ports.ErrConflict) {
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		ent = e
		return nil
	})
	if err != nil {
		return domain.Entity{}, fmt.Errorf("resolve %s %q: %w", typ, canonical, err)
	}
	return ent, nil
}
