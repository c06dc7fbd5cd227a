package findings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"osintkit/internal/domain"
	"osintkit/internal/ports"
)

// Recorder appends findings. It never updates one and does not look inside
// raw results or clamp confidence.
type Recorder struct {
	repo ports.FindingRepository
	now  func() time.Time
}

func New(repo ports.FindingRepository) *Recorder {
	return &Recorder{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (r *Recorder) Record(ctx context.Context, entityID, source, findingType string, confidence float64, raw any) (domain.Finding, error) {
	f, err := r.repo.InsertFinding(ctx, domain.Finding{
		ID:         uuid.NewString(),
		EntityID:   entityID,
		Source:     source,
		Type:       findingType,
		Confidence: confidence,
		RawResult:  raw,
		CreatedAt:  r.now(),
	})
	if err != nil {
		return domain.Finding{}, fmt.Errorf("record %s finding: %w", source, err)
	}
	return f, nil
}
