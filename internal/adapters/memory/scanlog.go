package memory

import (
	"context"
	"sync"

	"osintkit/internal/domain"
)

// ScanLog is the in-process fallback used when no Redis is configured.
type ScanLog struct {
	mu   sync.Mutex
	size int
	logs map[string][]domain.ModuleEvent
}

func NewScanLog(size int) *ScanLog {
	if size <= 0 {
		size = 100
	}
	return &ScanLog{size: size, logs: make(map[string][]domain.ModuleEvent)}
}

func (l *ScanLog) Append(_ context.Context, scanID string, ev domain.ModuleEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := append(l.logs[scanID], ev)
	if len(events) > l.size {
		events = events[len(events)-l.size:]
	}
	l.logs[scanID] = events
	return nil
}

func (l *ScanLog) Tail(_ context.Context, scanID string, n int) ([]domain.ModuleEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := l.logs[scanID]
	if n > 0 && len(events) > n {
		events = events[len(events)-n:]
	}
	return append([]domain.ModuleEvent{}, events...), nil
}
