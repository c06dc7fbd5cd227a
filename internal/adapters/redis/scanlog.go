package redisadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"osintkit/internal/domain"
	"osintkit/internal/ports"
)

const DefaultTTL = 7 * 24 * time.Hour

// ScanLog keeps each scan's module events in a capped Redis list.
type ScanLog struct {
	client *redis.Client
	size   int64
	ttl    time.Duration
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func NewScanLog(client *redis.Client, size int, ttl time.Duration) *ScanLog {
	if size <= 0 {
		size = 100
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ScanLog{client: client, size: int64(size), ttl: ttl}
}

func logKey(scanID string) string { return "scan:" + scanID + ":log" }

func (l *ScanLog) Append(ctx context.Context, scanID string, ev domain.ModuleEvent) error {
	buf, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	key := logKey(scanID)
	pipe := l.client.TxPipeline()
	pipe.RPush(ctx, key, buf)
	pipe.LTrim(ctx, key, -l.size, -1)
	pipe.Expire(ctx, key, l.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append scan log %s: %w", scanID, err)
	}
	return nil
}

// Tail returns the last n events, oldest first. n <= 0 returns all of them.
func (l *ScanLog) Tail(ctx context.Context, scanID string, n int) ([]domain.ModuleEvent, error) {
	start := int64(0)
	if n > 0 {
		start = -int64(n)
	}
	raw, err := l.client.LRange(ctx, logKey(scanID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read scan log %s: %w", scanID, err)
	}
	return decodeEvents(raw), nil
}

// decodeEvents drops entries that are not valid events.
func decodeEvents(raw []string) []domain.ModuleEvent {
	out := make([]domain.ModuleEvent, 0, len(raw))
	for _, r := range raw {
		var ev domain.ModuleEvent
		if err := json.Unmarshal([]byte(r), &ev); err != nil {
			continue
		}
		out = append(out, ev)
	}
	return out
}

var _ ports.ScanLog = (*ScanLog)(nil)
