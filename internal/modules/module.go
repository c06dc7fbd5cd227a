package modules

import (
	"context"
	"time"

	"osintkit/internal/domain"
)

// Result is what every module returns. Modules never surface errors any
// other way: timeouts, upstream failures and parse errors all end up in
// Error with Success false.
type Result struct {
	Success   bool           `json:"success"`
	Data      map[string]any `json:"data,omitempty"`
	Error     string         `json:"error,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

func OK(data map[string]any) Result {
	return Result{Success: true, Data: data, Timestamp: time.Now().UTC()}
}

func Fail(err error) Result {
	return Result{Success: false, Error: err.Error(), Timestamp: time.Now().UTC()}
}

// Observation asks the orchestrator to resolve one entity and, when Finding
// is set, to record one finding against it.
type Observation struct {
	Type     domain.EntityType
	Value    string
	Metadata map[string]any
	Finding  *FindingSpec
}

type FindingSpec struct {
	Source     string
	Type       string
	Confidence float64
	Raw        any
}

// Module is a single OSINT data source.
type Module interface {
	Name() string
	Supports(t domain.TargetType) bool
	Run(ctx context.Context, target string) Result
	// Map turns a successful result into entity observations, in the order
	// they must be applied.
	Map(target string, data map[string]any) []Observation
}

// Strings reads a string list out of module data regardless of whether it
// was built in-process ([]string) or decoded from JSON ([]any).
func Strings(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, x := range vv {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
