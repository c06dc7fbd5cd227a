package domain

import "time"

// Core domain models used internally. The HTTP adapter maps these onto its
// own JSON shapes; keep them free of transport concerns.

type TargetType string

const (
	TargetDomain TargetType = "domain"
	TargetEmail  TargetType = "email"
	TargetIP     TargetType = "ip"
	TargetHandle TargetType = "handle"
)

// ParseTargetType accepts any casing of a known target type.
func ParseTargetType(s string) (TargetType, error) {
	switch t := TargetType(foldASCII(s)); t {
	case TargetDomain, TargetEmail, TargetIP, TargetHandle:
		return t, nil
	}
	return "", ErrInvalidTargetType
}

type EntityType string

const (
	EntityDomain      EntityType = "domain"
	EntitySubdomain   EntityType = "subdomain"
	EntityIP          EntityType = "ip"
	EntityEmail       EntityType = "email"
	EntityURL         EntityType = "url"
	EntityCertificate EntityType = "certificate"
	EntityPerson      EntityType = "person"
	EntityAccount     EntityType = "account"
)

func (t EntityType) Valid() bool {
	switch t {
	case EntityDomain, EntitySubdomain, EntityIP, EntityEmail, EntityURL, EntityCertificate, EntityPerson, EntityAccount:
		return true
	}
	return false
}

type ScanSettings struct {
	Modules []string `json:"modules"`
}

type Scan struct {
	ID         string
	Target     string
	Type       TargetType
	Status     ScanStatus
	Settings   ScanSettings
	CreatedAt  time.Time
	StartedAt  *time.Time
	FinishedAt *time.Time
}

// Entity is deduplicated globally by (Type, CanonicalValue). ScanID is the
// scan that first discovered it.
type Entity struct {
	ID             string
	ScanID         *string
	Type           EntityType
	CanonicalValue string
	Metadata       map[string]any
	FirstSeen      time.Time
	LastSeen       time.Time
}

// Finding is append-only provenance attached to exactly one entity.
type Finding struct {
	ID         string
	EntityID   string
	Source     string
	Type       string
	Confidence float64
	RawResult  any
	CreatedAt  time.Time
}

type Report struct {
	ID        string
	ScanID    string
	Title     string
	Summary   string
	Sections  map[string]any
	Score     *int
	Embedding []float64
	CreatedAt time.Time
}

// ScanGraph is a scan together with everything it touched.
type ScanGraph struct {
	Scan     Scan
	Entities []Entity
	Findings []Finding
}

type EntityDetail struct {
	Entity   Entity
	Findings []Finding
}

// ModuleEvent is one line of a scan's module log.
type ModuleEvent struct {
	Module string    `json:"module"`
	Event  string    `json:"event"` // started|succeeded|failed|skipped
	Error  string    `json:"error,omitempty"`
	At     time.Time `json:"at"`
}

const (
	EventStarted   = "started"
	EventSucceeded = "succeeded"
	EventFailed    = "failed"
	EventSkipped   = "skipped"
)

// MergeMetadata overlays src onto dst at the top level; src wins on conflict.
func MergeMetadata(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		out[k] = v
	}
	return out
}
