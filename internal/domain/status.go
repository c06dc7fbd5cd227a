package domain

type ScanStatus string

const (
	StatusQueued    ScanStatus = "queued"
	StatusRunning   ScanStatus = "running"
	StatusCompleted ScanStatus = "completed"
	StatusFailed    ScanStatus = "failed"
)

func (s ScanStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransition reports whether a scan may move from s to next.
// running -> running is allowed so a redelivered job can re-enter a scan
// whose previous worker died mid-run.
func (s ScanStatus) CanTransition(next ScanStatus) bool {
	switch s {
	case StatusQueued:
		return next == StatusRunning
	case StatusRunning:
		return next == StatusRunning || next == StatusCompleted || next == StatusFailed
	}
	return false
}

// SourceStatuses returns the statuses from which next is reachable.
func SourceStatuses(next ScanStatus) []ScanStatus {
	var out []ScanStatus
	for _, s := range []ScanStatus{StatusQueued, StatusRunning, StatusCompleted, StatusFailed} {
		if s.CanTransition(next) {
			out = append(out, s)
		}
	}
	return out
}
