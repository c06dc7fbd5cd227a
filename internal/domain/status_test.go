package domain

import "testing"

func TestScanStatusCanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to ScanStatus
		want     bool
	}{
		{StatusQueued, StatusRunning, true},
		{StatusQueued, StatusCompleted, false},
		{StatusQueued, StatusFailed, false},
		{StatusRunning, StatusRunning, true},
		{StatusRunning, StatusCompleted, true},
		{StatusRunning, StatusFailed, true},
		{StatusRunning, StatusQueued, false},
		{StatusCompleted, StatusRunning, false},
		{StatusCompleted, StatusQueued, false},
		{StatusCompleted, StatusFailed, false},
		{StatusFailed, StatusRunning, false},
		{StatusFailed, StatusCompleted, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			t.Parallel()
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestSourceStatuses(t *testing.T) {
	t.Parallel()

	got := SourceStatuses(StatusCompleted)
	if len(got) != 1 || got[0] != StatusRunning {
		t.Errorf("SourceStatuses(completed) = %v, want [running]", got)
	}
	got = SourceStatuses(StatusRunning)
	if len(got) != 2 {
		t.Errorf("SourceStatuses(running) = %v, want [queued running]", got)
	}
	if len(SourceStatuses(StatusQueued)) != 0 {
		t.Error("nothing may transition back to queued")
	}
}

func TestTerminal(t *testing.T) {
	t.Parallel()

	if StatusQueued.Terminal() || StatusRunning.Terminal() {
		t.Error("queued and running are not terminal")
	}
	if !StatusCompleted.Terminal() || !StatusFailed.Terminal() {
		t.Error("completed and failed are terminal")
	}
}
