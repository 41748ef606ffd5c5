package app

import (
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	base := 30 * time.Second
	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"no failures", 0, base},
		{"negative treated as none", -1, base},
		{"one failure", 1, time.Minute},
		{"two failures", 2, 2 * time.Minute},
		{"three failures", 3, 4 * time.Minute},
		{"capped", 4, maxBackoff},
		{"stays capped", 20, maxBackoff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calculateBackoff(tt.failures, base); got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, base, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoffLargeBase(t *testing.T) {
	if got := calculateBackoff(1, 10*time.Minute); got != maxBackoff {
		t.Errorf("calculateBackoff(1, 10m) = %v, want the %v cap", got, maxBackoff)
	}
}
