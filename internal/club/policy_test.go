package club

import (
	"testing"
	"time"
)

func mustPolicy(t *testing.T) Policy {
	t.Helper()

	policy, err := NewPolicy("10:00", "22:00", 120)
	if err != nil {
		t.Fatalf("new policy: %v", err)
	}
	return policy
}

func TestPolicyValidate(t *testing.T) {
	policy := mustPolicy(t)
	now := time.Date(2030, 5, 10, 9, 0, 0, 0, time.UTC)
	day := func(hour, minute int) time.Time {
		return time.Date(2030, 5, 10, hour, minute, 0, 0, time.UTC)
	}

	tests := []struct {
		name      string
		startTime time.Time
		endTime   time.Time
		wantValid bool
	}{
		{"one hour mid-window", day(14, 0), day(15, 0), true},
		{"exactly max duration", day(10, 0), day(12, 0), true},
		{"starts at opening", day(10, 0), day(11, 0), true},
		{"ends at closing", day(21, 0), day(22, 0), true},
		{"full window edges", day(10, 0), day(11, 59), true},
		{"over max duration", day(10, 0), day(12, 1), false},
		{"zero duration", day(14, 0), day(14, 0), false},
		{"negative duration", day(15, 0), day(14, 0), false},
		{"before opening", day(9, 59), day(11, 0), false},
		{"past closing", day(21, 30), day(22, 1), false},
		{"start in the past", day(8, 0), day(8, 30), false},
		{"start equals now", now, now.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Validate(tt.startTime, tt.endTime, now)
			if tt.wantValid && err != nil {
				t.Errorf("Validate(%v, %v) = %v, want nil", tt.startTime, tt.endTime, err)
			}
			if !tt.wantValid {
				if err == nil {
					t.Errorf("Validate(%v, %v) = nil, want error", tt.startTime, tt.endTime)
					return
				}
				if _, ok := err.(ValidationError); !ok {
					t.Errorf("Validate(%v, %v) = %T, want ValidationError", tt.startTime, tt.endTime, err)
				}
			}
		})
	}
}

func TestPolicyValidatePastStartAlwaysFails(t *testing.T) {
	policy := mustPolicy(t)
	now := time.Date(2030, 5, 10, 18, 0, 0, 0, time.UTC)

	// Window and duration are both fine; only the start is in the past.
	startTime := time.Date(2030, 5, 10, 14, 0, 0, 0, time.UTC)
	endTime := time.Date(2030, 5, 10, 15, 0, 0, 0, time.UTC)

	if err := policy.Validate(startTime, endTime, now); err == nil {
		t.Fatal("expected past start to be rejected")
	}
}

func TestNewPolicyRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		opensAt  string
		closesAt string
		maxMin   int
	}{
		{"garbage opening", "ten", "22:00", 120},
		{"garbage closing", "10:00", "late", 120},
		{"closing before opening", "22:00", "10:00", 120},
		{"zero max duration", "10:00", "22:00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPolicy(tt.opensAt, tt.closesAt, tt.maxMin); err == nil {
				t.Errorf("NewPolicy(%q, %q, %d) = nil, want error", tt.opensAt, tt.closesAt, tt.maxMin)
			}
		})
	}
}
