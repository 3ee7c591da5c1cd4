// internal/club/policy.go
package club

import (
	"fmt"
	"time"

	"github.com/McNabAndy/tennisclub-reservation-api/internal/config"
)

// Policy holds the temporal booking rules: reservations must start in the
// future, fit within the duration cap, and sit inside the operating window.
type Policy struct {
	opensAt     int // minutes from midnight, inclusive
	closesAt    int // minutes from midnight, inclusive
	maxDuration time.Duration
}

// NewPolicy parses HH:MM operating bounds and a duration cap in minutes.
func NewPolicy(opensAt, closesAt string, maxDurationMin int) (Policy, error) {
	opens, err := parseMinuteOfDay(opensAt)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid opening time: %w", err)
	}
	closes, err := parseMinuteOfDay(closesAt)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid closing time: %w", err)
	}
	if closes <= opens {
		return Policy{}, fmt.Errorf("closing time %s must be after opening time %s", closesAt, opensAt)
	}
	if maxDurationMin <= 0 {
		return Policy{}, fmt.Errorf("max duration must be positive, got %d", maxDurationMin)
	}
	return Policy{
		opensAt:     opens,
		closesAt:    closes,
		maxDuration: time.Duration(maxDurationMin) * time.Minute,
	}, nil
}

// PolicyFromConfig builds the booking policy from the loaded configuration.
func PolicyFromConfig(cfg config.BookingConfig) (Policy, error) {
	return NewPolicy(cfg.OpensAt, cfg.ClosesAt, cfg.MaxDurationMin)
}

// Validate admits a time range only when all three rules hold. Any breach
// yields the same ValidationError; the bounds are inclusive, so a booking
// ending exactly at closing time or lasting exactly the cap is valid.
func (p Policy) Validate(startTime, endTime, now time.Time) error {
	if !startTime.After(now) {
		return ValidationError{Reason: "provided time range is invalid"}
	}

	duration := endTime.Sub(startTime)
	if duration <= 0 || duration > p.maxDuration {
		return ValidationError{Reason: "provided time range is invalid"}
	}

	if minuteOfDay(startTime) < p.opensAt || minuteOfDay(endTime) > p.closesAt {
		return ValidationError{Reason: "provided time range is invalid"}
	}

	return nil
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func parseMinuteOfDay(value string) (int, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}
