// internal/club/availability.go
package club

import (
	"time"

	"github.com/McNabAndy/tennisclub-reservation-api/internal/db"
)

// HasConflict reports whether the candidate window overlaps any existing
// reservation. Intervals are half-open, so a booking starting exactly when
// another ends does not conflict. excludeID skips one reservation, used when
// an update is checked against itself; zero skips nothing.
func HasConflict(startTime, endTime time.Time, existing []db.Reservation, excludeID int64) bool {
	for _, reservation := range existing {
		if excludeID != 0 && reservation.ID == excludeID {
			continue
		}
		if reservation.StartTime.Before(endTime) && reservation.EndTime.After(startTime) {
			return true
		}
	}
	return false
}
