// internal/club/errors.go
package club

import "errors"

// Sentinel errors for the domain taxonomy. The HTTP layer maps these to
// status codes; the services never retry on them.
var (
	ErrCourtNotFound       = errors.New("court not found")
	ErrSurfaceTypeNotFound = errors.New("surface type not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrCourtNumberExists   = errors.New("court number already exists")
)

// ValidationError covers both booking policy violations and scheduling
// conflicts. Callers can resubmit with different times.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}
