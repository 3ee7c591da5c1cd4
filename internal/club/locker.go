// internal/club/locker.go
package club

import "sync"

// courtLocker serializes the check-then-write booking sequence per court
// number. Two requests for different courts proceed concurrently; two for
// the same court queue, so at most one of a conflicting pair is admitted.
type courtLocker struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newCourtLocker() *courtLocker {
	return &courtLocker{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the mutex for the given court number and returns its
// unlock function.
func (l *courtLocker) Lock(courtNumber int64) func() {
	l.mu.Lock()
	lock, ok := l.locks[courtNumber]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[courtNumber] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
