package timedcache

import (
	"sync"
	"time"
)

//
// Value is a thread-safe memo that holds onto the result of a computation for a fixed amount of
// time. Once the held result is older than the configured lifetime, the next call to Get will
// recompute it.
//
type Value[T any] struct {
	mu       *sync.Mutex
	lifetime time.Duration
	clock    func() time.Time
	value    T
	storedAt time.Time
	stored   bool
}

//
// New instantiates a new timed cache that holds values for the specified lifetime. A nil clock
// defaults to time.Now.
//
func New[T any](lifetime time.Duration, clock func() time.Time) *Value[T] {
	if clock == nil {
		clock = time.Now
	}

	return &Value[T]{
		mu:       &sync.Mutex{},
		lifetime: lifetime,
		clock:    clock,
	}
}

//
// Get returns the held value if it is still fresh. Otherwise, the provided function is called and
// its result is held – but only if the keep function (when provided) approves of it.
//
func (o *Value[T]) Get(compute func() T, keep func(T) bool) T {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.clock()

	if o.stored && now.Sub(o.storedAt) < o.lifetime {
		return o.value
	}

	value := compute()

	if keep == nil || keep(value) {
		o.value = value
		o.storedAt = now
		o.stored = true
	}

	return value
}
