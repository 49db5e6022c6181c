package timedcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (o *fakeClock) Now() time.Time {
	return o.now
}

func TestGetHoldsValueForLifetime(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	cache := New[int](10*time.Second, clock.Now)
	calls := 0
	compute := func() int {
		calls++
		return calls
	}

	assert.Equal(t, 1, cache.Get(compute, nil))

	clock.now = clock.now.Add(9 * time.Second)
	assert.Equal(t, 1, cache.Get(compute, nil))

	clock.now = clock.now.Add(time.Second)
	assert.Equal(t, 2, cache.Get(compute, nil))
	assert.Equal(t, 2, calls)
}

func TestGetDoesNotHoldRejectedValues(t *testing.T) {
	cache := New[int](time.Minute, nil)
	calls := 0
	compute := func() int {
		calls++
		return calls
	}
	keepEven := func(v int) bool { return v%2 == 0 }

	assert.Equal(t, 1, cache.Get(compute, keepEven))
	assert.Equal(t, 2, cache.Get(compute, keepEven))
	assert.Equal(t, 2, cache.Get(compute, keepEven))
	assert.Equal(t, 2, calls)
}
