package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedule_OnlyLastFires(t *testing.T) {
	t.Parallel()

	s := New()

	var mu sync.Mutex
	var fired []int
	for i := 0; i < 10; i++ {
		i := i
		s.Schedule(50*time.Millisecond, func() {
			mu.Lock()
			fired = append(fired, i)
			mu.Unlock()
		})
	}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(fired) > 0
	}, time.Second, 5*time.Millisecond)

	// leave room for any superseded timer to misfire
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{9}, fired)
	assert.False(t, s.Pending())
}

func TestSchedule_Reschedules(t *testing.T) {
	t.Parallel()

	s := New()
	var count atomic.Int32

	s.Schedule(20*time.Millisecond, func() { count.Add(1) })
	assert.Eventually(t, func() bool { return count.Load() == 1 }, time.Second, 5*time.Millisecond)

	s.Schedule(20*time.Millisecond, func() { count.Add(1) })
	assert.Eventually(t, func() bool { return count.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestCancelPending(t *testing.T) {
	t.Parallel()

	s := New()
	var count atomic.Int32

	assert.False(t, s.CancelPending())

	s.Schedule(30*time.Millisecond, func() { count.Add(1) })
	assert.True(t, s.Pending())
	assert.True(t, s.CancelPending())
	assert.False(t, s.Pending())

	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, count.Load())
}

func TestOnSupersede(t *testing.T) {
	t.Parallel()

	s := New()
	var superseded atomic.Int32
	s.OnSupersede = func() { superseded.Add(1) }

	s.Schedule(time.Hour, func() {})
	s.Schedule(time.Hour, func() {})
	s.Schedule(time.Hour, func() {})
	s.CancelPending()

	assert.Equal(t, int32(3), superseded.Load())
}
