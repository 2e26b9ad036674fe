package sim

import (
	"sync"
	"time"
)

// Scheduler repeatedly invokes tick until the returned cancel func is called.
// Cancel must be safe to call more than once. The controller never holds its
// lock while calling Schedule or cancel, so tick may run synchronously and
// cancel may wait for an in-flight tick.
type Scheduler interface {
	Schedule(tick func()) (cancel func())
}

// SchedulerFunc adapts a function to the Scheduler interface
type SchedulerFunc func(tick func()) (cancel func())

func (f SchedulerFunc) Schedule(tick func()) func() {
	return f(tick)
}

// TickerScheduler fires tick on a time.Ticker at a fixed cadence
type TickerScheduler struct {
	Interval time.Duration
}

// NewTickerScheduler returns a scheduler with the given cadence; non-positive means ~60 per second
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &TickerScheduler{Interval: interval}
}

// Schedule starts a goroutine calling tick on every ticker fire
func (s *TickerScheduler) Schedule(tick func()) func() {
	var (
		ticker = time.NewTicker(s.Interval)
		done   = make(chan struct{})
		once   sync.Once
	)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// select picks randomly among ready cases
				select {
				case <-done:
					return
				default:
				}
				tick()
			}
		}
	}()

	return func() {
		once.Do(func() { close(done) })
	}
}
