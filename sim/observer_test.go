package sim

import (
	"testing"

	"github.com/sheikhrachel/go-life/model"
)

func TestLatestSnapshotCoalesces(t *testing.T) {
	l := NewLatestSnapshot()
	if _, ok := l.Latest(); ok {
		t.Fatal("snapshot reported before any notification")
	}

	c := NewController(model.NewGrid(5, 5), nil, l)
	c.ToggleCell(1, 1)
	c.ToggleCell(2, 2)
	c.ToggleCell(3, 3)

	select {
	case <-l.Updated():
	default:
		t.Fatal("no update signalled")
	}
	select {
	case <-l.Updated():
		t.Fatal("updates were not coalesced")
	default:
	}

	s, ok := l.Latest()
	if !ok || s.Population() != 3 {
		t.Fatalf("latest snapshot ok=%v pop=%d", ok, s.Population())
	}
}

func TestTickerSchedulerCancelIdempotent(t *testing.T) {
	cancel := NewTickerScheduler(0).Schedule(func() {})
	cancel()
	cancel()
}
