package sim

import (
	"sync"

	"github.com/sheikhrachel/go-life/model"
)

// Observer receives a snapshot after every state change. Observers must not
// call back into the controller from Notify.
type Observer interface {
	Notify(s model.Snapshot)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(s model.Snapshot)

func (f ObserverFunc) Notify(s model.Snapshot) {
	f(s)
}

// LatestSnapshot keeps only the newest snapshot and signals on Updated when
// one arrives. Notify never blocks, so a slow display just skips frames.
type LatestSnapshot struct {
	mu      sync.Mutex
	latest  model.Snapshot
	ok      bool
	updated chan struct{}
}

func NewLatestSnapshot() *LatestSnapshot {
	return &LatestSnapshot{updated: make(chan struct{}, 1)}
}

func (l *LatestSnapshot) Notify(s model.Snapshot) {
	l.mu.Lock()
	l.latest, l.ok = s, true
	l.mu.Unlock()

	select {
	case l.updated <- struct{}{}:
	default:
	}
}

// Updated is signalled (coalesced) whenever a new snapshot is stored
func (l *LatestSnapshot) Updated() <-chan struct{} {
	return l.updated
}

// Latest returns the newest snapshot and whether one has arrived yet
func (l *LatestSnapshot) Latest() (model.Snapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.latest, l.ok
}
