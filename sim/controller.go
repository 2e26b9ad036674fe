package sim

import (
	"sync"

	"github.com/sheikhrachel/go-life/model"
)

// Controller owns the grid, the generation counter and the run state, and is
// the single entry point for user commands and scheduled ticks. All methods
// are serialized by one mutex, so a ticker goroutine and an input loop may
// share a Controller.
type Controller struct {
	mu         sync.Mutex
	grid       *model.Grid
	generation int
	state      model.RunState

	// epoch changes every time a run starts or stops; a scheduled tick only
	// counts if it still carries the current one.
	epoch     uint64
	cancel    func()
	scheduler Scheduler

	observers []Observer
	failures  int
}

// NewController wraps grid in a stopped controller at generation 0. A nil
// scheduler leaves ticking to the host, which then calls Tick itself.
func NewController(grid *model.Grid, scheduler Scheduler, observers ...Observer) *Controller {
	return &Controller{
		grid:      grid,
		scheduler: scheduler,
		observers: observers,
		state:     model.Stopped,
	}
}

// Start puts the controller into Running and schedules ticks. Starting a
// running controller does nothing. The scheduler is called without the lock
// held, so it may fire the first tick right away.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.state == model.Running {
		c.mu.Unlock()
		return
	}
	c.state = model.Running
	c.epoch++
	epoch := c.epoch
	c.emit()
	c.mu.Unlock()

	if c.scheduler == nil {
		return
	}
	cancel := c.scheduler.Schedule(func() { c.tick(epoch) })

	c.mu.Lock()
	if c.epoch != epoch {
		// stopped while scheduling
		c.mu.Unlock()
		cancel()
		return
	}
	c.cancel = cancel
	c.mu.Unlock()
}

// Stop puts the controller into Stopped. Once Stop returns no scheduled tick
// advances the grid, even one already waiting on the lock.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.state == model.Stopped {
		c.mu.Unlock()
		return
	}
	cancel := c.halt()
	c.emit()
	c.mu.Unlock()

	cancelRun(cancel)
}

// halt must be called with mu held. The returned cancel func, if any, is
// for the caller to invoke after unlocking.
func (c *Controller) halt() func() {
	c.state = model.Stopped
	c.epoch++
	cancel := c.cancel
	c.cancel = nil
	return cancel
}

func cancelRun(cancel func()) {
	if cancel != nil {
		cancel()
	}
}

// Tick advances one generation if Running and is a no-op otherwise. It is
// the entry point for hosts that drive the cadence themselves.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advance(c.epoch)
}

func (c *Controller) tick(epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advance(epoch)
}

// advance must be called with mu held
func (c *Controller) advance(epoch uint64) {
	if c.state != model.Running || epoch != c.epoch {
		return
	}
	c.grid.Advance()
	c.generation++
	c.emit()
}

// Step advances exactly one generation while Stopped. It reports false and
// does nothing while Running.
func (c *Controller) Step() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == model.Running {
		return false
	}
	c.grid.Advance()
	c.generation++
	c.emit()
	return true
}

// ToggleCell flips one cell while Stopped. While Running the edit is ignored
// and false is returned. Coordinates must lie inside the grid.
func (c *Controller) ToggleCell(row, col int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == model.Running {
		return false
	}
	c.grid.Toggle(row, col)
	c.emit()
	return true
}

// Clear stops the run, kills every cell and resets the generation to 0
func (c *Controller) Clear() {
	c.reset(func(g *model.Grid) { g.Clear() })
}

// Randomize stops the run, refills the grid from src and resets the generation to 0
func (c *Controller) Randomize(src model.Source) {
	c.reset(func(g *model.Grid) { g.Randomize(src) })
}

// reset halts any run, refills the grid and zeroes the generation
func (c *Controller) reset(fill func(g *model.Grid)) {
	c.mu.Lock()
	cancel := c.halt()
	c.generation = 0
	fill(c.grid)
	c.emit()
	c.mu.Unlock()

	cancelRun(cancel)
}

// Snapshot returns a copy of the current grid, generation and run state
func (c *Controller) Snapshot() model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.Take(c.grid, c.generation, c.state)
}

// Generation returns the number of generations since the last reset
func (c *Controller) Generation() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// State returns the current run state
func (c *Controller) State() model.RunState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ObserverFailures returns how many observer notifications panicked
func (c *Controller) ObserverFailures() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failures
}

// emit must be called with mu held
func (c *Controller) emit() {
	if len(c.observers) == 0 {
		return
	}
	// each observer gets its own copy of the cells
	for _, o := range c.observers {
		c.notify(o, model.Take(c.grid, c.generation, c.state))
	}
}

func (c *Controller) notify(o Observer, s model.Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			c.failures++
		}
	}()
	o.Notify(s)
}
