// Package history implements linear undo/redo over snapshots of a value.
//
// The controller never holds the live value. Callers pass it in, and Undo
// and Redo hand back the value to restore. Snapshots are deep copies made
// with the value's Clone method, so nothing in the past or future stacks
// aliases live state.
package history

// Snapshot is implemented by values that can be deep-copied.
type Snapshot[S any] interface {
	Clone() S
}

// Controller keeps the past and future stacks, most recent entry last.
// It is not safe for concurrent use.
type Controller[S Snapshot[S]] struct {
	past   []S
	future []S
	limit  int
}

// Option configures a Controller.
type Option func(*config)

type config struct {
	limit int
}

// WithLimit caps the number of undo steps kept; the oldest are dropped
// first. Zero or negative means unbounded.
func WithLimit(n int) Option {
	return func(c *config) { c.limit = n }
}

// New returns an empty controller.
func New[S Snapshot[S]](opts ...Option) *Controller[S] {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Controller[S]{limit: cfg.limit}
}

// Snapshot records a copy of live as the newest undo step and discards all
// redo steps. Call it before applying a mutation.
func (c *Controller[S]) Snapshot(live S) {
	c.past = append(c.past, live.Clone())
	if c.limit > 0 && len(c.past) > c.limit {
		c.past = append(c.past[:0], c.past[len(c.past)-c.limit:]...)
	}
	c.future = nil
}

// Undo pops the newest undo step and returns it for the caller to restore,
// pushing a copy of live onto the redo stack. With nothing to undo it
// returns live and false.
func (c *Controller[S]) Undo(live S) (S, bool) {
	if len(c.past) == 0 {
		return live, false
	}
	prev := c.past[len(c.past)-1]
	c.past = c.past[:len(c.past)-1]
	c.future = append(c.future, live.Clone())
	return prev, true
}

// Redo is the mirror of Undo.
func (c *Controller[S]) Redo(live S) (S, bool) {
	if len(c.future) == 0 {
		return live, false
	}
	next := c.future[len(c.future)-1]
	c.future = c.future[:len(c.future)-1]
	c.past = append(c.past, live.Clone())
	return next, true
}

func (c *Controller[S]) CanUndo() bool { return len(c.past) > 0 }
func (c *Controller[S]) CanRedo() bool { return len(c.future) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (c *Controller[S]) Depth() (undo, redo int) {
	return len(c.past), len(c.future)
}
