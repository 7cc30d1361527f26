package core

// DeferredQueue holds actions that must run after the next render, such as
// focusing an editor that does not exist until the render happens.
// The renderer drains it once per render cycle.
type DeferredQueue struct {
	pending []func()
}

// Schedule queues fn for the next drain.
func (q *DeferredQueue) Schedule(fn func()) {
	if fn == nil {
		return
	}
	q.pending = append(q.pending, fn)
}

// Len returns the number of queued actions.
func (q *DeferredQueue) Len() int {
	return len(q.pending)
}

// Drain runs and removes every queued action and returns how many ran.
// Actions scheduled while draining wait for the next drain.
func (q *DeferredQueue) Drain() int {
	batch := q.pending
	q.pending = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
