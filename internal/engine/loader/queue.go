package loader

import "sync"

// Queue collects completion callbacks posted from load goroutines so that
// the frame loop can run them on its own thread.
type Queue struct {
	mu    sync.Mutex
	funcs []func()
}

// NewQueue creates an empty completion queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Post schedules fn to run on the next Dispatch. Safe for concurrent use.
func (q *Queue) Post(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.funcs = append(q.funcs, fn)
	q.mu.Unlock()
}

// Dispatch runs every callback posted before the call, in posting order,
// and returns how many ran. Callbacks posted while dispatching wait for
// the next call.
func (q *Queue) Dispatch() int {
	q.mu.Lock()
	funcs := q.funcs
	q.funcs = nil
	q.mu.Unlock()

	for _, fn := range funcs {
		fn()
	}
	return len(funcs)
}

// Pending returns the number of callbacks waiting for Dispatch.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.funcs)
}
