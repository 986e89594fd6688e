package relay

import "sync"

// Counter - monotonically increasing integer shared by concurrent callers.
type Counter struct {
	mu    sync.Mutex
	value int
}

// NewCounter - builds counter which hands out initial value first.
func NewCounter(initial int) *Counter {
	return &Counter{value: initial}
}

// Next - returns current value and advances the counter by one.
func (c *Counter) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.value
	c.value++
	return v
}

// Peek - returns the value the next call of Next will hand out.
func (c *Counter) Peek() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Counters - state shared by the acceptor and all connection handlers of one Server.
type Counters struct {
	// ClientIDs - allocates client identifiers, starts at 1
	ClientIDs *Counter
	// Messages - allocates message sequence numbers, starts at 0
	Messages *Counter
}

// NewCounters - builds fresh counters with default initial values.
func NewCounters() Counters {
	return Counters{
		ClientIDs: NewCounter(1),
		Messages:  NewCounter(0),
	}
}
