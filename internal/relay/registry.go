package relay

import (
	"net"
	"sync"
)

// registry - keeps connections of running handlers to drop them on shutdown.
type registry struct {
	mu     sync.Mutex
	closed bool
	list   map[net.Conn]*handler
}

func newRegistry() *registry {
	return &registry{
		list: make(map[net.Conn]*handler),
	}
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.list)
}

// add - returns false when registry is closed already or conn is kept.
func (r *registry) add(conn net.Conn, h *handler) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	if _, ok := r.list[conn]; ok {
		return false
	}
	r.list[conn] = h
	return true
}

func (r *registry) delete(conn net.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.list, conn)
}

// close - rejects further additions and closes every kept connection
// to unblock pending reads. Handlers still remove their entries on exit.
func (r *registry) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for conn := range r.list {
		conn.Close()
	}
}
