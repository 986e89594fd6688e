package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/wtask/relay/pkg/background"
)

// Server - accepts connections and logs every chunk received from them.
type Server struct {
	counters    Counters
	out         io.Writer
	journal     *Journal
	logger      Logger
	chunkSize   int
	idleTimeout time.Duration
	maxClients  int
	slots       *semaphore.Weighted

	scope   *background.Scope
	clients *registry

	mu        sync.Mutex
	closed    bool
	listeners map[net.Listener]struct{}
}

// NewServer - creates new relay server which is ready to serve several network listeners.
func NewServer(options ...Option) (*Server, error) {
	scope, stop := background.NewScope()
	s := &Server{
		counters:  NewCounters(),
		out:       os.Stdout,
		chunkSize: DefaultChunkSize,
		scope:     scope,
		clients:   newRegistry(),
		listeners: make(map[net.Listener]struct{}),
	}
	if err := setup(s, options...); err != nil {
		stop()
		return nil, err
	}
	s.journal = NewJournal(s.out, s.counters.Messages)
	if s.maxClients > 0 {
		s.slots = semaphore.NewWeighted(int64(s.maxClients))
	}
	return s, nil
}

// Counters - returns counters the server allocates identifiers from.
func (s *Server) Counters() Counters {
	return s.counters
}

// Serve - accepts connections from listener until Shutdown is called
// and launches a detached handler for each of them.
// Serve always returns non-nil error; ErrServerClosed after Shutdown.
func (s *Server) Serve(listener net.Listener) error {
	if listener == nil {
		return ErrNilListener
	}
	if !s.track(listener) {
		return ErrServerClosed
	}
	defer s.untrack(listener)

	if size, err := receiveBufferSize(listener); err == nil {
		logInfo(s.logger, "Serve", formatAddress(listener.Addr()), "receive buffer", size, "bytes")
	} else {
		logInfo(s.logger, "Serve", formatAddress(listener.Addr()))
	}

	ctx := s.scope.Context()
	var delay time.Duration
	for {
		if s.slots != nil {
			if err := s.slots.Acquire(ctx, 1); err != nil {
				return ErrServerClosed
			}
		}
		conn, err := listener.Accept()
		if err != nil {
			s.release()
			if ctx.Err() != nil {
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				return fmt.Errorf("relay.Server: accept: %w", err)
			}
			delay = backoff(delay)
			logError(s.logger, "Accept:", err, "retrying in", delay)
			time.Sleep(delay)
			continue
		}
		delay = 0

		clientID := s.counters.ClientIDs.Next()
		h := &handler{
			clientID:    clientID,
			session:     uuid.New(),
			conn:        conn,
			chunkSize:   s.chunkSize,
			idleTimeout: s.idleTimeout,
			journal:     s.journal,
			logger:      s.logger,
		}
		if !s.clients.add(conn, h) {
			conn.Close()
			s.release()
			return ErrServerClosed
		}
		if err := s.journal.Joined(clientID, socketFD(conn)); err != nil {
			logError(s.logger, "client", clientID, "journal:", err)
		}
		logInfo(s.logger, "Client", clientID, "session", h.session, "joined from", formatAddress(conn.RemoteAddr()))

		s.scope.Go(func(ctx context.Context) {
			defer s.release()
			defer s.clients.delete(conn)
			h.run(ctx)
		})
	}
}

// Shutdown - stops accepting, disconnects all clients and waits for handlers not longer than timeout.
// Returns duration of time spent for shutdown.
func (s *Server) Shutdown(timeout time.Duration) time.Duration {
	from := time.Now()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0
	}
	s.closed = true
	s.scope.Signal()
	for l := range s.listeners {
		l.Close()
	}
	s.mu.Unlock()

	s.clients.close()
	if !s.scope.WaitTimeout(timeout) {
		logError(s.logger, "Shutdown: timeout expired,", s.clients.len(), "client(s) still connected")
	}
	return time.Since(from)
}

// track - registers listener as scope member, so Shutdown waits for its acceptor.
func (s *Server) track(listener net.Listener) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.listeners[listener] = struct{}{}
	s.scope.Add(1)
	return true
}

func (s *Server) untrack(listener net.Listener) {
	s.mu.Lock()
	delete(s.listeners, listener)
	s.mu.Unlock()
	s.scope.Done()
}

func (s *Server) release() {
	if s.slots != nil {
		s.slots.Release(1)
	}
}

func backoff(delay time.Duration) time.Duration {
	if delay == 0 {
		return 5 * time.Millisecond
	}
	if delay *= 2; delay > time.Second {
		return time.Second
	}
	return delay
}

// formatAddress - formats specified network address for logging purposes.
func formatAddress(a net.Addr) string {
	if a == nil {
		return "unknown"
	}
	return fmt.Sprintf("%s %s", a.Network(), a.String())
}
