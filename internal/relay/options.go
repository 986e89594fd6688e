package relay

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// DefaultChunkSize - max number of bytes taken from a connection by a single read.
const DefaultChunkSize = 64

// Option - customizes Server built by NewServer.
type Option func(s *Server) error

func setup(s *Server, options ...Option) error {
	if s == nil {
		return nil
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(s); err != nil {
			return err
		}
	}
	return nil
}

// WithJournal - overwrites default record sink (os.Stdout).
func WithJournal(out io.Writer) Option {
	return func(s *Server) error {
		if out == nil {
			return errors.New("relay.WithJournal: writer is nil")
		}
		s.out = out
		return nil
	}
}

// WithLogger - attach logger for diagnostics. Server is silent without it.
func WithLogger(logger Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			return errors.New("relay.WithLogger: logger is nil")
		}
		s.logger = logger
		return nil
	}
}

// WithCounters - share existing counters instead of fresh ones.
func WithCounters(counters Counters) Option {
	return func(s *Server) error {
		if counters.ClientIDs == nil || counters.Messages == nil {
			return errors.New("relay.WithCounters: both counters are required")
		}
		s.counters = counters
		return nil
	}
}

// WithChunkSize - overwrites default read chunk size of connections.
func WithChunkSize(size int) Option {
	return func(s *Server) error {
		if size <= 0 {
			return fmt.Errorf("relay.WithChunkSize: invalid size (%d)", size)
		}
		s.chunkSize = size
		return nil
	}
}

// WithIdleTimeout - disconnects clients which are silent longer than timeout.
// Zero timeout (default) keeps silent clients forever.
func WithIdleTimeout(timeout time.Duration) Option {
	return func(s *Server) error {
		if timeout < 0 {
			return fmt.Errorf("relay.WithIdleTimeout: invalid timeout (%v)", timeout)
		}
		s.idleTimeout = timeout
		return nil
	}
}

// WithMaxClients - limits the number of simultaneously served connections.
// When the limit is reached the acceptor stops accepting until some client parts.
// Zero (default) means unlimited.
func WithMaxClients(n int) Option {
	return func(s *Server) error {
		if n < 0 {
			return fmt.Errorf("relay.WithMaxClients: invalid limit (%d)", n)
		}
		s.maxClients = n
		return nil
	}
}
