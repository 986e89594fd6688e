package relay

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/google/uuid"
)

// handler - owns single accepted connection for its entire life.
type handler struct {
	clientID int
	// session - distinguishes clients in diagnostics across server restarts,
	// since client identifiers start over in every process
	session     uuid.UUID
	conn        net.Conn
	chunkSize   int
	idleTimeout time.Duration
	journal     *Journal
	logger      Logger
}

// run - reads the connection until it is exhausted, then closes it.
// Nothing is reported back to the acceptor.
func (h *handler) run(ctx context.Context) {
	reason := h.consume(ctx)

	if err := h.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		logError(h.logger, "client", h.clientID, "session", h.session, "close:", err)
	}
	if err := h.journal.Parted(h.clientID); err != nil {
		logError(h.logger, "client", h.clientID, "session", h.session, "journal:", err)
	}
	logInfo(h.logger, "Client", h.clientID, "session", h.session, "has", reason)
}

func (h *handler) consume(ctx context.Context) partReason {
	buf := make([]byte, h.chunkSize)
	for {
		if h.idleTimeout > 0 {
			h.conn.SetReadDeadline(time.Now().Add(h.idleTimeout))
		}
		n, err := h.conn.Read(buf)
		if n > 0 {
			if _, jerr := h.journal.Message(h.clientID, buf[:n]); jerr != nil {
				logError(h.logger, "client", h.clientID, "session", h.session, "journal:", jerr)
			}
		}
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			return partLeft
		}
		if ctx.Err() != nil {
			// connection was closed by shutdown
			return partShutdown
		}
		netErr, ok := err.(net.Error)
		if ok && netErr.Timeout() {
			return partTimeout
		}
		logError(h.logger, "client", h.clientID, "session", h.session, "read:", err)
		return partFailed
	}
}
