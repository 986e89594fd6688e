package relay

import "errors"

var (
	// ErrServerClosed - returned by Serve after Shutdown was called.
	ErrServerClosed = errors.New("relay.Server: closed")

	// ErrNilListener - returned by Serve when there is nothing to accept from.
	ErrNilListener = errors.New("relay.Server: net listener is nil")
)
