package relay

// partReason - describes why a handler stopped reading its connection.
type partReason int

const (
	_ partReason = iota
	// partLeft - peer closed the stream
	partLeft
	// partTimeout - no data within idle timeout
	partTimeout
	// partFailed - read error
	partFailed
	// partShutdown - server is stopping
	partShutdown
)

func (r partReason) String() string {
	switch r {
	case partLeft:
		return "left"
	case partTimeout:
		return "timed out"
	case partFailed:
		return "failed"
	case partShutdown:
		return "been disconnected on shutdown"
	default:
		return "unknown part reason"
	}
}
