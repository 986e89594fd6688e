package relay

import (
	"bytes"
	"log"
	"net"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// syncBuffer - journal sink which is safe to inspect while handlers write into it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) lines() []string {
	s := strings.TrimSuffix(b.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func (b *syncBuffer) count(prefix string) int {
	n := 0
	for _, l := range b.lines() {
		if strings.HasPrefix(l, prefix) {
			n++
		}
	}
	return n
}

type record struct {
	seq, clientID int
	text          string
}

var msgRecord = regexp.MustCompile(`^Msg #(\d+); ClientID (\d+): (.*)$`)

func (b *syncBuffer) messages() []record {
	var records []record
	for _, l := range b.lines() {
		m := msgRecord.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		seq, _ := strconv.Atoi(m[1])
		id, _ := strconv.Atoi(m[2])
		records = append(records, record{seq, id, m[3]})
	}
	return records
}

const waitFor, tick = 2 * time.Second, 5 * time.Millisecond

// startServer - serves loopback listener with journal attached to returned buffer.
func startServer(test *testing.T, options ...Option) (*Server, string, *syncBuffer) {
	test.Helper()
	journal, diagnostics := &syncBuffer{}, &syncBuffer{}
	options = append([]Option{
		WithJournal(journal),
		WithLogger(log.New(diagnostics, "relay-test ", log.Lmicroseconds)),
	}, options...)
	s, err := NewServer(options...)
	require.NoError(test, err)

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(test, err)

	served := make(chan error, 1)
	go func() { served <- s.Serve(listener) }()
	test.Cleanup(func() {
		s.Shutdown(time.Second)
		require.ErrorIs(test, <-served, ErrServerClosed)
		test.Log("diagnostics:\n" + diagnostics.String())
	})
	return s, listener.Addr().String(), journal
}

func dial(test *testing.T, addr string) net.Conn {
	test.Helper()
	conn, err := net.Dial("tcp4", addr)
	require.NoError(test, err)
	test.Cleanup(func() { conn.Close() })
	return conn
}
