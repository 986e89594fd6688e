package relay

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Journal - the sink for relay records.
// Every record is written with a single Write call while the journal lock is held,
// so records never interleave and message records appear in sequence order.
type Journal struct {
	mu  sync.Mutex
	out io.Writer
	seq *Counter
}

// NewJournal - builds journal over out which takes message sequence numbers from seq.
func NewJournal(out io.Writer, seq *Counter) *Journal {
	return &Journal{out: out, seq: seq}
}

// Joined - records accepted connection.
func (j *Journal) Joined(clientID, fd int) error {
	return j.printf("New client created! ID %d on socket FD %d\n", clientID, fd)
}

// Message - allocates the next sequence number for payload and records it.
// The sequence number is consumed even if writing fails.
func (j *Journal) Message(clientID int, payload []byte) (seq int, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	seq = j.seq.Next()
	record := make([]byte, 0, len(payload)+32)
	record = fmt.Appendf(record, "Msg #%d; ClientID %d: ", seq, clientID)
	record = append(record, payload...)
	if !bytes.HasSuffix(payload, []byte{'\n'}) {
		record = append(record, '\n')
	}
	_, err = j.out.Write(record)
	return seq, err
}

// Parted - records handler termination.
func (j *Journal) Parted(clientID int) error {
	return j.printf("Ending thread for client %d\n", clientID)
}

func (j *Journal) printf(format string, a ...interface{}) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	_, err := fmt.Fprintf(j.out, format, a...)
	return err
}
