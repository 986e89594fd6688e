// Package uplink streams operator input to a relay server.
//
// The driver performs no handshake and expects no response: every chunk read
// from the input is written verbatim to the connection.
package uplink

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultChunkSize - max number of bytes taken from input by a single read.
const DefaultChunkSize = 64

// Driver - pumps input into the connection chunk by chunk.
type Driver struct {
	conn      io.WriteCloser
	report    io.Writer
	chunkSize int
}

// Option - customizes Driver.
type Option func(d *Driver) error

// WithReport - overwrites default writer (os.Stdout) for sent-bytes reports.
func WithReport(w io.Writer) Option {
	return func(d *Driver) error {
		if w == nil {
			return errors.New("uplink.WithReport: writer is nil")
		}
		d.report = w
		return nil
	}
}

// WithChunkSize - overwrites default input chunk size.
func WithChunkSize(size int) Option {
	return func(d *Driver) error {
		if size < 2 {
			return fmt.Errorf("uplink.WithChunkSize: size (%d) must be greater than 1", size)
		}
		d.chunkSize = size
		return nil
	}
}

// NewDriver - builds driver which owns conn and closes it when Run is done.
func NewDriver(conn io.WriteCloser, options ...Option) (*Driver, error) {
	if conn == nil {
		return nil, errors.New("uplink.NewDriver: connection is nil")
	}
	d := &Driver{
		conn:      conn,
		report:    os.Stdout,
		chunkSize: DefaultChunkSize,
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Run - sends input until it is exhausted or a single byte (empty line) is read.
// The connection is closed in any case.
func (d *Driver) Run(input io.Reader) (err error) {
	defer func() {
		if cerr := d.conn.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close: %w", cerr)
		}
	}()

	buf := make([]byte, d.chunkSize)
	for {
		n, rerr := input.Read(buf)
		if n > 1 {
			if err := d.send(buf[:n]); err != nil {
				return err
			}
		}
		switch {
		case rerr != nil && !errors.Is(rerr, io.EOF):
			return fmt.Errorf("read: %w", rerr)
		case rerr != nil, n <= 1:
			return nil
		}
	}
}

func (d *Driver) send(chunk []byte) error {
	n, err := d.conn.Write(chunk)
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if n != len(chunk) {
		return fmt.Errorf("write: %w", io.ErrShortWrite)
	}
	fmt.Fprintf(d.report, "Just sent %d bytes.\n", n)
	return nil
}
