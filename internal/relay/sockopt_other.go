//go:build !unix

package relay

import (
	"errors"
	"net"
)

func receiveBufferSize(net.Listener) (int, error) {
	return 0, errors.ErrUnsupported
}
