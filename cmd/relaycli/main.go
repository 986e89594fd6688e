package main

import (
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/wtask/relay/internal/console"
	"github.com/wtask/relay/internal/uplink"
)

func main() {
	if err := newRootCommand(&Config).Execute(); err != nil {
		console.Fatal(BinaryName, Version, err)
	}
}

func send(config Configuration, input io.Reader, report io.Writer) error {
	node := net.JoinHostPort(config.IPAddress, strconv.FormatUint(uint64(config.Port), 10))
	conn, err := net.Dial("tcp4", node)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	driver, err := uplink.NewDriver(conn, uplink.WithReport(report), uplink.WithChunkSize(config.ChunkSize))
	if err != nil {
		conn.Close()
		return err
	}
	return driver.Run(input)
}
