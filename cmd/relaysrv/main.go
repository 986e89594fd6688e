package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/wtask/relay/internal/console"
	"github.com/wtask/relay/internal/relay"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(&Config).ExecuteContext(ctx); err != nil {
		stop()
		console.Fatal(BinaryName, Version, err)
	}
}

func serve(ctx context.Context, config Configuration) error {
	logger := stdlog.New(os.Stderr, BinaryName+":"+Version+" ", stdlog.Ldate|stdlog.Ltime)
	logger.Printf("Started with config: %+v", config)

	node := net.JoinHostPort(config.IPAddress, strconv.FormatUint(uint64(config.Port), 10))
	listener, err := net.Listen("tcp4", node)
	if err != nil {
		return fmt.Errorf("unable to listen TCP: %w", err)
	}
	logger.Println("Listen", node)

	server, err := relay.NewServer(
		relay.WithLogger(logger),
		relay.WithChunkSize(config.ChunkSize),
		relay.WithIdleTimeout(config.IdleTimeout),
		relay.WithMaxClients(config.MaxClients),
	)
	if err != nil {
		listener.Close()
		return fmt.Errorf("can't start relay server: %w", err)
	}

	served := make(chan error, 1)
	go func() { served <- server.Serve(listener) }()
	console.Banner("Relay server is listening on %s, press Ctrl-C to stop...", listener.Addr())

	select {
	case <-ctx.Done():
		logger.Println("Got stop signal")
		logger.Println("Relay server stopped in", server.Shutdown(config.ShutdownTimeout))
		<-served
		return nil
	case err := <-served:
		server.Shutdown(config.ShutdownTimeout)
		if errors.Is(err, relay.ErrServerClosed) {
			return nil
		}
		return err
	}
}
