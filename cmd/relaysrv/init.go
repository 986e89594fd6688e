package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/cobra"

	"github.com/wtask/relay/internal/console"
	"github.com/wtask/relay/internal/relay"
	"github.com/wtask/relay/pkg/semver"
)

type (
	// Configuration - server configuration
	Configuration struct {
		// IPAddress - bind the address, empty means all interfaces
		IPAddress string
		// Port - bind the port
		Port uint
		// ChunkSize - max number of bytes taken from a client by single read
		ChunkSize int
		// IdleTimeout - idle period before client is disconnected, zero disables the timeout
		IdleTimeout time.Duration
		// MaxClients - max number of simultaneously served clients, zero means unlimited
		MaxClients int
		// ShutdownTimeout - how long to wait for clients to be disconnected on stop
		ShutdownTimeout time.Duration
	}
)

var (
	// Config - current configuration of the server
	Config = Configuration{
		IPAddress:       "",
		Port:            8000,
		ChunkSize:       relay.DefaultChunkSize,
		IdleTimeout:     0,
		MaxClients:      0,
		ShutdownTimeout: 5 * time.Second,
	}

	// BinaryName - name of run application binary
	BinaryName = strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))

	// Version - app version fingerprint
	Version = semver.V{Major: 1, Minor: 1}.String()
)

// Validate - checks configuration is usable to start the server.
func (c Configuration) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.IPAddress, is.IPv4),
		validation.Field(&c.Port, validation.Required, validation.Max(uint(65535))),
		validation.Field(&c.ChunkSize, validation.Required, validation.Min(1)),
		validation.Field(&c.IdleTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.MaxClients, validation.Min(0)),
		validation.Field(&c.ShutdownTimeout, validation.Required, validation.Min(time.Duration(0))),
	)
}

func newRootCommand(config *Configuration) *cobra.Command {
	command := &cobra.Command{
		Use:     BinaryName,
		Short:   "Launch TCP message relay server",
		Long:    "Launch TCP message relay server.\nEvery received chunk is printed to stdout tagged with sequence number and client ID.",
		Version: Version,
		Args:    cobra.NoArgs,
		// errors are printed by main
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PreRunE: func(*cobra.Command, []string) error {
			return config.Validate()
		},
		RunE: func(command *cobra.Command, _ []string) error {
			return serve(command.Context(), *config)
		},
	}
	command.SetErr(console.NewErrWriter())

	flags := command.Flags()
	flags.StringVar(&config.IPAddress, "ip", config.IPAddress, "Listen IPv4 address, all interfaces if empty")
	flags.UintVar(&config.Port, "port", config.Port, "Listen port")
	flags.IntVar(&config.ChunkSize, "chunk-size", config.ChunkSize, "Max number of bytes taken from a client by single read")
	flags.DurationVar(&config.IdleTimeout, "idle-timeout", config.IdleTimeout, "Disconnect clients silent for this long, 0 keeps them forever")
	flags.IntVar(&config.MaxClients, "max-clients", config.MaxClients, "Max number of simultaneously served clients, 0 is unlimited")
	flags.DurationVar(&config.ShutdownTimeout, "shutdown-timeout", config.ShutdownTimeout, "How long to wait for clients on stop")

	return command
}
