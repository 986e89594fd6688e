package main

import (
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/cobra"

	"github.com/wtask/relay/internal/console"
	"github.com/wtask/relay/internal/uplink"
	"github.com/wtask/relay/pkg/semver"
)

type (
	// Configuration - client configuration
	Configuration struct {
		// IPAddress - relay server address
		IPAddress string
		// Port - relay server port
		Port uint
		// ChunkSize - max number of bytes taken from input by single read
		ChunkSize int
	}
)

var (
	// Config - current configuration of the client
	Config = Configuration{
		IPAddress: "127.0.0.1",
		Port:      8000,
		ChunkSize: uplink.DefaultChunkSize,
	}

	// BinaryName - name of run application binary
	BinaryName = strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))

	// Version - app version fingerprint
	Version = semver.V{Major: 1, Minor: 1}.String()
)

// Validate - checks configuration is usable to connect.
func (c Configuration) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.IPAddress, validation.Required, is.IPv4),
		validation.Field(&c.Port, validation.Required, validation.Max(uint(65535))),
		validation.Field(&c.ChunkSize, validation.Required, validation.Min(2)),
	)
}

func newRootCommand(config *Configuration) *cobra.Command {
	command := &cobra.Command{
		Use:     BinaryName,
		Short:   "Send operator input to TCP message relay server",
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
			return send(*config, command.InOrStdin(), command.OutOrStdout())
		},
	}
	command.SetErr(console.NewErrWriter())

	flags := command.Flags()
	flags.StringVar(&config.IPAddress, "ip", config.IPAddress, "Relay server IPv4 address")
	flags.UintVar(&config.Port, "port", config.Port, "Relay server port")
	flags.IntVar(&config.ChunkSize, "chunk-size", config.ChunkSize, "Max number of bytes taken from input by single read")

	return command
}
