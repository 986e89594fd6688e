// Package `relaysrv` implements server application of the TCP message relay.
//
// Every chunk received from any client is printed to stdout as
//
//	Msg #<seq>; ClientID <id>: <text>
//
// Diagnostics are written to stderr.
//
// Quickly launch server with command:
//
//	go run . --port 8000
package main
