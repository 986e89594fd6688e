// Package `relaycli` implements client application of the TCP message relay.
//
// The client sends every line typed by operator to the relay server and
// stops on empty line or end of input:
//
//	go run . --ip 127.0.0.1 --port 8000
package main
