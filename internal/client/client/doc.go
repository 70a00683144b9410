// Package client is the CLI's view of the wotracker HTTP API. It keeps the
// session token between calls and maps HTTP failures onto the errors in
// errors.go.
package client
