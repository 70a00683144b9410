// Package cli provides the interactive wotracker command-line client.
//
// It wires configuration, the HTTP API client and a REPL. The session token
// lives only in memory and is dropped on logout or exit.
//
// Commands:
//   - login / logout / whoami
//   - list [page]: work orders in the user's scope, status descending
//   - history <WO>: history entries of one work order
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
