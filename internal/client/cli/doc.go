// Package cli provides the interactive KONGENGA command-line client.
//
// It wires configuration, the local session database, the API client and
// the session store, then runs a REPL. Typical flow: restore the persisted
// session, then execute user commands until exit.
//
// Key features:
//   - Register / Login / Logout, with the session kept across runs
//   - Browse sectors and jobs
//   - Toggle and list favorite jobs
//   - Update progress counters, profile, language and avatar
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
