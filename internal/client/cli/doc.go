// Package cli provides the interactive tripdiary terminal client.
//
// It wires configuration, the Record Store, the sync services and an
// optional SQLite snapshot, then runs a REPL that stands in for the mobile
// screens: browsing folders and diaries, the diary wizard, the folder form
// and the public feed. A background watcher pings the backend and switches
// between online and offline mode.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
