// Package cli is the interactive AssetTrack client.
//
// It is thin glue over store.Store: every command reads a little input,
// calls one store operation and prints the result. Supported commands:
//   - login / logout, with an optional "remember me" prompt
//   - get <id>, list
//   - new, update (interactive item form with suggestions)
//   - suggest <field> [query]
//   - status
//
// The REPL is started with App.Run, which blocks until the user exits.
package cli
