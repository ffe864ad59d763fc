// Package cli is the interactive bookstore client.
//
// It wires configuration, the local session store, the authenticated
// dispatcher and the session controller into a REPL. Every command that
// shows a view passes the route guards first, so a guest asking for the
// cart is sent to the login view before any request is made. A 401 on
// any request ends the session; the status line and the next prompt
// reflect that immediately.
//
// The REPL is started by App.Run, which blocks until the user exits or
// the context is cancelled. NewRootCommand exposes it as a cobra command
// together with one-shot login, logout and whoami subcommands.
package cli
