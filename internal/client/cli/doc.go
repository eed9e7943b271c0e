// Package cli provides the interactive contact directory client.
//
// NewApp builds the application context: one shared state store, the REST
// client and the services that read and write through it. App.Run resolves
// the session, draws the directory and then serves a REPL until the user
// exits or input ends.
//
// Commands:
//   - list, refresh, search <term>, show <id>
//   - add, edit <id>, delete <id>, picture <id>
//   - export [csv|xlsx|s3]
//   - login, signup, logout, whoami
//
// Only commands whose controls are visible for the current session are
// accepted; edit and delete additionally require the card to offer them.
package cli
