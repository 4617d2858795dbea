// Package cli provides the interactive FaceVault command-line client.
//
// It wires configuration, the SQLite store and the authentication
// service into an interactive REPL. Typical flow: unlock the vault with
// the master passphrase, then manage stored credentials and the
// authentication policy.
//
// Key features:
//   - Unlock / Lock (master passphrase, first use bootstraps)
//   - Add / List / Show / Delete credential entries
//   - PIN fast-path management (setup, verify, disable)
//   - Security settings (confidence threshold, liveness, attempts)
//   - Status snapshot and authentication history
//   - Face data reset and full reset
//
// The REPL is started via App.Root(ctx), which blocks until the user
// exits. See App and runREPL for details.
package cli
