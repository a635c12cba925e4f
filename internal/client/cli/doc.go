// Package cli provides the interactive PhotoKeeper command-line client.
//
// It wires configuration, the local photo database, the encrypted token
// vault and the upload/download services into an interactive REPL. Typical
// flow: prompt for the vault passphrase, start the auto-backup watcher, and
// execute user commands.
//
// Key features:
//   - Register bots and select the primary one
//   - Index media directories into the local database
//   - Upload pending photos to the channel, with progress and retries
//   - List, download and delete remote photos
//   - Toggle the wifi-only and auto-backup policies
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartAutoBackupWatcher, and runREPL for details.
package cli
