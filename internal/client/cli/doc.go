// Package cli provides the interactive StudyHub command-line client.
//
// It wires configuration, the local session store, the API services, and an
// interactive REPL. Typical flow: restore any persisted session, start the
// background session refresher, and execute user commands.
//
// Key features:
//   - Google sign-in / sign-out with a persistent session
//   - Browse and upload documents, lectures, and collections
//   - Ask and answer questions on the Q&A board
//   - Bookmark items and share private content with other users
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
