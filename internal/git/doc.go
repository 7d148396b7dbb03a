// Package git provides low-level Git operations.
//
// Every command goes through a Runner, which spawns the process and streams
// its combined output. Git wraps a Runner and builds the exact argument
// vectors for:
//   - Branch management (checkout, create, delete, upstream)
//   - Remote operations (fetch, pull, push, prune)
//   - Queries (branch lists, merge-base, tags, log, diff)
//
// Repository discovery uses go-git so no process is needed before the
// working directory is known.
//
// This package should be the only place where git commands are built.
package git
