// Package runtime provides the execution context for gitx commands.
//
// It carries the repository a command operates on: the git command helper,
// the loaded configuration, the logger, the prompter and editor, and a lazily
// constructed review-host client. Nothing in gitx reads a process-wide
// repository; every action receives a Context.
package runtime
