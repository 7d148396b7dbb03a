// Package actions provides the workflow operations behind the gitx commands.
//
// Each action corresponds to a gitx command (update, integrate, release, nuke,
// cleanup, ...) and sequences git and review-host operations for it.
//
// Key patterns:
//   - Actions accept runtime.Context, which carries the git helper, config,
//     logger, prompter and review-host client for one repository
//   - Every git invocation goes through the context's runner
//   - Validation happens before the first command that changes the repository
//   - Operations the user can decline return an Outcome alongside the error
package actions
