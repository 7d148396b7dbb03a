// Package tui provides the terminal user interface for gitx.
//
// It handles:
//   - Interactive confirmations and text prompts (using survey and bubbletea)
//   - Structured logging and command output streaming (Splog)
//   - Terminal styling and colors (using lipgloss and termenv)
//   - Launching the user's editor for free-form text
package tui
