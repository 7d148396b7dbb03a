// Package utils holds small helpers shared by the command layer: branch name
// sanitizing, reading piped input and opening URLs in a browser.
package utils
