package utils

import (
	"regexp"
	"strings"
)

// MaxBranchNameByteLength keeps refs/heads/<name> within git's 256 byte ref limit
const MaxBranchNameByteLength = 245

var (
	// branchNameReplaceRegex matches runs of characters that are not letters,
	// digits, "-", "_", "/" or "."
	branchNameReplaceRegex = regexp.MustCompile(`[^-_/.a-zA-Z0-9]+`)
	// branchNameTrailingRegex matches trailing slashes and dots
	branchNameTrailingRegex = regexp.MustCompile(`[/.]*$`)
	hyphenRunRegex          = regexp.MustCompile(`-+`)
)

// SanitizeBranchName turns free text into something git accepts as a branch
// name. The result may still collide with an existing branch.
func SanitizeBranchName(name string) string {
	name = strings.TrimSpace(name)
	name = branchNameTrailingRegex.ReplaceAllString(name, "")
	name = branchNameReplaceRegex.ReplaceAllString(name, "-")
	name = hyphenRunRegex.ReplaceAllString(name, "-")
	name = strings.ReplaceAll(name, "..", ".")
	name = strings.Trim(name, "-")

	if len(name) > MaxBranchNameByteLength {
		name = strings.TrimSuffix(name[:MaxBranchNameByteLength], "-")
	}
	return name
}
