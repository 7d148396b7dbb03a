package git

import (
	"context"
	"sort"
	"strings"
	"time"
)

// BuildTagTimeFormat is the UTC timestamp layout embedded in build tags.
// It is zero padded and fixed width, so string order is chronological order.
const BuildTagTimeFormat = "2006-01-02-15-04-05"

const (
	buildTagPrefix       = "builds/"
	legacyBuildTagPrefix = "build-"
)

// BuildTag is a tag marking a commit that passed the build for Branch
type BuildTag struct {
	Name      string
	Branch    string
	Timestamp string
}

// BuildTagName returns the tag name for a build of branch at t
func BuildTagName(branch string, t time.Time) string {
	return buildTagPrefix + branch + "/" + t.UTC().Format(BuildTagTimeFormat)
}

// BuildTagPatterns returns the tag globs that match builds of branch,
// current form first, legacy form second
func BuildTagPatterns(branch string) []string {
	return []string{
		buildTagPrefix + branch + "/*",
		legacyBuildTagPrefix + branch + "-*",
	}
}

// ParseBuildTag parses builds/<branch>/<timestamp> or the legacy
// build-<branch>-<timestamp> form.
func ParseBuildTag(name string) (BuildTag, bool) {
	switch {
	case strings.HasPrefix(name, buildTagPrefix):
		rest := strings.TrimPrefix(name, buildTagPrefix)
		i := strings.LastIndex(rest, "/")
		if i <= 0 {
			return BuildTag{}, false
		}
		branch, ts := rest[:i], rest[i+1:]
		if !validTimestamp(ts) {
			return BuildTag{}, false
		}
		return BuildTag{Name: name, Branch: branch, Timestamp: ts}, true

	case strings.HasPrefix(name, legacyBuildTagPrefix):
		rest := strings.TrimPrefix(name, legacyBuildTagPrefix)
		n := len(BuildTagTimeFormat)
		if len(rest) < n+2 || rest[len(rest)-n-1] != '-' {
			return BuildTag{}, false
		}
		branch, ts := rest[:len(rest)-n-1], rest[len(rest)-n:]
		if !validTimestamp(ts) {
			return BuildTag{}, false
		}
		return BuildTag{Name: name, Branch: branch, Timestamp: ts}, true
	}
	return BuildTag{}, false
}

func validTimestamp(ts string) bool {
	_, err := time.Parse(BuildTagTimeFormat, ts)
	return err == nil
}

// SortBuildTags orders tags oldest first
func SortBuildTags(tags []BuildTag) {
	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].Timestamp != tags[j].Timestamp {
			return tags[i].Timestamp < tags[j].Timestamp
		}
		return tags[i].Name < tags[j].Name
	})
}

// LatestBuildTag picks the newest build tag for branch among names
func LatestBuildTag(names []string, branch string) (BuildTag, bool) {
	var tags []BuildTag
	for _, name := range names {
		tag, ok := ParseBuildTag(name)
		if !ok || tag.Branch != branch {
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return BuildTag{}, false
	}
	SortBuildTags(tags)
	return tags[len(tags)-1], true
}

// BuildTags fetches tags from the remote and lists every build tag name for branch
func (g *Git) BuildTags(ctx context.Context, branch string) ([]string, error) {
	if err := g.Fetch(ctx, "--tags"); err != nil {
		return nil, err
	}
	var names []string
	for _, pattern := range BuildTagPatterns(branch) {
		tags, err := g.ListTags(ctx, pattern)
		if err != nil {
			return nil, err
		}
		names = append(names, tags...)
	}
	return names, nil
}
