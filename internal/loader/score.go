package loader

import (
	"path"
	"strings"
)

// Directory segments that raise or lower relevance. Matching is by whole
// path segment, not substring, so "source" does not match "src".
var (
	coreDirs   = segmentSet("src", "lib", "core", "app", "internal", "pkg", "cmd")
	testDirs   = segmentSet("test", "tests", "docs", "doc", "examples", "example")
	configDirs = segmentSet("config", "configs", "settings")
)

// Filenames that conventionally mark entry points.
var entryPoints = map[string]bool{
	"main":   true,
	"index":  true,
	"app":    true,
	"server": true,
}

func segmentSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// Score combines the base language weight with directory, filename, and
// size signals into one relevance score. The exact factors are tuning;
// the contract is that the ordering is stable and reproducible for
// identical input.
func Score(c FileCandidate) float64 {
	score := c.Score // base language weight, set by the caller

	switch {
	case hasSegment(c.Path, coreDirs):
		score *= 1.3
	case hasSegment(c.Path, testDirs):
		score *= 0.7
	case hasSegment(c.Path, configDirs):
		score *= 0.6
	}

	base := strings.ToLower(path.Base(c.Path))
	stem := strings.TrimSuffix(base, path.Ext(base))
	switch {
	case entryPoints[stem]:
		score *= 1.5
	case strings.HasPrefix(base, "test_"), strings.Contains(stem, "_test"):
		score *= 0.7
	}

	// Monotonically decreasing size penalty past the threshold keeps one
	// huge file from dominating the budget; tiny files get a slight boost.
	switch {
	case c.Tokens < 100:
		score *= 1.1
	case c.Tokens > 10000:
		score *= 0.6
	case c.Tokens > 5000:
		score *= 0.8
	}

	return score
}

func hasSegment(p string, set map[string]bool) bool {
	for _, seg := range strings.Split(path.Dir(p), "/") {
		if set[strings.ToLower(seg)] {
			return true
		}
	}
	return false
}
