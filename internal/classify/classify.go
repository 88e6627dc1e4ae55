// Package classify maps file paths to languages and base relevance weights.
package classify

import (
	"path/filepath"
	"strings"
)

// DefaultWeight is the minimum weight assigned to files whose extension
// is not in the table.
const DefaultWeight = 0.4

// entry pairs a language name with its base weight.
type entry struct {
	language string
	weight   float64
}

// Core languages weigh highest, markup and config lowest. The weights are
// tuning, not contract; only their ordering is relied upon.
var byExtension = map[string]entry{
	".py":         {"python", 1.2},
	".js":         {"javascript", 1.2},
	".ts":         {"typescript", 1.3},
	".jsx":        {"react", 1.2},
	".tsx":        {"react-ts", 1.3},
	".java":       {"java", 1.2},
	".go":         {"go", 1.2},
	".rs":         {"rust", 1.2},
	".c":          {"c", 1.1},
	".h":          {"c-header", 1.0},
	".cpp":        {"cpp", 1.1},
	".cc":         {"cpp", 1.1},
	".hpp":        {"cpp-header", 1.0},
	".cs":         {"csharp", 1.1},
	".php":        {"php", 1.0},
	".rb":         {"ruby", 1.1},
	".swift":      {"swift", 1.1},
	".kt":         {"kotlin", 1.1},
	".scala":      {"scala", 1.1},
	".sh":         {"bash", 0.9},
	".sql":        {"sql", 0.9},
	".html":       {"html", 0.7},
	".css":        {"css", 0.8},
	".scss":       {"scss", 0.8},
	".vue":        {"vue", 1.1},
	".svelte":     {"svelte", 1.1},
	".md":         {"markdown", 0.6},
	".yml":        {"yaml", 0.5},
	".yaml":       {"yaml", 0.5},
	".json":       {"json", 0.6},
	".xml":        {"xml", 0.5},
	".toml":       {"toml", 0.6},
	".tf":         {"terraform", 0.8},
	".dockerfile": {"docker", 0.8},
}

// Classify returns the language name and base relevance weight for a file
// path. Unknown extensions classify as plain text with the minimum weight.
// Pure function, no filesystem access.
func Classify(path string) (language string, weight float64) {
	ext := strings.ToLower(filepath.Ext(path))
	if e, ok := byExtension[ext]; ok {
		return e.language, e.weight
	}
	if strings.EqualFold(filepath.Base(path), "dockerfile") {
		return "docker", 0.8
	}
	return "text", DefaultWeight
}
