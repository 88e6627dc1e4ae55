package loader

import "time"

// FileCandidate is a file discovered during the walk, before selection.
// Candidates only live for the duration of one Load call.
type FileCandidate struct {
	Path     string  // relative to the project root, slash-separated
	Language string  `json:"language"`
	Size     int64   `json:"size"`
	Tokens   int     `json:"tokens"`
	Score    float64 `json:"score"`

	content string
}

// FileRef describes one accepted file in a loaded context.
type FileRef struct {
	Path     string  `json:"path"`
	Language string  `json:"language"`
	Size     int64   `json:"size"`
	Tokens   int     `json:"tokens"`
	Score    float64 `json:"score"`
}

// Context is the assembled text context for a project plus its metadata.
// It is owned by the session cache once loaded and replaced wholesale on
// reload.
type Context struct {
	ProjectPath string    `json:"projectPath"`
	Text        string    `json:"-"` // rendered blob, excluded from JSON summaries
	Files       []FileRef `json:"files"`
	TotalTokens int       `json:"totalTokens"`
	MaxTokens   int       `json:"maxTokens"`
	Scanned     int       `json:"scannedFiles"`
	Languages   map[string]int `json:"languages"`
	GeneratedAt time.Time `json:"generatedAt"`

	// Approximate is set when token counts come from the length heuristic
	// rather than an exact tokenizer.
	Approximate bool `json:"approximate"`

	// BudgetExhausted is set when candidates existed but none fit the
	// budget. Non-fatal: the context is simply empty.
	BudgetExhausted bool `json:"budgetExhausted,omitempty"`

	// Warnings records files skipped due to read errors.
	Warnings []string `json:"warnings,omitempty"`
}

// FileCount returns the number of files in the context.
func (c *Context) FileCount() int {
	return len(c.Files)
}
