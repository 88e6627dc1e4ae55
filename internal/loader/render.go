package loader

import (
	"fmt"
	"strings"
)

// render assembles the context blob: project overview, file tree with
// per-file metadata, then each file's full content under a header naming
// its path and language.
func render(ctx *Context, files []FileCandidate) string {
	var b strings.Builder

	b.WriteString("# CODEBASE ANALYSIS CONTEXT\n\n")
	b.WriteString("## PROJECT OVERVIEW\n")
	fmt.Fprintf(&b, "- Path: %s\n", ctx.ProjectPath)
	fmt.Fprintf(&b, "- Files loaded: %d (out of %d scanned)\n", len(files), ctx.Scanned)
	if ctx.Approximate {
		b.WriteString("- Token counts: approximate (length heuristic)\n")
	}
	b.WriteString("\n## FILE TREE\n")
	for _, f := range files {
		fmt.Fprintf(&b, "- %s (%s, %d tokens, score %.2f)\n", f.Path, f.Language, f.Tokens, f.Score)
	}

	b.WriteString("\n## FILE CONTENTS\n\n")
	for _, f := range files {
		fmt.Fprintf(&b, "### %s (%s)\n", f.Path, f.Language)
		fmt.Fprintf(&b, "```%s\n%s\n```\n\n", f.Language, strings.TrimRight(f.content, "\n"))
	}

	if len(files) > 0 {
		b.WriteString("## ANALYSIS INSTRUCTIONS\n")
		b.WriteString("The codebase above is loaded with relevance-ranked file selection. ")
		b.WriteString("When answering, reference specific files and consider relationships between them.\n")
	}

	return b.String()
}
