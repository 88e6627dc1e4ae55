// Package export serializes the current session to a human-readable
// document: project metadata as YAML front matter, the ranked file list,
// and every stored analysis result with its originating query.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"

	"cbx/internal/errors"
	"cbx/internal/loader"
	"cbx/internal/logging"
	"cbx/internal/session"
)

// Options control one export.
type Options struct {
	// Destination is the output file path. A ".gz" suffix implies
	// compression.
	Destination string
	// Compress gzips the document regardless of suffix.
	Compress bool
}

// frontMatter is the metadata block at the top of the document.
type frontMatter struct {
	Project     string    `yaml:"project"`
	GeneratedAt time.Time `yaml:"generatedAt"`
	ExportedAt  time.Time `yaml:"exportedAt"`
	Files       int       `yaml:"files"`
	Tokens      int       `yaml:"tokens"`
	Approximate bool      `yaml:"approximate"`
	Analyses    int       `yaml:"analyses"`
}

// Exporter writes session documents.
type Exporter struct {
	cache  *session.Cache
	logger *logging.Logger
	now    func() time.Time
}

// New creates an Exporter.
func New(cache *session.Cache, logger *logging.Logger) *Exporter {
	return &Exporter{
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// Export writes the current session to opts.Destination and returns the
// path actually written. Fails with NO_CONTEXT when the cache is empty
// or expired, WRITE_ERROR when the destination is not writable.
func (e *Exporter) Export(opts Options) (string, error) {
	ctx := e.cache.Current()
	if ctx == nil {
		return "", errors.NewNoContextError()
	}
	results := e.cache.Results()

	doc, err := e.renderDocument(ctx, results)
	if err != nil {
		return "", errors.NewOperationError("render export", err)
	}

	dest := opts.Destination
	compress := opts.Compress || strings.HasSuffix(dest, ".gz")
	if compress && !strings.HasSuffix(dest, ".gz") {
		dest += ".gz"
	}

	payload := []byte(doc)
	if compress {
		payload, err = gzipBytes(payload)
		if err != nil {
			return "", errors.NewOperationError("compress export", err)
		}
	}

	if err := os.WriteFile(dest, payload, 0644); err != nil {
		return "", errors.NewWriteError(opts.Destination, err)
	}

	e.logger.Info("Session exported", map[string]interface{}{
		"destination": dest,
		"files":       ctx.FileCount(),
		"analyses":    len(results),
		"compressed":  compress,
	})

	return dest, nil
}

func (e *Exporter) renderDocument(ctx *loader.Context, results []session.AnalysisResult) (string, error) {
	fm := frontMatter{
		Project:     ctx.ProjectPath,
		GeneratedAt: ctx.GeneratedAt,
		ExportedAt:  e.now(),
		Files:       ctx.FileCount(),
		Tokens:      ctx.TotalTokens,
		Approximate: ctx.Approximate,
		Analyses:    len(results),
	}
	meta, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "# Session export: %s\n\n", filepath.Base(ctx.ProjectPath))

	b.WriteString("## Ranked files\n\n")
	if ctx.FileCount() == 0 {
		b.WriteString("No files fit the token budget.\n\n")
	} else {
		b.WriteString("| # | Path | Language | Tokens | Score |\n")
		b.WriteString("|---|------|----------|--------|-------|\n")
		for i, f := range ctx.Files {
			fmt.Fprintf(&b, "| %d | %s | %s | %d | %.2f |\n", i+1, f.Path, f.Language, f.Tokens, f.Score)
		}
		b.WriteString("\n")
	}

	if len(ctx.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range ctx.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Analyses\n\n")
	if len(results) == 0 {
		b.WriteString("No analyses recorded.\n")
	} else {
		for i, r := range results {
			fmt.Fprintf(&b, "### %d. %s (%s)\n\n", i+1, r.Task, r.Timestamp.Format(time.RFC3339))
			fmt.Fprintf(&b, "**Query:** %s\n\n", r.Query)
			fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(r.Response))
		}
	}

	return b.String(), nil
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
