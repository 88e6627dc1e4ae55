// Package loader walks a project tree, ranks files by relevance, and
// assembles a bounded-size text context for the remote model.
package loader

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cbx/internal/classify"
	"cbx/internal/config"
	"cbx/internal/errors"
	"cbx/internal/logging"
	"cbx/internal/token"
)

// Loader scans project trees and assembles contexts.
type Loader struct {
	cfg       config.LoaderConfig
	estimator *token.Estimator
	logger    *logging.Logger

	skipDirs map[string]bool
	skipExts map[string]bool
}

// New creates a Loader.
func New(cfg config.LoaderConfig, estimator *token.Estimator, logger *logging.Logger) *Loader {
	skipDirs := make(map[string]bool, len(cfg.SkipDirs))
	for _, d := range cfg.SkipDirs {
		skipDirs[d] = true
	}
	skipExts := make(map[string]bool, len(cfg.SkipExts))
	for _, e := range cfg.SkipExts {
		skipExts[strings.ToLower(e)] = true
	}

	return &Loader{
		cfg:       cfg,
		estimator: estimator,
		logger:    logger,
		skipDirs:  skipDirs,
		skipExts:  skipExts,
	}
}

// Load scans projectPath and assembles a context within maxTokens.
// maxTokens <= 0 means the configured default.
//
// Selection is deterministic: candidates are sorted by descending score,
// ties broken by ascending path, then accepted greedily while the running
// total (including the reserved overhead for the tree summary and
// per-file formatting) stays within budget. A file too large for the
// remaining budget is skipped, not fatal; smaller files after it may
// still fit.
func (l *Loader) Load(projectPath string, maxTokens int) (*Context, error) {
	if maxTokens <= 0 {
		maxTokens = l.cfg.MaxTokens
	}

	root, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, errors.NewPathNotFoundError(projectPath)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errors.NewPathNotFoundError(projectPath)
	}

	candidates, warnings := l.scan(root)
	scanned := len(candidates)

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Path < candidates[j].Path
	})

	budget := maxTokens - l.cfg.ReserveTokens
	used := 0
	var accepted []FileCandidate
	for _, c := range candidates {
		cost := c.Tokens + l.fileOverhead(c)
		if used+cost > budget {
			continue
		}
		accepted = append(accepted, c)
		used += cost
	}

	ctx := &Context{
		ProjectPath: root,
		MaxTokens:   maxTokens,
		Scanned:     scanned,
		Languages:   make(map[string]int),
		GeneratedAt: time.Now(),
		Approximate: l.estimator.Approximate(),
		Warnings:    warnings,
	}

	for _, c := range accepted {
		ctx.Files = append(ctx.Files, FileRef{
			Path:     c.Path,
			Language: c.Language,
			Size:     c.Size,
			Tokens:   c.Tokens,
			Score:    c.Score,
		})
		ctx.Languages[c.Language]++
	}

	ctx.Text = render(ctx, accepted)
	ctx.TotalTokens = used

	if scanned > 0 && len(accepted) == 0 {
		ctx.BudgetExhausted = true
		l.logger.Warn("No candidate file fits the token budget", map[string]interface{}{
			"project":   root,
			"scanned":   scanned,
			"maxTokens": maxTokens,
		})
	}

	l.logger.Info("Codebase loaded", map[string]interface{}{
		"project": root,
		"files":   len(accepted),
		"scanned": scanned,
		"tokens":  ctx.TotalTokens,
	})

	return ctx, nil
}

// scan enumerates files under root, pruning denylisted directories and
// extensions, and returns scored candidates. Read failures are recovered
// locally: the file is skipped and a warning recorded.
func (l *Loader) scan(root string) ([]FileCandidate, []string) {
	var candidates []FileCandidate
	var warnings []string

	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			rel, rerr := filepath.Rel(root, p)
			if rerr != nil {
				rel = p
			}
			warnings = append(warnings, filepath.ToSlash(rel)+": "+err.Error())
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if p == root {
				return nil
			}
			if l.skipDirs[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}
		if l.skipExts[strings.ToLower(filepath.Ext(name))] {
			return nil
		}

		data, rerr := os.ReadFile(p)
		if rerr != nil {
			rel, _ := filepath.Rel(root, p)
			warnings = append(warnings, filepath.ToSlash(rel)+": "+rerr.Error())
			l.logger.Warn("Skipping unreadable file", map[string]interface{}{
				"path":  p,
				"error": rerr.Error(),
			})
			return nil
		}
		content := string(data)
		if strings.TrimSpace(content) == "" {
			return nil
		}

		tokens := l.estimator.Estimate(content)
		if l.cfg.MaxFileTokens > 0 && tokens > l.cfg.MaxFileTokens {
			return nil
		}

		rel, rerr := filepath.Rel(root, p)
		if rerr != nil {
			return nil
		}

		language, weight := classify.Classify(name)
		c := FileCandidate{
			Path:     filepath.ToSlash(rel),
			Language: language,
			Size:     int64(len(data)),
			Tokens:   tokens,
			Score:    weight,
			content:  content,
		}
		c.Score = Score(c)
		candidates = append(candidates, c)
		return nil
	})

	return candidates, warnings
}

// fileOverhead estimates the formatting cost a file adds beyond its
// content: its header, code fences, and its line in the file tree.
func (l *Loader) fileOverhead(c FileCandidate) int {
	header := "### " + c.Path + " (" + c.Language + ")\n```" + c.Language + "\n\n```\n\n"
	treeLine := "- " + c.Path + " (" + c.Language + ", 00000 tokens, score 0.00)\n"
	return l.estimator.Estimate(header) + l.estimator.Estimate(treeLine)
}
