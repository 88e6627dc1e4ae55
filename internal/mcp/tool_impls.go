package mcp

import (
	"context"

	"cbx/internal/analyze"
	"cbx/internal/envelope"
	"cbx/internal/errors"
	"cbx/internal/export"
)

// registerTools wires tool names to their handlers.
func (s *Server) registerTools() {
	s.tools = map[string]ToolHandler{
		"loadCodebase":        s.toolLoadCodebase,
		"analyzeArchitecture": s.toolAnalyzeArchitecture,
		"semanticSearch":      s.toolSemanticSearch,
		"suggestImprovements": s.toolSuggestImprovements,
		"explainCodeflow":     s.toolExplainCodeflow,
		"codebaseSummary":     s.toolCodebaseSummary,
		"askWithContext":      s.toolAskWithContext,
		"exportSession":       s.toolExportSession,
		"getStats":            s.toolGetStats,
	}
}

// LoadSummary is the payload returned by loadCodebase.
type LoadSummary struct {
	Project     string         `json:"project"`
	FilesLoaded int            `json:"filesLoaded"`
	Scanned     int            `json:"scannedFiles"`
	TotalTokens int            `json:"totalTokens"`
	MaxTokens   int            `json:"maxTokens"`
	Languages   map[string]int `json:"languages"`
	Approximate bool           `json:"approximate"`
}

func (s *Server) toolLoadCodebase(params map[string]interface{}) (*envelope.Response, error) {
	projectPath, ok := stringParam(params, "project_path")
	if !ok {
		return nil, errors.NewInvalidParameterError("project_path", "required")
	}
	maxTokens := intParam(params, "max_tokens", s.deps.DefaultMaxTokens)

	ctx, err := s.deps.Loader.Load(projectPath, maxTokens)
	if err != nil {
		return nil, err
	}
	s.deps.Cache.Put(ctx)

	b := envelope.New().Data(LoadSummary{
		Project:     ctx.ProjectPath,
		FilesLoaded: ctx.FileCount(),
		Scanned:     ctx.Scanned,
		TotalTokens: ctx.TotalTokens,
		MaxTokens:   ctx.MaxTokens,
		Languages:   ctx.Languages,
		Approximate: ctx.Approximate,
	})
	if ctx.BudgetExhausted {
		b.Warning(errors.BudgetExhausted, "every candidate file exceeded the token budget; context is empty")
	}
	for _, w := range ctx.Warnings {
		b.Warning("FILE_SKIPPED", "skipped unreadable file: "+w)
	}
	return b.Build(), nil
}

func (s *Server) toolAnalyzeArchitecture(params map[string]interface{}) (*envelope.Response, error) {
	focus, _ := stringParam(params, "focus")
	return s.dispatch(analyze.TaskArchitecture, analyze.Params{Focus: focus})
}

func (s *Server) toolSemanticSearch(params map[string]interface{}) (*envelope.Response, error) {
	query, _ := stringParam(params, "query")
	return s.dispatch(analyze.TaskSearch, analyze.Params{Query: query})
}

func (s *Server) toolSuggestImprovements(params map[string]interface{}) (*envelope.Response, error) {
	area, _ := stringParam(params, "area")
	return s.dispatch(analyze.TaskSuggest, analyze.Params{Area: area})
}

func (s *Server) toolExplainCodeflow(params map[string]interface{}) (*envelope.Response, error) {
	functionality, _ := stringParam(params, "functionality")
	return s.dispatch(analyze.TaskExplain, analyze.Params{Functionality: functionality})
}

func (s *Server) toolCodebaseSummary(map[string]interface{}) (*envelope.Response, error) {
	return s.dispatch(analyze.TaskSummary, analyze.Params{})
}

func (s *Server) toolAskWithContext(params map[string]interface{}) (*envelope.Response, error) {
	question, _ := stringParam(params, "question")
	return s.dispatch(analyze.TaskAsk, analyze.Params{Question: question})
}

func (s *Server) toolExportSession(params map[string]interface{}) (*envelope.Response, error) {
	destination, ok := stringParam(params, "destination")
	if !ok {
		return nil, errors.NewInvalidParameterError("destination", "required")
	}
	compress, _ := params["compress"].(bool)

	written, err := s.deps.Exporter.Export(export.Options{
		Destination: destination,
		Compress:    compress,
	})
	if err != nil {
		return nil, err
	}
	return envelope.Ok(map[string]string{"path": written}), nil
}

func (s *Server) toolGetStats(map[string]interface{}) (*envelope.Response, error) {
	return envelope.Ok(s.deps.Cache.Stats()), nil
}

// dispatch runs one analysis task and wraps the answer.
func (s *Server) dispatch(task analyze.Task, p analyze.Params) (*envelope.Response, error) {
	answer, err := s.deps.Dispatcher.Dispatch(context.Background(), task, p)
	if err != nil {
		return nil, err
	}
	return envelope.Ok(map[string]string{
		"task":     string(task),
		"response": answer,
	}), nil
}

// stringParam extracts a non-empty string parameter.
func stringParam(params map[string]interface{}, name string) (string, bool) {
	v, ok := params[name].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// intParam extracts a numeric parameter, defaulting when absent or
// malformed. JSON numbers arrive as float64.
func intParam(params map[string]interface{}, name string, def int) int {
	switch v := params[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}
