package mcp

// GetToolDefinitions returns all tool definitions
func (s *Server) GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "loadCodebase",
			Description: "Load a project directory into the analysis context with relevance-ranked file selection under a token budget",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"project_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the project directory to analyze",
					},
					"max_tokens": map[string]interface{}{
						"type":        "number",
						"default":     900000,
						"description": "Maximum tokens to spend on the context (default: 900000)",
					},
				},
				"required": []string{"project_path"},
			},
		},
		{
			Name:        "analyzeArchitecture",
			Description: "Get a comprehensive architecture analysis of the loaded codebase",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"focus": map[string]interface{}{
						"type":        "string",
						"default":     "architecture",
						"description": "Focus area: architecture, patterns, dependencies, structure, or a custom angle",
					},
				},
			},
		},
		{
			Name:        "semanticSearch",
			Description: "Search the loaded codebase semantically using a natural language query",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Natural language description of what to find",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        "suggestImprovements",
			Description: "Get specific improvement suggestions for the loaded codebase",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"area": map[string]interface{}{
						"type":        "string",
						"default":     "general",
						"description": "Focus area: performance, security, maintainability, testing, architecture, or general",
					},
				},
			},
		},
		{
			Name:        "explainCodeflow",
			Description: "Trace and explain how specific functionality works across the loaded codebase",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"functionality": map[string]interface{}{
						"type":        "string",
						"description": "The functionality to trace through the codebase",
					},
				},
				"required": []string{"functionality"},
			},
		},
		{
			Name:        "codebaseSummary",
			Description: "Get a comprehensive summary of the loaded codebase",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "askWithContext",
			Description: "Ask any question with the full codebase context",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"question": map[string]interface{}{
						"type":        "string",
						"description": "Your question about the codebase",
					},
				},
				"required": []string{"question"},
			},
		},
		{
			Name:        "exportSession",
			Description: "Export the current session (context metadata, ranked files, analyses) to a readable document",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"destination": map[string]interface{}{
						"type":        "string",
						"description": "Output file path; a .gz suffix compresses the document",
					},
					"compress": map[string]interface{}{
						"type":        "boolean",
						"default":     false,
						"description": "Gzip the document regardless of suffix",
					},
				},
				"required": []string{"destination"},
			},
		},
		{
			Name:        "getStats",
			Description: "Get session cache statistics: entry age, file count, token count",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}
