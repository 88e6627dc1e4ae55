// Package analyze builds task-specific prompts over the cached codebase
// context and dispatches them to the remote model.
package analyze

import (
	"context"
	"fmt"
	"strings"

	"cbx/internal/errors"
	"cbx/internal/llm"
	"cbx/internal/logging"
	"cbx/internal/session"
)

// Task identifies an analysis task type.
type Task string

const (
	// TaskArchitecture produces a comprehensive architecture analysis.
	TaskArchitecture Task = "architecture"
	// TaskSearch performs semantic search with a natural-language query.
	TaskSearch Task = "search"
	// TaskSuggest produces improvement suggestions for a focus area.
	TaskSuggest Task = "suggest"
	// TaskExplain traces how specific functionality flows across files.
	TaskExplain Task = "explain"
	// TaskSummary summarizes the whole loaded codebase.
	TaskSummary Task = "summary"
	// TaskAsk answers a free-form question with full context.
	TaskAsk Task = "ask"
)

// Params carries the user-supplied inputs for a task. Which field is
// read depends on the task.
type Params struct {
	Focus         string // architecture: focus area, default "architecture"
	Query         string // search: natural-language query (required)
	Area          string // suggest: focus area, default "general"
	Functionality string // explain: functionality to trace (required)
	Question      string // ask: the question (required)
}

// Dispatcher combines cached context with task prompts and relays them to
// the model, storing each answer back into the session.
type Dispatcher struct {
	cache  *session.Cache
	model  llm.Completer
	logger *logging.Logger
}

// New creates a Dispatcher.
func New(cache *session.Cache, model llm.Completer, logger *logging.Logger) *Dispatcher {
	return &Dispatcher{
		cache:  cache,
		model:  model,
		logger: logger,
	}
}

// Dispatch runs one analysis task. It fails with NO_CONTEXT when no
// unexpired context is cached, and with REMOTE_ERROR when the model call
// fails; it never retries.
func (d *Dispatcher) Dispatch(ctx context.Context, task Task, params Params) (string, error) {
	cached := d.cache.Current()
	if cached == nil {
		return "", errors.NewNoContextError()
	}

	instruction, query, temperature, err := buildInstruction(task, params)
	if err != nil {
		return "", err
	}

	prompt := cached.Text + "\n\n## USER QUERY\n" + instruction

	d.logger.Info("Dispatching analysis", map[string]interface{}{
		"task":    string(task),
		"project": cached.ProjectPath,
		"tokens":  cached.TotalTokens,
	})

	answer, err := d.model.Complete(ctx, prompt, temperature)
	if err != nil {
		return "", err
	}

	d.cache.Remember(string(task), query, answer)
	return answer, nil
}

// buildInstruction returns the task instruction, the query text to store
// with the result, and the sampling temperature for the task.
func buildInstruction(task Task, p Params) (instruction, query string, temperature float32, err error) {
	switch task {
	case TaskArchitecture:
		focus := p.Focus
		if focus == "" {
			focus = "architecture"
		}
		return fmt.Sprintf(`Provide a comprehensive %s analysis of this codebase. Include:

1. Overall architecture and design patterns
2. Key components and their relationships
3. Data flow and dependencies
4. Technology stack and framework usage
5. Code organization and structure quality
6. Notable design decisions

Be specific and reference actual files, functions, and code patterns you observe.`, focus), focus, 0.2, nil

	case TaskSearch:
		if strings.TrimSpace(p.Query) == "" {
			return "", "", 0, errors.NewInvalidParameterError("query", "required for semantic search")
		}
		return fmt.Sprintf(`Perform a semantic search for: %q

Provide:
1. Exact file locations where this functionality exists
2. Relevant code snippets with line context
3. Related functions and types that work together
4. Usage patterns across the codebase

Focus on semantic meaning, not just keyword matching.`, p.Query), p.Query, 0.2, nil

	case TaskSuggest:
		area := p.Area
		if area == "" {
			area = "general"
		}
		return fmt.Sprintf(`Analyze the codebase and suggest specific improvements for %s:

1. Specific issues with file references
2. Concrete solutions with code examples
3. Priority ranking (high/medium/low)
4. Implementation steps for each suggestion

Focus on actionable improvements with clear benefits.`, area), area, 0.3, nil

	case TaskExplain:
		if strings.TrimSpace(p.Functionality) == "" {
			return "", "", 0, errors.NewInvalidParameterError("functionality", "required for code flow tracing")
		}
		return fmt.Sprintf(`Trace and explain how this functionality works: %q

Provide:
1. Entry points where this functionality starts
2. Step-by-step execution path across files
3. Key functions and types involved
4. How data flows and changes along the way
5. External dependencies touched

Reference specific files and line numbers.`, p.Functionality), p.Functionality, 0.2, nil

	case TaskSummary:
		return `Provide a comprehensive summary of this entire codebase:

1. Project purpose: what does this software do?
2. Architecture overview: how is it structured?
3. Key features and main functionality areas
4. Technology stack: languages, frameworks, tools
5. Notable patterns and conventions

Make it accessible for both technical and non-technical readers.`, string(TaskSummary), 0.3, nil

	case TaskAsk:
		if strings.TrimSpace(p.Question) == "" {
			return "", "", 0, errors.NewInvalidParameterError("question", "required")
		}
		return p.Question, p.Question, 0.3, nil

	default:
		return "", "", 0, errors.NewInvalidParameterError("task", fmt.Sprintf("unknown task %q", task))
	}
}
