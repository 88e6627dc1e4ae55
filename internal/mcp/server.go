// Package mcp implements the Model Context Protocol server: a JSON-RPC
// 2.0 loop over stdio exposing the codebase analysis tools.
package mcp

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"cbx/internal/analyze"
	"cbx/internal/envelope"
	"cbx/internal/export"
	"cbx/internal/loader"
	"cbx/internal/logging"
	"cbx/internal/session"
)

// Tool represents a CBX tool exposed via MCP
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolHandler is a function that handles a tool call and returns an
// envelope response.
type ToolHandler func(params map[string]interface{}) (*envelope.Response, error)

// Deps bundles the collaborators the server drives. Everything is
// injected so tests can run several isolated servers.
type Deps struct {
	Loader           *loader.Loader
	Cache            *session.Cache
	Dispatcher       *analyze.Dispatcher
	Exporter         *export.Exporter
	DefaultMaxTokens int
}

// Server is the MCP server. The process is single-threaded by design:
// one invocation is handled to completion before the next is read.
type Server struct {
	stdin   io.Reader
	stdout  io.Writer
	scanner *bufio.Scanner
	logger  *logging.Logger
	version string
	tools   map[string]ToolHandler

	deps Deps
}

// NewServer creates an MCP server reading stdin and writing stdout.
func NewServer(version string, deps Deps, logger *logging.Logger) *Server {
	s := &Server{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		logger:  logger,
		version: version,
		tools:   make(map[string]ToolHandler),
		deps:    deps,
	}
	s.registerTools()
	return s
}

// SetStdin sets the input stream (for testing)
func (s *Server) SetStdin(r io.Reader) {
	s.stdin = r
	s.scanner = nil // recreated with the new reader on next read
}

// SetStdout sets the output stream (for testing)
func (s *Server) SetStdout(w io.Writer) {
	s.stdout = w
}

// Start runs the message loop until EOF.
func (s *Server) Start() error {
	s.logger.Info("MCP server starting", map[string]interface{}{
		"version": s.version,
	})

	for {
		msg, err := s.readMessage()
		if err != nil {
			if err == io.EOF {
				s.logger.Info("MCP server shutting down (EOF)", nil)
				return nil
			}
			s.logger.Error("Error reading message", map[string]interface{}{
				"error": err.Error(),
			})
			if msg != nil && msg.Id != nil {
				_ = s.writeError(msg.Id, ParseError, fmt.Sprintf("Failed to parse message: %v", err))
			}
			continue
		}

		response := s.handleMessage(msg)

		// Notifications don't generate responses
		if response != nil {
			if err := s.writeMessage(response); err != nil {
				s.logger.Error("Error writing response", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}
