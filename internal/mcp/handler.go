package mcp

import (
	"encoding/json"
	"fmt"

	"cbx/internal/envelope"
	"cbx/internal/errors"
)

// handleMessage processes an incoming MCP message and returns a response
func (s *Server) handleMessage(msg *Message) *Message {
	if msg.IsRequest() {
		return s.handleRequest(msg)
	}

	if msg.IsNotification() {
		s.handleNotification(msg)
		return nil
	}

	return NewErrorMessage(msg.Id, InvalidRequest, "Invalid message: not a request or notification", nil)
}

// handleRequest handles a JSON-RPC request
func (s *Server) handleRequest(msg *Message) *Message {
	s.logger.Debug("Handling request", map[string]interface{}{
		"method": msg.Method,
		"id":     msg.Id,
	})

	switch msg.Method {
	case "initialize":
		return NewResultMessage(msg.Id, s.handleInitialize())
	case "tools/list":
		return NewResultMessage(msg.Id, map[string]interface{}{
			"tools": s.GetToolDefinitions(),
		})
	case "tools/call":
		params, ok := msg.Params.(map[string]interface{})
		if !ok {
			return NewErrorMessage(msg.Id, InvalidParams, "Invalid params: expected object", nil)
		}
		result, err := s.handleCallTool(params)
		if err != nil {
			return NewErrorMessage(msg.Id, InternalError, err.Error(), nil)
		}
		return NewResultMessage(msg.Id, result)
	default:
		return NewErrorMessage(msg.Id, MethodNotFound, fmt.Sprintf("Method not found: %s", msg.Method), nil)
	}
}

// handleNotification handles a JSON-RPC notification
func (s *Server) handleNotification(msg *Message) {
	switch msg.Method {
	case "notifications/initialized":
		s.logger.Info("Client initialized", nil)
	default:
		s.logger.Debug("Unknown notification", map[string]interface{}{
			"method": msg.Method,
		})
	}
}

// handleInitialize answers the initialize handshake
func (s *Server) handleInitialize() map[string]interface{} {
	return map[string]interface{}{
		"protocolVersion": "2024-11-05",
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    "cbx",
			"version": s.version,
		},
	}
}

// handleCallTool executes a tool. Tool-level failures travel inside the
// envelope, not as JSON-RPC errors, so the client always gets a
// structured payload with a stable error code.
func (s *Server) handleCallTool(params map[string]interface{}) (interface{}, error) {
	toolName, ok := params["name"].(string)
	if !ok {
		return nil, errors.NewInvalidParameterError("name", "")
	}

	toolParams, ok := params["arguments"].(map[string]interface{})
	if !ok {
		toolParams = make(map[string]interface{})
	}

	handler, exists := s.tools[toolName]
	if !exists {
		return nil, errors.NewInvalidParameterError("name", fmt.Sprintf("unknown tool %q", toolName))
	}

	s.logger.Info("Calling tool", map[string]interface{}{
		"tool": toolName,
	})

	resp, err := handler(toolParams)
	if err != nil {
		resp = envelope.Fail(err)
	}

	jsonBytes, err := json.Marshal(resp)
	if err != nil {
		return nil, errors.NewOperationError("marshal response", err)
	}

	return map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": string(jsonBytes),
			},
		},
	}, nil
}
