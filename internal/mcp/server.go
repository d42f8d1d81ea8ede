// Package mcp exposes the reservation tools over the Model Context
// Protocol: JSON-RPC 2.0 over HTTP POST, with tools/list for discovery
// and tools/call for execution.
package mcp

import (
	"encoding/json"
	"net/http"

	"tably/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

const protocolVersion = "2024-11-05"

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type toolDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type callResult struct {
	Content []contentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type Server struct {
	tools map[string]Tool
	order []string
	log   *logger.Logger
}

func NewServer(tools []Tool, log *logger.Logger) *Server {
	byName := make(map[string]Tool, len(tools))
	order := make([]string, 0, len(tools))
	for _, t := range tools {
		byName[t.Name()] = t
		order = append(order, t.Name())
	}
	return &Server{tools: byName, order: order, log: log}
}

func (s *Server) RegisterRoutes(router *httprouter.Router) {
	router.POST("/mcp", s.Handle)
}

func (s *Server) Handle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeResponse(w, rpcResponse{
			JSONRPC: "2.0",
			Error:   &rpcError{Code: codeParseError, Message: "parse error"},
		})
		return
	}

	if req.JSONRPC != "2.0" {
		s.writeResponse(w, rpcResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: codeInvalidRequest, Message: "jsonrpc version must be 2.0"},
		})
		return
	}

	switch req.Method {
	case "initialize":
		s.handleInitialize(w, req)
	case "notifications/initialized":
		w.WriteHeader(http.StatusAccepted)
	case "tools/list":
		s.handleToolsList(w, req)
	case "tools/call":
		s.handleToolsCall(w, r, req)
	default:
		s.writeResponse(w, rpcResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: codeMethodNotFound, Message: "method not found: " + req.Method},
		})
	}
}

func (s *Server) handleInitialize(w http.ResponseWriter, req rpcRequest) {
	s.writeResponse(w, rpcResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
			"serverInfo": map[string]any{
				"name":    "tably",
				"version": "1.0.0",
			},
		},
	})
}

func (s *Server) handleToolsList(w http.ResponseWriter, req rpcRequest) {
	descriptors := make([]toolDescriptor, 0, len(s.order))
	for _, name := range s.order {
		t := s.tools[name]
		descriptors = append(descriptors, toolDescriptor{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.Parameters(),
		})
	}

	s.writeResponse(w, rpcResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  map[string]any{"tools": descriptors},
	})
}

func (s *Server) handleToolsCall(w http.ResponseWriter, r *http.Request, req rpcRequest) {
	var params callParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeResponse(w, rpcResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: codeInvalidParams, Message: "invalid tools/call params"},
		})
		return
	}

	tool, ok := s.tools[params.Name]
	if !ok {
		s.writeResponse(w, rpcResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: codeInvalidParams, Message: "unknown tool: " + params.Name},
		})
		return
	}

	if params.Arguments == nil {
		params.Arguments = map[string]any{}
	}

	text, err := tool.Execute(r.Context(), params.Arguments)
	if err != nil {
		s.log.Error("Tool execution failed", "tool", params.Name, "error", err)
		s.writeResponse(w, rpcResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result: callResult{
				Content: []contentBlock{{Type: "text", Text: "tool execution failed"}},
				IsError: true,
			},
		})
		return
	}

	s.writeResponse(w, rpcResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: callResult{
			Content: []contentBlock{{Type: "text", Text: text}},
		},
	})
}

func (s *Server) writeResponse(w http.ResponseWriter, resp rpcResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("failed to write JSON-RPC response", "error", err)
	}
}
