package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/tessera"
	"github.com/aretw0/tessera/internal/logging"
	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ModulesURI is the resource exposing the module catalog.
const ModulesURI = "tessera://modules"

// AcceptResponse is the structured result of can_accept.
type AcceptResponse struct {
	SessionID string `json:"session_id" jsonschema_description:"The session the check ran against"`
	NodeID    string `json:"node_id" jsonschema_description:"The hovered node"`
	Module    string `json:"module" jsonschema_description:"The dragged module ID"`
	Accept    bool   `json:"accept" jsonschema_description:"True when the node is an empty cell"`
}

// Server wraps a session.Manager and exposes it as an MCP Server.
type Server struct {
	sessions  *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. A nil logger discards logs.
func NewServer(sessions *session.Manager, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		sessions:  sessions,
		logger:    logger,
		mcpServer: server.NewMCPServer("tessera-mcp", strings.TrimSpace(tessera.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_modules",
		mcp.WithDescription("List the module presets that can be dropped onto an empty cell."),
	), s.handleListModules)

	s.mcpServer.AddTool(mcp.NewTool("create_session",
		mcp.WithDescription("Start a new layout editing session holding a single empty cell."),
	), s.handleCreateSession)

	s.mcpServer.AddTool(mcp.NewTool("get_layout",
		mcp.WithDescription("Get the current layout tree of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
	), s.handleGetLayout)

	s.mcpServer.AddTool(mcp.NewTool("can_accept",
		mcp.WithDescription("Check whether a node would accept a dropped module. Only empty cells accept."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("Target node ID")),
		mcp.WithString("module", mcp.Required(), mcp.Description("Module ID, see list_modules")),
		mcp.WithOutputSchema[AcceptResponse](),
	), mcp.NewStructuredToolHandler(s.handleCanAccept))

	s.mcpServer.AddTool(mcp.NewTool("drop_module",
		mcp.WithDescription("Drop a module onto an empty cell, splitting it into a grid of new empty cells."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("Target node ID")),
		mcp.WithString("module", mcp.Required(), mcp.Description("Module ID, see list_modules")),
	), s.handleDropModule)

	s.mcpServer.AddTool(mcp.NewTool("set_content",
		mcp.WithDescription("Set the text of an empty cell."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("Target cell ID")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Cell text")),
	), s.handleSetContent)

	s.mcpServer.AddTool(mcp.NewTool("reset_layout",
		mcp.WithDescription("Discard the layout and start over from a single empty cell."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
	), s.handleResetLayout)

	s.mcpServer.AddTool(mcp.NewTool("export_markup",
		mcp.WithDescription("Export the layout as nested flex-box HTML."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
	), s.handleExportMarkup)
}

func (s *Server) handleListModules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(domain.Catalog())
}

func (s *Server) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.sessions.Create(ctx)
	if err != nil {
		return s.toolError("create_session", err), nil
	}
	view, err := s.sessions.View(ctx, id)
	if err != nil {
		return s.toolError("create_session", err), nil
	}
	return jsonResult(map[string]any{"session_id": id, "layout": view})
}

func (s *Server) handleGetLayout(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	view, err := s.sessions.View(ctx, sessionID)
	if err != nil {
		return s.toolError("get_layout", err), nil
	}
	return jsonResult(view)
}

func (s *Server) handleCanAccept(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (AcceptResponse, error) {
	resp := AcceptResponse{}
	resp.SessionID, _ = args["session_id"].(string)
	resp.NodeID, _ = args["node_id"].(string)
	resp.Module, _ = args["module"].(string)

	ok, err := s.sessions.CanAccept(ctx, resp.SessionID, domain.NodeID(resp.NodeID), resp.Module)
	if err != nil {
		return AcceptResponse{}, err
	}
	resp.Accept = ok
	return resp, nil
}

func (s *Server) handleDropModule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")
	nodeID := request.GetString("node_id", "")
	module := request.GetString("module", "")
	if sessionID == "" || nodeID == "" || module == "" {
		return mcp.NewToolResultError("session_id, node_id and module are required"), nil
	}

	view, err := s.sessions.Drop(ctx, sessionID, domain.NodeID(nodeID), module)
	if err != nil {
		return s.toolError("drop_module", err), nil
	}
	return jsonResult(view)
}

func (s *Server) handleSetContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")
	nodeID := request.GetString("node_id", "")
	content, err := request.RequireString("content")
	if err != nil || sessionID == "" || nodeID == "" {
		return mcp.NewToolResultError("session_id, node_id and content are required"), nil
	}

	view, err := s.sessions.SetContent(ctx, sessionID, domain.NodeID(nodeID), content)
	if err != nil {
		return s.toolError("set_content", err), nil
	}
	return jsonResult(view)
}

func (s *Server) handleResetLayout(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	view, err := s.sessions.Reset(ctx, sessionID)
	if err != nil {
		return s.toolError("reset_layout", err), nil
	}
	return jsonResult(view)
}

func (s *Server) handleExportMarkup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := s.sessions.Export(ctx, sessionID)
	if err != nil {
		return s.toolError("export_markup", err), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ModulesURI, "Module Catalog",
		mcp.WithResourceDescription("Module presets that split an empty cell into a grid"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(domain.Catalog())
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalog: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ModulesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

// toolError reports domain failures as tool errors so the caller can recover.
// A rejected drop is a normal outcome and is not logged as a failure.
func (s *Server) toolError(tool string, err error) *mcp.CallToolResult {
	if !errors.Is(err, domain.ErrRejectedDrop) {
		s.logger.Warn("MCP tool failed", "tool", tool, "err", err)
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", tool, err))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
