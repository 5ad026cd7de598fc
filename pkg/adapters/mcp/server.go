package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/dag2langgraph"
	"github.com/aretw0/dag2langgraph/pkg/codec"
	"github.com/aretw0/dag2langgraph/pkg/domain"
)

// ExampleURI names the resource holding a sample input document.
const ExampleURI = "dag2langgraph://example"

const exampleDocument = `{
  "entry_point": "start",
  "nodes": [
    {"id": "start", "type": "function", "name": "StartFn"},
    {"id": "toolA", "type": "tool", "name": "ToolA"},
    {"id": "end", "type": "function", "name": "EndFn"}
  ],
  "edges": [
    {"source": "start", "target": "toolA"},
    {"source": "toolA", "target": "end", "condition": "ok"}
  ]
}
`

// Converter defines what the MCP server needs from the conversion service.
type Converter interface {
	ConvertDocument(ctx context.Context, data []byte, format codec.Format, indent int) ([]byte, error)
	Validate(ctx context.Context, data []byte, format codec.Format) error
}

// Server exposes a Converter as MCP tools.
type Server struct {
	conv      Converter
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(conv Converter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		conv:      conv,
		logger:    logger,
		mcpServer: server.NewMCPServer("dag2langgraph-mcp", strings.TrimSpace(dag2langgraph.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP endpoints over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

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
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: convert_dag
	convertTool := mcp.NewTool("convert_dag",
		mcp.WithDescription("Validate a DAG document and convert it into the LangGraph runtime JSON format."),
		mcp.WithString("dag", mcp.Required(), mcp.Description("The DAG document (JSON or YAML text)")),
		mcp.WithString("format", mcp.Description("Input format: json (default) or yaml")),
		mcp.WithNumber("indent", mcp.Description("Spaces per indentation level of the output, 0 for compact (default 2)")),
	)
	s.mcpServer.AddTool(convertTool, s.handleConvert)

	// TOOL: validate_dag
	validateTool := mcp.NewTool("validate_dag",
		mcp.WithDescription("Check a DAG document without converting it."),
		mcp.WithString("dag", mcp.Required(), mcp.Description("The DAG document (JSON or YAML text)")),
		mcp.WithString("format", mcp.Description("Input format: json (default) or yaml")),
	)
	s.mcpServer.AddTool(validateTool, s.handleValidate)
}

func (s *Server) handleConvert(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, format, errResult := documentArgs(request)
	if errResult != nil {
		return errResult, nil
	}
	indent := request.GetInt("indent", codec.DefaultIndent)
	if indent < 0 || indent > 8 {
		return mcp.NewToolResultError("indent must be between 0 and 8"), nil
	}

	out, err := s.conv.ConvertDocument(ctx, []byte(doc), format, indent)
	if err != nil {
		return s.failure(err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, format, errResult := documentArgs(request)
	if errResult != nil {
		return errResult, nil
	}
	if err := s.conv.Validate(ctx, []byte(doc), format); err != nil {
		return s.failure(err)
	}
	return mcp.NewToolResultText("valid"), nil
}

func documentArgs(request mcp.CallToolRequest) (string, codec.Format, *mcp.CallToolResult) {
	doc, err := request.RequireString("dag")
	if err != nil {
		return "", "", mcp.NewToolResultError(err.Error())
	}
	format, err := codec.ParseFormat(request.GetString("format", string(codec.FormatJSON)))
	if err != nil {
		return "", "", mcp.NewToolResultError(err.Error())
	}
	return doc, format, nil
}

// failure reports document problems as tool errors so the calling agent can
// fix its input. Anything else is a server fault.
func (s *Server) failure(err error) (*mcp.CallToolResult, error) {
	if kind, ok := domain.KindOf(err); ok {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", kind, err.Error())), nil
	}
	var decodeErr *codec.DecodeError
	if errors.As(err, &decodeErr) {
		return mcp.NewToolResultError(decodeErr.Error()), nil
	}
	s.logger.Error("MCP conversion failed", "error", err)
	return nil, fmt.Errorf("conversion failed: %w", err)
}

func (s *Server) registerResources() {
	// EXPOSE: dag2langgraph://example
	s.mcpServer.AddResource(mcp.NewResource(ExampleURI, "Example DAG document",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ExampleURI,
				MIMEType: "application/json",
				Text:     exampleDocument,
			},
		}, nil
	})
}
