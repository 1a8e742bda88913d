package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/sitecanvas"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/editor"
	"github.com/aretw0/sitecanvas/pkg/tree"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DocumentURIPrefix addresses document states as MCP resources.
const DocumentURIPrefix = "sitecanvas://documents/"

// CommandsURI lists the accepted command names.
const CommandsURI = "sitecanvas://commands"

// Service is the document API exposed as MCP tools.
type Service interface {
	Open(ctx context.Context, key string) (*domain.State, error)
	Apply(ctx context.Context, key, name string, payload map[string]any) (*domain.State, *domain.StateDiff, error)
	UseTemplate(ctx context.Context, key, templateID string) (*domain.State, *domain.StateDiff, error)
	Publish(ctx context.Context, key string, mode domain.ViewMode) ([]byte, error)
	Templates(ctx context.Context) ([]domain.Document, error)
	List(ctx context.Context) ([]string, error)
}

// DocumentArgs addresses one document.
type DocumentArgs struct {
	Key string `json:"key"`
}

// CommandArgs carries one editor command.
type CommandArgs struct {
	Key     string         `json:"key"`
	Command string         `json:"command"`
	Payload map[string]any `json:"payload,omitempty"`
}

// TemplateArgs selects a library template for a document.
type TemplateArgs struct {
	Key        string `json:"key"`
	TemplateID string `json:"template_id"`
}

// ApplyResponse is the result of a command: the new state and what changed.
type ApplyResponse struct {
	State *domain.State     `json:"state" jsonschema_description:"The editor state after the command"`
	Diff  *domain.StateDiff `json:"diff,omitempty" jsonschema_description:"Fields changed by the command, absent when nothing changed"`
}

// DocumentList holds stored document keys.
type DocumentList struct {
	Documents []string `json:"documents"`
}

// TemplateSummary describes one template without its element tree.
type TemplateSummary struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Industry domain.Industry `json:"industry"`
	Elements int             `json:"elements" jsonschema_description:"Number of elements, nested ones included"`
}

// TemplateList holds the available templates.
type TemplateList struct {
	Templates []TemplateSummary `json:"templates"`
}

// Server exposes a Service as an MCP server.
type Server struct {
	svc       Service
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(svc Service, opts ...Option) *Server {
	s := &Server{
		svc:       svc,
		mcpServer: server.NewMCPServer("sitecanvas-mcp", strings.TrimSpace(sitecanvas.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int, origins ...string) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	if len(origins) == 0 {
		origins = []string{"*"}
	}
	withCORS := cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Requested-With"},
	})

	mux := http.NewServeMux()
	mux.Handle("/sse", withCORS(sseServer.SSEHandler()))
	mux.Handle("/message", withCORS(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_document",
		mcp.WithDescription("Get the editor state of a document. Unknown keys start from the default page."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Document key")),
		mcp.WithOutputSchema[ApplyResponse](),
	), mcp.NewStructuredToolHandler(s.handleGetDocument))

	s.mcpServer.AddTool(mcp.NewTool("apply_command",
		mcp.WithDescription("Apply one editor command to a document and persist the result."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Document key")),
		mcp.WithString("command", mcp.Required(), mcp.Enum(editor.Names...), mcp.Description("Command name")),
		mcp.WithObject("payload", mcp.Description("Command fields, e.g. {\"id\": \"...\"} for select or delete")),
		mcp.WithOutputSchema[ApplyResponse](),
	), mcp.NewStructuredToolHandler(s.handleApplyCommand))

	s.mcpServer.AddTool(mcp.NewTool("use_template",
		mcp.WithDescription("Replace a document with a template from the library."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Document key")),
		mcp.WithString("template_id", mcp.Required(), mcp.Description("Template id from list_templates")),
		mcp.WithOutputSchema[ApplyResponse](),
	), mcp.NewStructuredToolHandler(s.handleUseTemplate))

	s.mcpServer.AddTool(mcp.NewTool("publish_html",
		mcp.WithDescription("Render a stored document as a standalone HTML page."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Document key")),
		mcp.WithString("mode", mcp.Enum("desktop", "tablet", "mobile"), mcp.Description("Preview width, defaults to the document view mode")),
	), s.handlePublish)

	s.mcpServer.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List stored document keys."),
		mcp.WithOutputSchema[DocumentList](),
	), mcp.NewStructuredToolHandler(s.handleListDocuments))

	s.mcpServer.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List the page templates available to use_template."),
		mcp.WithOutputSchema[TemplateList](),
	), mcp.NewStructuredToolHandler(s.handleListTemplates))
}

func (s *Server) handleGetDocument(ctx context.Context, request mcp.CallToolRequest, args DocumentArgs) (ApplyResponse, error) {
	if args.Key == "" {
		return ApplyResponse{}, errors.New("key is required")
	}
	state, err := s.svc.Open(ctx, args.Key)
	if err != nil {
		return ApplyResponse{}, fmt.Errorf("open failed: %w", err)
	}
	return ApplyResponse{State: state}, nil
}

func (s *Server) handleApplyCommand(ctx context.Context, request mcp.CallToolRequest, args CommandArgs) (ApplyResponse, error) {
	if args.Key == "" {
		return ApplyResponse{}, errors.New("key is required")
	}
	state, diff, err := s.svc.Apply(ctx, args.Key, args.Command, args.Payload)
	if err != nil {
		s.logger.Warn("MCP apply_command rejected", "key", args.Key, "command", args.Command, "error", err)
		return ApplyResponse{}, fmt.Errorf("%s failed: %w", args.Command, err)
	}
	return ApplyResponse{State: state, Diff: diff}, nil
}

func (s *Server) handleUseTemplate(ctx context.Context, request mcp.CallToolRequest, args TemplateArgs) (ApplyResponse, error) {
	if args.Key == "" || args.TemplateID == "" {
		return ApplyResponse{}, errors.New("key and template_id are required")
	}
	state, diff, err := s.svc.UseTemplate(ctx, args.Key, args.TemplateID)
	if err != nil {
		return ApplyResponse{}, fmt.Errorf("use template failed: %w", err)
	}
	return ApplyResponse{State: state, Diff: diff}, nil
}

func (s *Server) handlePublish(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mode := domain.ViewMode(request.GetString("mode", ""))

	page, err := s.svc.Publish(ctx, key, mode)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("publish failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(page)), nil
}

func (s *Server) handleListDocuments(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (DocumentList, error) {
	keys, err := s.svc.List(ctx)
	if err != nil {
		return DocumentList{}, fmt.Errorf("list failed: %w", err)
	}
	if keys == nil {
		keys = []string{}
	}
	return DocumentList{Documents: keys}, nil
}

func (s *Server) handleListTemplates(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (TemplateList, error) {
	docs, err := s.svc.Templates(ctx)
	if err != nil {
		return TemplateList{}, fmt.Errorf("list templates failed: %w", err)
	}
	out := TemplateList{Templates: make([]TemplateSummary, 0, len(docs))}
	for _, d := range docs {
		out.Templates = append(out.Templates, TemplateSummary{
			ID:       d.ID,
			Name:     d.Name,
			Industry: d.Industry,
			Elements: tree.Count(d.Elements),
		})
	}
	return out, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CommandsURI, "Editor commands",
		mcp.WithResourceDescription("Command names accepted by apply_command"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, _ := json.Marshal(editor.Names)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      CommandsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(DocumentURIPrefix+"{key}", "Document state",
		mcp.WithTemplateMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		uri := request.Params.URI
		key := strings.TrimPrefix(uri, DocumentURIPrefix)
		if key == "" || key == uri {
			return nil, fmt.Errorf("invalid document uri %q", uri)
		}
		state, err := s.svc.Open(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to open document: %w", err)
		}
		jsonBytes, err := json.Marshal(state)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
