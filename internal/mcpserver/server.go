// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes foldernote navigation tools for LLM integration via
// stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jaewonE/foldernote/internal/apperr"
	"github.com/jaewonE/foldernote/internal/marker"
	"github.com/jaewonE/foldernote/internal/navservice"
	"github.com/jaewonE/foldernote/internal/storage"
)

// Server wraps the MCP server with foldernote tools.
type Server struct {
	mcp   *server.MCPServer
	svc   *navservice.Service
	store storage.Provider
}

// New creates a new MCP server with all foldernote tools registered.
func New(svc *navservice.Service, store storage.Provider) *Server {
	s := &Server{svc: svc, store: store}

	s.mcp = server.NewMCPServer(
		"Foldernote",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("open_project_note",
		mcp.WithDescription("Jump from the active note to its nearest ancestor "+
			"folder note tagged as a project (HOC by default). Returns the "+
			"resolution: found with a path, fallback to the vault root note, "+
			"or not_found."),
	), s.openProjectNote)

	s.mcp.AddTool(mcp.NewTool("open_moc_note",
		mcp.WithDescription("Jump from the active note to its nearest ancestor "+
			"folder note tagged as a map of content (MOC by default)."),
	), s.openMOCNote)

	s.mcp.AddTool(mcp.NewTool("get_active_note",
		mcp.WithDescription("Return the currently active note path and its view mode."),
	), s.getActiveNote)

	s.mcp.AddTool(mcp.NewTool("activate_note",
		mcp.WithDescription("Make a note the active one, as if it were opened "+
			"in the editor. The view mode is decided from its frontmatter tags."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note (e.g. folder/note.md)")),
	), s.activateNote)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full content of a Markdown note."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note (e.g. folder/note.md)")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("list_project_notes",
		mcp.WithDescription("List all notes carrying the project or map-of-content "+
			"marker tag. Read the foldernote://convention resource for how the "+
			"folder note convention works."),
		mcp.WithString("type", mcp.Description("Marker type: primary (default) or secondary")),
	), s.listProjectNotes)

	// Resource: folder note convention.
	s.mcp.AddResource(
		mcp.NewResource("foldernote://convention", "Folder Note Convention",
			mcp.WithResourceDescription("How folder notes, marker tags, and ancestor resolution work."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readConventionResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) openProjectNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.openTagged(ctx, marker.Primary)
}

func (s *Server) openMOCNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.openTagged(ctx, marker.Secondary)
}

func (s *Server) openTagged(ctx context.Context, t marker.TagType) (*mcp.CallToolResult, error) {
	res, err := s.svc.OpenTagged(ctx, t)
	if err != nil {
		if errors.Is(err, apperr.ErrNoActiveNote) {
			return mcp.NewToolResultError("no active note; call activate_note first"), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getActiveNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, mode := s.svc.ActiveNote(ctx)
	if path == "" {
		return mcp.NewToolResultText("no active note"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s (%s)", path, mode)), nil
}

func (s *Server) activateNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !s.store.Exists(path) {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	s.svc.Activate(ctx, path)
	return mcp.NewToolResultText(fmt.Sprintf("activated: %s", path)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) listProjectNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t := marker.Primary
	if v, err := req.RequireString("type"); err == nil && v != "" {
		switch v {
		case "primary":
		case "secondary":
			t = marker.Secondary
		default:
			return mcp.NewToolResultError("type must be primary or secondary"), nil
		}
	}
	paths, err := s.svc.ListProjects(ctx, t)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(paths) == 0 {
		return mcp.NewToolResultText("no tagged notes found"), nil
	}
	return mcp.NewToolResultText(strings.Join(paths, "\n")), nil
}

func (s *Server) readConventionResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "foldernote://convention",
			MIMEType: "text/markdown",
			Text:     ConventionDoc,
		},
	}, nil
}
