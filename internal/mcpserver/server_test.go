package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jaewonE/foldernote/internal/index"
	"github.com/jaewonE/foldernote/internal/navservice"
	"github.com/jaewonE/foldernote/internal/resolver"
	"github.com/jaewonE/foldernote/internal/session"
	"github.com/jaewonE/foldernote/internal/settings"
	"github.com/jaewonE/foldernote/internal/storage"
)

func testServer(t *testing.T) (*Server, storage.Provider) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	st, err := settings.Open(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatal(err)
	}
	cfg := st.Get()
	cfg.DebounceMs = 0
	if err := st.Update(cfg); err != nil {
		t.Fatal(err)
	}

	dbFile, err := os.CreateTemp("", "foldernote-mcp-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	sess := session.NewManager(store, st.Get, nil, logger, nil)
	res := resolver.New(store, logger)
	svc := navservice.New(store, st, res, sess, db, logger, nil)

	srv := New(svc, store)
	return srv, store
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so we call the
	// handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "open_project_note":
		result, err = srv.openProjectNote(ctx, req)
	case "open_moc_note":
		result, err = srv.openMOCNote(ctx, req)
	case "get_active_note":
		result, err = srv.getActiveNote(ctx, req)
	case "activate_note":
		result, err = srv.activateNote(ctx, req)
	case "read_note":
		result, err = srv.readNote(ctx, req)
	case "list_project_notes":
		result, err = srv.listProjectNotes(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestActivateAndGetActiveNote(t *testing.T) {
	srv, store := testServer(t)
	_ = store.Write("A/A.md", []byte("---\ntags:\n- HOC\n---\n"))

	r := callTool(t, srv, "activate_note", map[string]interface{}{"path": "A/A.md"})
	if resultText(r) != "activated: A/A.md" {
		t.Errorf("activate result = %q", resultText(r))
	}

	r = callTool(t, srv, "get_active_note", map[string]interface{}{})
	if resultText(r) != "A/A.md (preview)" {
		t.Errorf("active note = %q", resultText(r))
	}
}

func TestGetActiveNoteEmpty(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_active_note", map[string]interface{}{})
	if resultText(r) != "no active note" {
		t.Errorf("result = %q", resultText(r))
	}
}

func TestActivateMissingNote(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "activate_note", map[string]interface{}{"path": "nope.md"})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
}

func TestOpenProjectNote(t *testing.T) {
	srv, store := testServer(t)
	_ = store.Write("A/A.md", []byte("---\ntags:\n- HOC\n---\n"))
	_ = store.Write("A/B/note.md", []byte("body"))

	_ = callTool(t, srv, "activate_note", map[string]interface{}{"path": "A/B/note.md"})

	r := callTool(t, srv, "open_project_note", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, `"found"`) || !strings.Contains(text, "A/A.md") {
		t.Errorf("resolution = %q", text)
	}
}

func TestOpenProjectNoteWithoutActive(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "open_project_note", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error without an active note")
	}
}

func TestReadNote(t *testing.T) {
	srv, store := testServer(t)
	_ = store.Write("test.md", []byte("# Test\nHello"))

	r := callTool(t, srv, "read_note", map[string]interface{}{"path": "test.md"})
	if resultText(r) != "# Test\nHello" {
		t.Errorf("read result = %q", resultText(r))
	}

	r = callTool(t, srv, "read_note", map[string]interface{}{"path": "nope.md"})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
}

func TestListProjectNotesEmpty(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "list_project_notes", map[string]interface{}{})
	if resultText(r) != "no tagged notes found" {
		t.Errorf("result = %q", resultText(r))
	}
}
