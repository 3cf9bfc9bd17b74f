package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jaewonE/foldernote/internal/apperr"
	"github.com/jaewonE/foldernote/internal/marker"
	"github.com/jaewonE/foldernote/internal/navservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *navservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *navservice.Service) *Handler {
	return &Handler{svc: svc}
}

// notePath extracts the note path from the URL (everything after /notes/).
// Supports encoded slashes from API clients (e.g. topics%2Fnote.md).
func notePath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// GetSession handles GET /api/session. An empty session is not an
// error: path comes back empty.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	path, mode := h.svc.ActiveNote(r.Context())
	tags := []string{}
	if path != "" {
		if info, err := h.svc.NoteInfo(r.Context(), path); err == nil {
			tags = info.Tags
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"path": path,
		"mode": string(mode),
		"tags": tags,
	})
}

// ActivateNote handles POST /api/session/active: the note-became-active
// navigation event.
func (h *Handler) ActivateNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	h.svc.Activate(r.Context(), req.Path)
	w.WriteHeader(http.StatusNoContent)
}

// OpenProjectNote handles POST /api/commands/open-project-note.
func (h *Handler) OpenProjectNote(w http.ResponseWriter, r *http.Request) {
	h.openTagged(w, r, marker.Primary)
}

// OpenMOCNote handles POST /api/commands/open-moc-note.
func (h *Handler) OpenMOCNote(w http.ResponseWriter, r *http.Request) {
	h.openTagged(w, r, marker.Secondary)
}

func (h *Handler) openTagged(w http.ResponseWriter, r *http.Request, t marker.TagType) {
	res, err := h.svc.OpenTagged(r.Context(), t)
	if err != nil {
		if errors.Is(err, apperr.ErrNoActiveNote) {
			// Command with nothing active: silent no-op.
			w.WriteHeader(http.StatusNoContent)
			return
		}
		slog.Error("open tagged ancestor failed",
			slog.String("type", t.String()),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetNoteInfo handles GET /api/notes/*.
func (h *Handler) GetNoteInfo(w http.ResponseWriter, r *http.Request) {
	path := notePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	info, err := h.svc.NoteInfo(r.Context(), path)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("note info failed", slog.String("path", path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// ListProjects handles GET /api/projects?type=primary|secondary.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	t := marker.Primary
	switch r.URL.Query().Get("type") {
	case "", "primary":
	case "secondary":
		t = marker.Secondary
	default:
		writeJSON(w, http.StatusBadRequest, errorBody("type must be primary or secondary"))
		return
	}
	paths, err := h.svc.ListProjects(r.Context(), t)
	if err != nil {
		slog.Error("list projects failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"type":  t.String(),
		"notes": paths,
	})
}

// CreateFleeting handles POST /api/fleeting.
func (h *Handler) CreateFleeting(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	path, err := h.svc.CreateFleeting(r.Context(), req.Title)
	if err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			writeJSON(w, http.StatusConflict, errorBody("note already exists"))
			return
		}
		slog.Error("create fleeting failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": path})
}

// GetSettings handles GET /api/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Settings(r.Context()))
}

// UpdateSettings handles PUT /api/settings. The body is decoded over
// the current record, so a partial edit keeps the other fields; the
// merged record is persisted in full before the response is written.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	req := h.svc.Settings(r.Context())
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.UpdateSettings(r.Context(), req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Settings(r.Context()))
}
