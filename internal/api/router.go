package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaewonE/foldernote/internal/navservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *navservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Session: active note and navigation events.
	r.Get("/session", h.GetSession)
	r.Post("/session/active", h.ActivateNote)

	// Command surface.
	r.Post("/commands/open-project-note", h.OpenProjectNote)
	r.Post("/commands/open-moc-note", h.OpenMOCNote)

	// Note inspection.
	r.Get("/notes/*", h.GetNoteInfo)

	// Project-note listing (index-backed).
	r.Get("/projects", h.ListProjects)

	// Fleeting capture.
	r.Post("/fleeting", h.CreateFleeting)

	// Settings record.
	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.UpdateSettings)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
