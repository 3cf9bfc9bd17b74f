// Package navservice coordinates storage, settings, the ancestor
// resolver, the session, and the tag index behind the command surface.
package navservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/jaewonE/foldernote/internal/apperr"
	"github.com/jaewonE/foldernote/internal/frontmatter"
	"github.com/jaewonE/foldernote/internal/index"
	"github.com/jaewonE/foldernote/internal/marker"
	"github.com/jaewonE/foldernote/internal/models"
	"github.com/jaewonE/foldernote/internal/resolver"
	"github.com/jaewonE/foldernote/internal/session"
	"github.com/jaewonE/foldernote/internal/settings"
	"github.com/jaewonE/foldernote/internal/storage"
	"github.com/jaewonE/foldernote/internal/viewmode"
)

// FallbackNote is the fixed root-level note opened when an ancestor
// walk exhausts every level without a hit.
const FallbackNote = "README.md"

// Resolution statuses.
const (
	StatusFound    = "found"
	StatusFallback = "fallback"
	StatusNotFound = "not_found"
)

// Resolution is the outcome of an open-tagged-ancestor command.
type Resolution struct {
	Status string `json:"status"`
	// Path is the note that was opened (found or fallback).
	Path string `json:"path,omitempty"`
	// Marker is the tag that was sought; on not_found it is what the
	// user-visible notice names.
	Marker string `json:"marker"`
}

// NoticeFunc receives the transient user-visible message emitted when
// resolution falls through to not_found.
type NoticeFunc func(message string)

// Service is the navigation service.
type Service struct {
	store    storage.Provider
	settings *settings.Store
	res      *resolver.Resolver
	session  *session.Manager
	db       index.TagIndex
	log      *slog.Logger
	notify   NoticeFunc
}

// New creates the navigation service. notify may be nil.
func New(store storage.Provider, st *settings.Store, res *resolver.Resolver, sess *session.Manager, db index.TagIndex, log *slog.Logger, notify NoticeFunc) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, settings: st, res: res, session: sess, db: db, log: log, notify: notify}
}

// Activate handles the note-became-active navigation event.
func (s *Service) Activate(_ context.Context, notePath string) {
	s.session.Activate(notePath)
}

// ActiveNote returns the active note path ("" when none) and its mode.
func (s *Service) ActiveNote(_ context.Context) (string, viewmode.Mode) {
	return s.session.Active(), s.session.Mode()
}

// NoteInfo reads a note and reports its tags and the view mode it
// would open in.
func (s *Service) NoteInfo(_ context.Context, notePath string) (*models.NoteInfo, error) {
	data, err := s.store.Read(notePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	tags := frontmatter.ExtractTags(string(data))
	mode := viewmode.Select(tags, s.settings.Get().ForcePreviewTags)
	return &models.NoteInfo{
		Path: notePath,
		Tags: nonNilSlice(tags),
		Mode: string(mode),
	}, nil
}

// OpenTagged resolves the nearest ancestor folder note carrying the
// marker for t, starting from the active note, and opens the result.
// Invoked from inside a matching folder note the walk skips past it.
// Returns apperr.ErrNoActiveNote when nothing is active, which callers
// treat as a silent no-op.
func (s *Service) OpenTagged(ctx context.Context, t marker.TagType) (*Resolution, error) {
	active := s.session.Active()
	if active == "" {
		return nil, apperr.ErrNoActiveNote
	}

	tag := s.settings.Get().MarkerFor(t)
	r := s.res.Resolve(active, tag, true)

	if r.Kind == resolver.Found {
		s.log.Debug("resolved tagged ancestor",
			slog.String("from", active),
			slog.String("to", r.Path),
			slog.String("marker", tag))
		s.Activate(ctx, r.Path)
		return &Resolution{Status: StatusFound, Path: r.Path, Marker: tag}, nil
	}

	// Exhausted walk: fall back to the root note when it exists,
	// otherwise surface a transient notice naming the marker sought.
	if s.store.Exists(FallbackNote) {
		s.Activate(ctx, FallbackNote)
		return &Resolution{Status: StatusFallback, Path: FallbackNote, Marker: tag}, nil
	}

	msg := fmt.Sprintf("no folder note tagged %q found above %s", tag, active)
	if s.notify != nil {
		s.notify(msg)
	}
	s.log.Info("resolution exhausted", slog.String("from", active), slog.String("marker", tag))
	return &Resolution{Status: StatusNotFound, Marker: tag}, nil
}

// ListProjects returns the indexed paths of every note carrying the
// marker configured for t.
func (s *Service) ListProjects(_ context.Context, t marker.TagType) ([]string, error) {
	paths, err := s.db.ListByTag(s.settings.Get().MarkerFor(t))
	if err != nil {
		return nil, err
	}
	return nonNilSlice(paths), nil
}

// CreateFleeting creates a timestamped note in the configured fleeting
// folder, indexes it, and activates it. Returns the new note's path.
func (s *Service) CreateFleeting(ctx context.Context, title string) (string, error) {
	cfg := s.settings.Get()

	stem := time.Now().Format("20060102-150405")
	if t := sanitizeTitle(title); t != "" {
		stem += " " + t
	}
	notePath := path.Join(cfg.FleetingFolder, stem+".md")

	if s.store.Exists(notePath) {
		return "", apperr.ErrAlreadyExists
	}

	content := fmt.Sprintf("---\ncreated: %s\ntags:\n- Fleeting\n---\n\n# %s\n",
		time.Now().Format("2006-01-02"), strings.TrimSpace(title))
	if err := s.store.Write(notePath, []byte(content)); err != nil {
		return "", err
	}
	// The watcher will pick the file up as well; indexing here just
	// makes the note listable before the event arrives.
	data, err := s.store.Read(notePath)
	if err == nil {
		_ = s.db.UpsertNote(index.NoteRow{
			Path:      notePath,
			Tags:      frontmatter.ExtractTags(string(data)),
			UpdatedAt: time.Now(),
		})
	}

	s.Activate(ctx, notePath)
	return notePath, nil
}

// Settings returns the current settings record.
func (s *Service) Settings(_ context.Context) settings.Settings {
	return s.settings.Get()
}

// UpdateSettings validates and persists a full settings record.
func (s *Service) UpdateSettings(_ context.Context, next settings.Settings) error {
	return s.settings.Update(next)
}

// sanitizeTitle strips path separators so a title can't steer the note
// out of the fleeting folder.
func sanitizeTitle(title string) string {
	title = strings.TrimSpace(title)
	title = strings.ReplaceAll(title, "/", "-")
	title = strings.ReplaceAll(title, "\\", "-")
	return strings.Trim(title, ".")
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
