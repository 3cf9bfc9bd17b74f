// Package session tracks the active note and applies view-mode
// decisions to it. It is the process-wide stand-in for an editor host:
// activating a note is the "note became active" event, and the attached
// ViewPort is the live view the decided mode is applied to.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jaewonE/foldernote/internal/frontmatter"
	"github.com/jaewonE/foldernote/internal/settings"
	"github.com/jaewonE/foldernote/internal/storage"
	"github.com/jaewonE/foldernote/internal/viewmode"
)

// EventCallback is invoked after a session change. kind is one of
// "note.activated" or "mode.changed"; detail carries the view mode.
type EventCallback func(kind, path, detail string)

// Manager owns the active-note state. Rapid successive activations are
// coalesced with the configured debounce before the mode pipeline runs,
// so scrolling through notes does not trigger a read per keystroke.
type Manager struct {
	store storage.Provider
	cfg   func() settings.Settings
	log   *slog.Logger
	cb    EventCallback

	mu     sync.Mutex
	vp     viewmode.ViewPort
	active string
	mode   viewmode.Mode
	timer  *time.Timer
}

// NewManager creates a session manager. cfg supplies the current
// settings snapshot per invocation; vp may be nil when no live view is
// attached (mode decisions are still recorded and broadcast).
func NewManager(store storage.Provider, cfg func() settings.Settings, vp viewmode.ViewPort, log *slog.Logger, cb EventCallback) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{store: store, cfg: cfg, log: log, cb: cb, vp: vp, mode: viewmode.Source}
}

// Activate records path as the newly active note and schedules the
// view-mode pipeline. With a zero debounce the pipeline runs before
// Activate returns; otherwise a pending activation is superseded by the
// next one.
func (m *Manager) Activate(path string) {
	m.mu.Lock()
	m.active = path
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	d := time.Duration(m.cfg().DebounceMs) * time.Millisecond
	if d <= 0 {
		m.mu.Unlock()
		m.applyMode(path)
		return
	}
	m.timer = time.AfterFunc(d, func() { m.applyMode(path) })
	m.mu.Unlock()
}

// Active returns the active note path, or "" when nothing is active.
func (m *Manager) Active() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Mode returns the view mode decided for the active note.
func (m *Manager) Mode() viewmode.Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// applyMode runs extract → select → apply for path. A stale invocation
// (the active note moved on while the debounce was pending) is dropped.
func (m *Manager) applyMode(path string) {
	tags := m.readTags(path)
	mode := viewmode.Select(tags, m.cfg().ForcePreviewTags)

	m.mu.Lock()
	if m.active != path {
		m.mu.Unlock()
		return
	}
	changed := m.mode != mode
	m.mode = mode
	vp := m.vp
	m.mu.Unlock()

	if vp != nil && vp.Mode() != mode {
		vp.SetMode(mode)
		if err := vp.Reopen(); err != nil {
			m.log.Warn("session: reopen failed",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
	}

	if m.cb != nil {
		if changed {
			m.cb("mode.changed", path, string(mode))
		}
		m.cb("note.activated", path, string(mode))
	}
}

// readTags reads the note and extracts its front-matter tags. An
// unreadable note is logged and treated as having no tags.
func (m *Manager) readTags(path string) []string {
	data, err := m.store.Read(path)
	if err != nil {
		m.log.Warn("session: read failed, treating note as untagged",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil
	}
	return frontmatter.ExtractTags(string(data))
}
