package session

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jaewonE/foldernote/internal/settings"
	"github.com/jaewonE/foldernote/internal/storage"
	"github.com/jaewonE/foldernote/internal/viewmode"
)

// fakeViewPort records mode changes and reopens.
type fakeViewPort struct {
	mu      sync.Mutex
	mode    viewmode.Mode
	reopens int
}

func (f *fakeViewPort) Mode() viewmode.Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

func (f *fakeViewPort) SetMode(m viewmode.Mode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = m
}

func (f *fakeViewPort) Reopen() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reopens++
	return nil
}

func (f *fakeViewPort) reopenCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reopens
}

func testSettings(debounceMs int) func() settings.Settings {
	return func() settings.Settings {
		s := settings.Defaults()
		s.DebounceMs = debounceMs
		return s
	}
}

func testVault(t *testing.T) storage.Provider {
	t.Helper()
	store, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestActivate_ForcesPreviewForTaggedNote(t *testing.T) {
	store := testVault(t)
	_ = store.Write("A/A.md", []byte("---\ntags:\n- MOC\n---\n"))

	vp := &fakeViewPort{mode: viewmode.Source}
	var mu sync.Mutex
	var events []string
	m := NewManager(store, testSettings(0), vp, quietLogger(), func(kind, path, detail string) {
		mu.Lock()
		events = append(events, kind+":"+path+":"+detail)
		mu.Unlock()
	})

	m.Activate("A/A.md")

	if m.Mode() != viewmode.Preview {
		t.Errorf("mode = %q, want preview", m.Mode())
	}
	if vp.Mode() != viewmode.Preview {
		t.Errorf("viewport mode = %q, want preview", vp.Mode())
	}
	if vp.reopenCount() != 1 {
		t.Errorf("reopens = %d, want 1", vp.reopenCount())
	}
	mu.Lock()
	defer mu.Unlock()
	want := []string{"mode.changed:A/A.md:preview", "note.activated:A/A.md:preview"}
	if len(events) != 2 || events[0] != want[0] || events[1] != want[1] {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestActivate_PlainNoteStaysSource(t *testing.T) {
	store := testVault(t)
	_ = store.Write("note.md", []byte("---\ntags:\n- Draft\n---\n"))

	vp := &fakeViewPort{mode: viewmode.Source}
	m := NewManager(store, testSettings(0), vp, quietLogger(), nil)
	m.Activate("note.md")

	if m.Mode() != viewmode.Source {
		t.Errorf("mode = %q, want source", m.Mode())
	}
	if vp.reopenCount() != 0 {
		t.Errorf("reopens = %d, want 0 when mode is unchanged", vp.reopenCount())
	}
}

func TestActivate_MissingNoteTreatedAsUntagged(t *testing.T) {
	store := testVault(t)
	m := NewManager(store, testSettings(0), nil, quietLogger(), nil)
	m.Activate("ghost.md")

	if m.Active() != "ghost.md" {
		t.Errorf("active = %q", m.Active())
	}
	if m.Mode() != viewmode.Source {
		t.Errorf("mode = %q, want source for unreadable note", m.Mode())
	}
}

func TestActivate_DebounceCoalesces(t *testing.T) {
	store := testVault(t)
	_ = store.Write("a.md", []byte("---\ntags:\n- MOC\n---\n"))
	_ = store.Write("b.md", []byte("plain"))

	vp := &fakeViewPort{mode: viewmode.Source}
	m := NewManager(store, testSettings(30), vp, quietLogger(), nil)

	// Rapid succession: only the last activation may apply.
	m.Activate("a.md")
	m.Activate("b.md")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if m.Active() == "b.md" && m.Mode() == viewmode.Source {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if m.Active() != "b.md" {
		t.Errorf("active = %q, want b.md", m.Active())
	}
	// a.md's preview decision must never have reached the viewport.
	time.Sleep(100 * time.Millisecond)
	if vp.Mode() != viewmode.Source {
		t.Errorf("viewport mode = %q, want source (a.md was superseded)", vp.Mode())
	}
}

func TestNilViewPort(t *testing.T) {
	store := testVault(t)
	_ = store.Write("A/A.md", []byte("---\ntags:\n- HOC\n---\n"))

	m := NewManager(store, testSettings(0), nil, quietLogger(), nil)
	m.Activate("A/A.md")
	if m.Mode() != viewmode.Preview {
		t.Errorf("mode = %q, want preview even without a viewport", m.Mode())
	}
}
