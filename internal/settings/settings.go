// Package settings holds the persisted marker configuration: the flat,
// user-editable record that names the marker tags, the force-preview
// set, the navigation debounce, and the fleeting-capture folder.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jaewonE/foldernote/internal/marker"
)

// Settings is the flat configuration record. It is loaded once at
// startup by merging the stored file over Defaults (missing keys keep
// their default) and written back in full on every mutation.
type Settings struct {
	PrimaryTag       string   `json:"primary_tag"`
	SecondaryTag     string   `json:"secondary_tag"`
	ForcePreviewTags []string `json:"force_preview_tags"`
	DebounceMs       int      `json:"debounce_ms"`
	FleetingFolder   string   `json:"fleeting_folder"`
}

// Defaults returns the stock record.
func Defaults() Settings {
	return Settings{
		PrimaryTag:       "HOC",
		SecondaryTag:     "MOC",
		ForcePreviewTags: []string{"HOC", "MOC"},
		DebounceMs:       300,
		FleetingFolder:   "00.Fleeting",
	}
}

// Validate validates the record.
func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.PrimaryTag, validation.Required),
		validation.Field(&s.SecondaryTag, validation.Required),
		validation.Field(&s.DebounceMs, validation.Min(0)),
		validation.Field(&s.FleetingFolder, validation.Required),
	)
}

// MarkerFor returns the marker tag configured for the given lookup type.
func (s Settings) MarkerFor(t marker.TagType) string {
	if t == marker.Secondary {
		return s.SecondaryTag
	}
	return s.PrimaryTag
}

// clone deep-copies the record so callers can't alias the stored slice.
func (s Settings) clone() Settings {
	out := s
	out.ForcePreviewTags = append([]string(nil), s.ForcePreviewTags...)
	return out
}

// Store is the settings record with its backing file. Reads are
// concurrent; mutation happens only through Update, which persists the
// full record before swapping it in.
type Store struct {
	mu   sync.RWMutex
	path string
	cur  Settings
}

// Open loads the record at path, merged over Defaults. A missing file
// is not an error: the store starts from Defaults and the file is
// created on the first mutation.
func Open(path string) (*Store, error) {
	cur := Defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// First run.
	case err != nil:
		return nil, fmt.Errorf("settings: read %s: %w", path, err)
	default:
		if err := json.Unmarshal(data, &cur); err != nil {
			return nil, fmt.Errorf("settings: parse %s: %w", path, err)
		}
	}

	if err := cur.Validate(); err != nil {
		return nil, fmt.Errorf("settings: invalid record in %s: %w", path, err)
	}
	return &Store{path: path, cur: cur}, nil
}

// Get returns a copy of the current record.
func (st *Store) Get() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.cur.clone()
}

// Update validates s, writes the full record to disk, and makes it
// current. The in-memory record is untouched when persisting fails.
func (st *Store) Update(s Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := os.WriteFile(st.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("settings: write %s: %w", st.path, err)
	}
	st.cur = s.clone()
	return nil
}
