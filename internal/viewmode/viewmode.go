// Package viewmode decides whether a note opens read-only or editable.
package viewmode

import "github.com/jaewonE/foldernote/internal/marker"

// Mode is the view mode a note should open in.
type Mode string

const (
	// Preview is the read-only rendered view.
	Preview Mode = "preview"
	// Source is the editable plain-text view.
	Source Mode = "source"
)

// Select returns Preview when any of the note's tags is in the
// force-preview set, Source otherwise. Pure decision; applying the mode
// to a live view is the caller's job.
func Select(tags []string, forcePreview []string) Mode {
	if marker.HasAny(tags, forcePreview) {
		return Preview
	}
	return Source
}

// ViewPort is the capability surface of a live view. It keeps the mode
// decision independent of any concrete editor, so the pipeline is
// testable without one.
type ViewPort interface {
	Mode() Mode
	SetMode(Mode)
	// Reopen re-renders the current note under the mode set last.
	Reopen() error
}
