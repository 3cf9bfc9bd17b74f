// Package resolver locates the nearest ancestor folder note carrying a
// marker tag. A folder note is a note named after its containing folder
// and stored at that folder's level ("A/B/B.md" is the folder note of
// "A/B").
package resolver

import (
	"log/slog"
	"path"
	"strings"

	"github.com/jaewonE/foldernote/internal/frontmatter"
	"github.com/jaewonE/foldernote/internal/marker"
	"github.com/jaewonE/foldernote/internal/storage"
)

// Kind discriminates a resolution outcome.
type Kind int

const (
	// Found means a tagged ancestor folder note was located.
	Found Kind = iota
	// Fallback means the walk exhausted every ancestor level without a
	// hit. Mapping Fallback to a concrete target (root README or a
	// user-visible notice) is the caller's job.
	Fallback
)

// Result is the outcome of one ancestor walk. Nothing is cached; a
// Result is recomputed from the store on every call.
type Result struct {
	Kind Kind
	// Path is the resolved folder note, set when Kind == Found.
	Path string
}

// Resolver walks ancestor folder notes against a vault store.
type Resolver struct {
	store storage.Provider
	log   *slog.Logger
}

// New creates a Resolver over the given store.
func New(store storage.Provider, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{store: store, log: log}
}

// Resolve walks candidate folder notes for notePath from nearest to
// root and returns the first one whose front matter carries tag.
//
// For a path "A/B/C/C.md" the candidates are, in order, "A/B/C/C.md",
// "A/B/B.md", "A/A.md". Missing candidates are skipped. An unreadable
// candidate is logged and treated as if the tag were absent, so one bad
// file never aborts the walk. When skipSelf is set, a candidate equal
// to notePath itself is passed over without being read: invoking the
// lookup from inside a project note walks on to the next enclosing one
// instead of resolving to the note already open.
//
// A root-level path has no ancestor levels and yields Fallback without
// touching the store.
func (r *Resolver) Resolve(notePath, tag string, skipSelf bool) Result {
	segs := strings.Split(path.Clean(notePath), "/")

	for i := len(segs) - 1; i >= 1; i-- {
		cand := path.Join(strings.Join(segs[:i], "/"), segs[i-1]+".md")

		if skipSelf && cand == notePath {
			continue
		}
		if !r.store.Exists(cand) {
			continue
		}
		data, err := r.store.Read(cand)
		if err != nil {
			r.log.Warn("resolve: candidate unreadable, continuing walk",
				slog.String("candidate", cand),
				slog.String("error", err.Error()))
			continue
		}
		if marker.Has(frontmatter.ExtractTags(string(data)), tag) {
			return Result{Kind: Found, Path: cand}
		}
	}

	return Result{Kind: Fallback}
}
