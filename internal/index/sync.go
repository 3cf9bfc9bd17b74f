package index

import (
	"log/slog"
	"time"

	"github.com/jaewonE/foldernote/internal/checksum"
	"github.com/jaewonE/foldernote/internal/frontmatter"
	"github.com/jaewonE/foldernote/internal/storage"
)

// Sync walks the vault and brings the tag index up to date:
//   - new/changed files have their front-matter tags re-extracted and upserted
//   - files removed from disk are deleted from the index
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexFile(db, m.Path, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteNote(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexFile extracts tags from data and upserts the entry.
func indexFile(db *DB, path string, data []byte) error {
	return db.UpsertNote(NoteRow{
		Path:      path,
		Checksum:  checksum.Sum(data),
		Tags:      frontmatter.ExtractTags(string(data)),
		UpdatedAt: time.Now(),
	})
}
