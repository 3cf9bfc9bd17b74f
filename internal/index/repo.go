package index

import (
	"encoding/json"
	"fmt"
	"time"
)

// NoteRow represents a row in the notes table.
type NoteRow struct {
	Path      string
	Checksum  string
	Tags      []string
	UpdatedAt time.Time
}

// UpsertNote inserts or replaces a note's tag entry.
func (db *DB) UpsertNote(n NoteRow) error {
	tagsJSON, _ := json.Marshal(n.Tags)
	_, err := db.conn.Exec(`
		INSERT INTO notes (path, checksum, tags, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			checksum   = excluded.checksum,
			tags       = excluded.tags,
			updated_at = excluded.updated_at
	`, n.Path, n.Checksum, string(tagsJSON), n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert note: %w", err)
	}
	return nil
}

// DeleteNote removes a note from the index.
func (db *DB) DeleteNote(path string) error {
	if _, err := db.conn.Exec(`DELETE FROM notes WHERE path = ?`, path); err != nil {
		return fmt.Errorf("index: delete note: %w", err)
	}
	return nil
}

// GetChecksum returns the stored checksum for a note, or empty string if not found.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM notes WHERE path = ?`, path).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// AllChecksums returns path → checksum for every indexed note.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM notes`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// ListByTag returns the paths of all notes whose tag list contains tag,
// sorted by path. Matching is exact and case-sensitive: instr over the
// quoted JSON form avoids SQLite's case-folding LIKE.
func (db *DB) ListByTag(tag string) ([]string, error) {
	needle, _ := json.Marshal(tag)
	rows, err := db.conn.Query(
		`SELECT path FROM notes WHERE instr(tags, ?) > 0 ORDER BY path`,
		string(needle))
	if err != nil {
		return nil, fmt.Errorf("index: list by tag: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
