// Package storage defines the vault file-system abstraction.
package storage

import "github.com/jaewonE/foldernote/internal/models"

// Provider is the interface for vault file operations. The resolution
// pipeline only ever reads; Write exists for fleeting-note capture and
// the settings record.
type Provider interface {
	// Exists reports whether a file exists at path (relative to vault root).
	Exists(path string) bool
	// Read returns the raw bytes of the file at path (relative to vault root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to vault root).
	Write(path string, content []byte) error
	// List returns metadata for every .md file under dir (relative to vault root).
	List(dir string) ([]models.NoteMetadata, error)
}
