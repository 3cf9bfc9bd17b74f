// Package models defines the domain types for foldernote.
package models

import "time"

// NoteMetadata is a lightweight representation returned by list operations.
type NoteMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteInfo describes a single note as seen by the navigation pipeline:
// its front-matter tags and the view mode it would open in.
type NoteInfo struct {
	Path string   `json:"path"`
	Tags []string `json:"tags"`
	Mode string   `json:"mode"`
}
