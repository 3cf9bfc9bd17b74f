package index

// TagIndex defines the interface for tag-index operations. Consumers
// should depend on this interface rather than the concrete *DB type to
// facilitate testing with mocks.
type TagIndex interface {
	UpsertNote(n NoteRow) error
	DeleteNote(path string) error
	GetChecksum(path string) (string, error)
	AllChecksums() (map[string]string, error)
	ListByTag(tag string) ([]string, error)
	Close() error
}

// Verify *DB satisfies TagIndex at compile time.
var _ TagIndex = (*DB)(nil)
