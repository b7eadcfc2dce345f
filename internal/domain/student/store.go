package student

import (
	"context"

	"github.com/pjatk/academic-registry/internal/domain/person"
)

// Store persists the Student extent as an ordered list of records.
// Implementations live in infrastructure/persistence.
type Store interface {
	// SaveAll replaces the stored records with records, keeping their order.
	SaveAll(ctx context.Context, records []Record) error

	// LoadAll returns the stored records in order. On a malformed entry it
	// returns the records decoded before it together with the error.
	LoadAll(ctx context.Context) ([]Record, error)
}

// SaveTo writes every Student extent member to store.
func SaveTo(ctx context.Context, store Store) error {
	members := extent.Snapshot()
	records := make([]Record, 0, len(members))
	for _, s := range members {
		records = append(records, s.Record())
	}
	return store.SaveAll(ctx, records)
}

// LoadFrom empties the Student extent and rebuilds it from store through
// the full construction path. Loading is not transactional: on error, the
// Students rebuilt before the failing record stay registered.
// It returns the number of Students rebuilt.
func LoadFrom(ctx context.Context, store Store) (int, error) {
	extent.Reset()

	records, loadErr := store.LoadAll(ctx)
	for i, r := range records {
		if _, err := FromRecord(r); err != nil {
			return i, err
		}
	}
	return len(records), loadErr
}

// FileStore is a Store backed by a students.txt file.
type FileStore struct {
	Path string
}

// NewFileStore creates a FileStore. An empty path means DefaultFile.
func NewFileStore(path string) FileStore {
	if path == "" {
		path = DefaultFile
	}
	return FileStore{Path: path}
}

// SaveAll writes one line per record, replacing the file.
func (fs FileStore) SaveAll(_ context.Context, records []Record) error {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, FormatRecord(r))
	}
	return person.WriteLines(fs.Path, lines)
}

// LoadAll parses the file. A missing file yields no records and no error.
func (fs FileStore) LoadAll(_ context.Context) ([]Record, error) {
	var records []Record
	err := person.ReadLines(fs.Path, func(line string) error {
		r, err := ParseRecord(line)
		if err != nil {
			return err
		}
		records = append(records, r)
		return nil
	})
	return records, err
}
