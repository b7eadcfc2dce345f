package student

import "context"

// DefaultFile is the default students.txt path.
const DefaultFile = "students.txt"

// Save writes one line per Student extent member to path, replacing the
// file. An empty path means DefaultFile.
func Save(path string) error {
	return SaveTo(context.Background(), NewFileStore(path))
}

// Load empties the Student extent and rebuilds it from path, re-validating
// every line and registering each Student in both extents. A missing file
// leaves the extent empty and is not an error.
func Load(path string) error {
	_, err := LoadFrom(context.Background(), NewFileStore(path))
	return err
}
