package person

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// DefaultFile is the default persons.txt path.
const DefaultFile = "persons.txt"

// Save writes one line per Person extent member to path, replacing the file.
// An empty path means DefaultFile.
func Save(path string) error {
	if path == "" {
		path = DefaultFile
	}

	lines := make([]string, 0, extent.Len())
	for _, p := range extent.Snapshot() {
		lines = append(lines, FormatRecord(p.Base().Record()))
	}
	return WriteLines(path, lines)
}

// Load empties the Person extent and parses path. A missing file leaves the
// extent empty and is not an error.
//
// Person cannot rebuild instances generically: the parsed records are
// returned so that a concrete type can reconstruct and register them.
func Load(path string) ([]Record, error) {
	if path == "" {
		path = DefaultFile
	}
	extent.Reset()

	var records []Record
	err := ReadLines(path, func(line string) error {
		r, err := ParseRecord(line)
		if err != nil {
			return err
		}
		records = append(records, r)
		return nil
	})
	return records, err
}

// WriteLines writes lines to path, one per line, truncating the file first.
func WriteLines(path string, lines []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return errors.Wrapf(err, "write %s", path)
		}
	}
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "flush %s", path)
	}
	return nil
}

// ReadLines calls fn for every non-blank line of path in order and stops at
// the first error. Lines have no length limit. A missing file yields no lines
// and no error.
func ReadLines(path string, fn func(line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		line, readErr := r.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return errors.Wrapf(readErr, "read %s", path)
		}

		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if strings.TrimSpace(line) != "" {
			if err := fn(line); err != nil {
				return err
			}
		}

		if readErr == io.EOF {
			return nil
		}
	}
}
