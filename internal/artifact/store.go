// Package artifact persists rendered briefings as plain files on disk,
// keyed by job id. There is no database; the files are the only output that
// outlives the process.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Artifact describes one stored briefing.
type Artifact struct {
	ID       string
	Filename string
	Filepath string
}

// Store writes briefing files under a single directory.
type Store struct {
	dir string
}

// NewStore creates the directory if needed and returns a Store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating artifact directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the Markdown briefing for a job id and returns its location.
// The id must already be filename-safe; anything else is rejected.
func (s *Store) Save(id, markdown string) (Artifact, error) {
	if !SafeID(id) {
		return Artifact{}, fmt.Errorf("unsafe artifact id %q", id)
	}

	filename := fmt.Sprintf("research_briefing_%s.md", id)
	path := filepath.Join(s.dir, filename)

	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return Artifact{}, fmt.Errorf("writing briefing %s: %w", path, err)
	}

	return Artifact{ID: id, Filename: filename, Filepath: path}, nil
}

// Path returns the briefing path for an id, or an error when it does not
// exist.
func (s *Store) Path(id string) (string, error) {
	if !SafeID(id) {
		return "", fmt.Errorf("unsafe artifact id %q", id)
	}
	path := filepath.Join(s.dir, fmt.Sprintf("research_briefing_%s.md", id))
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("briefing for %s: %w", id, err)
	}
	return path, nil
}

// SafeID reports whether id can be embedded in a filename and URL path
// segment: digits and dots only (timestamp-derived ids), bounded length.
func SafeID(id string) bool {
	if id == "" || len(id) > 50 {
		return false
	}
	for _, r := range id {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return !strings.Contains(id, "..")
}
