package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Default artifact paths, relative to the root
const (
	DefaultHTMLPath = "docs/index.html"
	DefaultJSONPath = "events.json"
	DefaultICSPath  = "docs/events.ics"
)

// Paths locates the artifacts relative to the root. Empty fields select the defaults.
type Paths struct {
	HTML string
	JSON string
	ICS  string
}

// Artifacts holds the rendered output of a run
type Artifacts struct {
	HTML string
	JSON []byte
	// ICS is empty when there is no calendar to publish; a stale feed is removed.
	ICS string
}

// Storage writes artifacts below a root directory
type Storage struct {
	root  string
	paths Paths
}

// New creates a new Storage instance
func New(root string, paths Paths) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(root, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		root = filepath.Join(home, root[2:])
	}
	if root == "" {
		root = "."
	}

	if paths.HTML == "" {
		paths.HTML = DefaultHTMLPath
	}
	if paths.JSON == "" {
		paths.JSON = DefaultJSONPath
	}
	if paths.ICS == "" {
		paths.ICS = DefaultICSPath
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Storage{root: root, paths: paths}, nil
}

// Root returns the expanded root directory
func (s *Storage) Root() string {
	return s.root
}

// Path resolves rel against the root. Absolute paths are returned unchanged.
func (s *Storage) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(s.root, rel)
}

// WriteArtifacts writes every artifact, creating parent directories.
// It returns the paths written.
func (s *Storage) WriteArtifacts(a Artifacts) ([]string, error) {
	written := make([]string, 0, 3)

	if err := s.writeFile(s.paths.HTML, []byte(a.HTML)); err != nil {
		return written, fmt.Errorf("writing HTML: %w", err)
	}
	written = append(written, s.Path(s.paths.HTML))

	if err := s.writeFile(s.paths.JSON, a.JSON); err != nil {
		return written, fmt.Errorf("writing JSON: %w", err)
	}
	written = append(written, s.Path(s.paths.JSON))

	if a.ICS == "" {
		if err := os.Remove(s.Path(s.paths.ICS)); err != nil && !os.IsNotExist(err) {
			return written, fmt.Errorf("removing stale calendar: %w", err)
		}
		return written, nil
	}
	if err := s.writeFile(s.paths.ICS, []byte(a.ICS)); err != nil {
		return written, fmt.Errorf("writing calendar: %w", err)
	}
	written = append(written, s.Path(s.paths.ICS))

	return written, nil
}

// ReadJSON returns the JSON feed from a previous run, or nil if none exists.
func (s *Storage) ReadJSON() ([]byte, error) {
	data, err := os.ReadFile(s.Path(s.paths.JSON))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading feed: %w", err)
	}
	return data, nil
}

func (s *Storage) writeFile(rel string, data []byte) error {
	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
