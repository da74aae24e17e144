// Package assets is the filesystem boundary for uploaded card images and
// derived face crops. Filenames are derived from the identity number, never
// taken from the client, so the identity number is validated before it is
// used as a path component.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"cccd-intake/internal/sentinel"
)

// identityNumberPattern restricts identity numbers to characters that are safe
// as a filesystem key. Path separators and control characters never match.
var identityNumberPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ValidateIDNumber rejects identity numbers that cannot be used as a storage
// key.
func ValidateIDNumber(idNumber string) error {
	if idNumber == "" {
		return fmt.Errorf("identity number is required: %w", sentinel.ErrInvalidInput)
	}
	if !identityNumberPattern.MatchString(idNumber) {
		return fmt.Errorf("identity number %q contains unsafe characters: %w", idNumber, sentinel.ErrInvalidInput)
	}
	return nil
}

// Derived asset names. These must stay bit-exact: the save step re-derives
// them to check upload completeness, and clients fetch them back verbatim.

func FrontName(idNumber string) string {
	return fmt.Sprintf("cccd_front_%s.jpg", idNumber)
}

func BackName(idNumber string) string {
	return fmt.Sprintf("cccd_back_%s.jpg", idNumber)
}

func FaceName(idNumber string) string {
	return fmt.Sprintf("cccd_face_%s.jpg", idNumber)
}

// Store persists image assets under a single directory.
type Store struct {
	dir string
}

// New creates the asset directory if needed and returns a Store rooted there.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create asset directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the root directory, used by the image-serving route.
func (s *Store) Dir() string {
	return s.dir
}

// Path resolves an asset name to its full path. Names containing path
// separators are rejected so a crafted name cannot escape the directory.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid asset name %q: %w", name, sentinel.ErrInvalidInput)
	}
	return filepath.Join(s.dir, name), nil
}

// Save writes an asset atomically: temp file, then rename. A repeated save
// under the same name overwrites the previous asset, it never accumulates.
func (s *Store) Save(name string, data []byte) error {
	fullPath, err := s.Path(name)
	if err != nil {
		return err
	}
	tmpPath := fullPath + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0o640); err != nil {
		return fmt.Errorf("write asset %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename asset %s: %w", name, err)
	}
	return nil
}

// Exists reports whether an asset with the given name is on disk.
func (s *Store) Exists(name string) bool {
	fullPath, err := s.Path(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(fullPath)
	return err == nil && !info.IsDir()
}
