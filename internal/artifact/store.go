package artifact

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Artifact file names.
const (
	// AllURLs holds every deduplicated, sorted, non-static URL.
	AllURLs = "wayback_urls.txt"

	// RegularURLs holds only URLs without a recognized file extension.
	RegularURLs = "wayback_url.txt"

	// Endpoints holds the sorted endpoint keys.
	Endpoints = "endpoints.txt"

	// Parameters holds the sorted parameter names, each suffixed with '='.
	Parameters = "parameters.txt"
)

// ExtensionFile returns the artifact name for an extension bucket.
func ExtensionFile(ext string) string {
	return ext + ".txt"
}

// Store persists line lists keyed by domain and artifact name.
type Store interface {
	// Write replaces the artifact with lines, one per line.
	Write(domain, name string, lines []string) error

	// Read returns the artifact's lines. It returns an error wrapping
	// ErrNotFound if the artifact does not exist.
	Read(domain, name string) ([]string, error)

	// Path returns a human-readable location of the artifact.
	Path(domain, name string) string
}

// FileStore stores artifacts as text files under a base directory, one
// directory per domain.
type FileStore struct {
	// baseDir is the directory domain directories are created in.
	baseDir string
}

// NewFileStore creates a FileStore rooted at baseDir.
// An empty baseDir means the current directory.
func NewFileStore(baseDir string) *FileStore {
	if baseDir == "" {
		baseDir = "."
	}
	return &FileStore{baseDir: baseDir}
}

// BaseDir returns the root directory of the store.
func (s *FileStore) BaseDir() string {
	return s.baseDir
}

// Dir returns the output directory for domain.
func (s *FileStore) Dir(domain string) string {
	return filepath.Join(s.baseDir, domain)
}

// Path returns the file path of the artifact.
func (s *FileStore) Path(domain, name string) string {
	return filepath.Join(s.baseDir, domain, name)
}

// Write creates the domain directory if needed and replaces the artifact
// file. The content is written to a temporary file first and renamed into
// place, so readers never see a partially written list.
func (s *FileStore) Write(domain, name string, lines []string) error {
	if err := validate(domain, name); err != nil {
		return err
	}

	dir := s.Dir(domain)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil { //nolint:gosec // output lists are meant to be shared
		return fmt.Errorf("failed to set permissions on %s: %w", name, err)
	}

	path := s.Path(domain, name)
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Read returns the lines of the artifact file without trailing newlines.
func (s *FileStore) Read(domain, name string) ([]string, error) {
	if err := validate(domain, name); err != nil {
		return nil, err
	}

	path := s.Path(domain, name)
	f, err := os.Open(path) //nolint:gosec // path is built from the validated domain
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}

// maxLineSize bounds a single stored record.
const maxLineSize = 1024 * 1024

// ValidateDomain checks that domain can be used as a directory name.
func ValidateDomain(domain string) error {
	if domain == "" || domain == "." || domain == ".." || strings.ContainsAny(domain, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidDomain, domain)
	}
	return nil
}

func validate(domain, name string) error {
	if err := ValidateDomain(domain); err != nil {
		return err
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
