// Package uploads stores profile images under a single fixed directory
// and serves them back by sanitized filename.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ErrNoFileSelected means the client submitted the form without
	// choosing a file, or the filename sanitized away to nothing.
	ErrNoFileSelected = errors.New("no file selected")
	ErrNotFound       = errors.New("file not found")
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeFilename reduces an uploaded filename to a safe basename:
// path components are dropped, spaces become underscores, anything
// outside [A-Za-z0-9._-] is removed, and leading dots or dashes are
// trimmed so the result can never traverse out of the upload dir.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, ".-")
	if name == "." || name == ".." {
		return ""
	}
	return name
}

// Intake writes uploaded files into one fixed directory.
type Intake struct {
	dir string
}

func NewIntake(dir string) (*Intake, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Intake{dir: dir}, nil
}

// Store writes the uploaded file under its sanitized name and returns
// that name. A second upload sanitizing to the same name overwrites
// the first.
func (i *Intake) Store(fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Filename == "" {
		return "", ErrNoFileSelected
	}
	name := SanitizeFilename(fh.Filename)
	if name == "" {
		return "", ErrNoFileSelected
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(i.dir, name))
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return name, nil
}

// Path resolves a stored filename to its on-disk location. Lookups are
// confined to the upload directory no matter what path-like content
// the name carries; missing files return ErrNotFound.
func (i *Intake) Path(name string) (string, error) {
	name = SanitizeFilename(name)
	if name == "" {
		return "", ErrNotFound
	}
	p := filepath.Join(i.dir, name)
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", ErrNotFound
	}
	return p, nil
}

// Remove deletes a stored file. Used to back out an upload when the
// matching account insert fails.
func (i *Intake) Remove(name string) error {
	name = SanitizeFilename(name)
	if name == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(i.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}
