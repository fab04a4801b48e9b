package media

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrPathOutsideRoot = errors.New("media path escapes the media root")

// CleanPath returns the canonical form of a path relative to the media root:
// slash-separated, without "." segments or duplicate slashes. Absolute paths,
// ".." segments and paths naming the root itself are rejected.
func CleanPath(relPath string) (string, error) {
	p := strings.ReplaceAll(strings.TrimSpace(relPath), "\\", "/")
	if p == "" || strings.HasPrefix(p, "/") || filepath.IsAbs(relPath) {
		return "", fmt.Errorf("%w: %q", ErrPathOutsideRoot, relPath)
	}
	for _, segment := range strings.Split(p, "/") {
		if segment == ".." {
			return "", fmt.Errorf("%w: %q", ErrPathOutsideRoot, relPath)
		}
	}
	clean := path.Clean(p)
	if clean == "." {
		return "", fmt.Errorf("%w: %q", ErrPathOutsideRoot, relPath)
	}
	return clean, nil
}

// LocalStore keeps uploaded files under a single root directory. Paths
// handed to it are relative to that root, as stored in employee_images.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) *LocalStore {
	if baseURL == "" {
		baseURL = "/media/"
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStore{
		root:    filepath.Clean(root),
		baseURL: baseURL,
	}
}

func (s *LocalStore) Root() string {
	return s.root
}

// URL returns the public address of a stored file.
func (s *LocalStore) URL(relPath string) string {
	if relPath == "" {
		return ""
	}
	clean := strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(relPath)), "/")
	escaped := (&url.URL{Path: clean}).EscapedPath()
	return s.baseURL + escaped
}

func (s *LocalStore) resolve(relPath string) (string, error) {
	if relPath == "" || filepath.IsAbs(relPath) {
		return "", fmt.Errorf("%w: %q", ErrPathOutsideRoot, relPath)
	}
	full := filepath.Join(s.root, filepath.FromSlash(relPath))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrPathOutsideRoot, relPath)
	}
	return full, nil
}

// Exists reports whether relPath names a regular file under the root.
func (s *LocalStore) Exists(relPath string) (bool, error) {
	full, err := s.resolve(relPath)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (s *LocalStore) Remove(relPath string) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", relPath, err)
	}
	return nil
}

// Walk calls fn with the slash-separated relative path of every regular
// file under the root. A missing root is treated as empty.
func (s *LocalStore) Walk(fn func(relPath string) error) error {
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		return fn(filepath.ToSlash(rel))
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
