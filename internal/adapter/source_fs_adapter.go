// Package adapter contains infrastructure adapters for the consept CLI.
package adapter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	m "github.com/mouse-blink/consept/internal/model"
)

// ErrFileNotFound is returned when a file cannot be located.
var ErrFileNotFound = errors.New("file not found")

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when reading user sources and preparing mount folders. It hides
// direct `os` access so the workflow logic can be tested without touching the
// disk.
//
//nolint:interfacebloat // A richer interface keeps workflow logic decoupled from os/fs.
type SourceFSAdapter interface {
	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile replaces the file at path with content in one step.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories when necessary.
	FileInfo(path m.Path) (os.FileInfo, error)

	// FindFile searches the tree rooted at the parent of startDir for a file
	// called name and returns its absolute path.
	FindFile(name string, startDir m.Path) (m.Path, error)

	// FindFiles returns every file under root whose name ends with suffix.
	FindFiles(root m.Path, suffix string) ([]m.Path, error)

	// EnsureDir creates path and its parents when missing.
	EnsureDir(path m.Path) error

	// EmptyDir removes path with all its contents and recreates it.
	EmptyDir(path m.Path) error

	// CopyFile copies a single file, creating the destination directory.
	CopyFile(src, dst m.Path) error

	// RemoveAll removes a directory and all its contents.
	RemoveAll(path m.Path) error

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	content, err := os.ReadFile(string(path))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	return content, err
}

// WriteFile writes content to a sibling temp file and renames it over path,
// so readers never observe a partially written file.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(string(path))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(string(path))+".*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}

	return os.Rename(tmpName, string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// FindFile walks the parent directory of startDir looking for name.
func (a *LocalSourceFSAdapter) FindFile(name string, startDir m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(startDir))
	if err != nil {
		return "", err
	}

	var found string

	errFound := errors.New("found")

	err = filepath.Walk(filepath.Dir(abs), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped
		}

		if !info.IsDir() && info.Name() == name {
			found = path
			return errFound
		}

		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return "", err
	}

	if found == "" {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}

	return m.Path(found), nil
}

// FindFiles collects files under root whose name ends with suffix.
func (a *LocalSourceFSAdapter) FindFiles(root m.Path, suffix string) ([]m.Path, error) {
	var files []m.Path

	err := a.Walk(root, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && strings.HasSuffix(info.Name(), suffix) {
			files = append(files, m.Path(path))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// EnsureDir creates the directory and its parents.
func (a *LocalSourceFSAdapter) EnsureDir(path m.Path) error {
	return os.MkdirAll(string(path), 0o750)
}

// EmptyDir removes the directory tree and creates an empty directory in its
// place. Read-only entries are made writable first.
func (a *LocalSourceFSAdapter) EmptyDir(path m.Path) error {
	if err := os.RemoveAll(string(path)); err != nil {
		_ = filepath.Walk(string(path), func(p string, info os.FileInfo, err error) error {
			if err == nil {
				_ = os.Chmod(p, info.Mode()|0o200)
			}

			return nil
		})

		if err := os.RemoveAll(string(path)); err != nil {
			return fmt.Errorf("failed to empty %s: %w", path, err)
		}
	}

	return os.MkdirAll(string(path), 0o750)
}

// CopyFile copies a single file.
func (a *LocalSourceFSAdapter) CopyFile(src, dst m.Path) error {
	// #nosec G304 - src is a user project file chosen on the command line
	sourceFile, err := os.Open(string(src))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, src)
		}

		return err
	}

	defer func() { _ = sourceFile.Close() }()

	info, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(string(dst)), 0o750); err != nil {
		return err
	}

	// #nosec G304 - dst is inside the tool mount folder
	destFile, err := os.Create(string(dst))
	if err != nil {
		return err
	}

	defer func() { _ = destFile.Close() }()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return os.Chmod(string(dst), info.Mode())
}

// RemoveAll removes a directory and all its contents.
func (a *LocalSourceFSAdapter) RemoveAll(path m.Path) error {
	return os.RemoveAll(string(path))
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
