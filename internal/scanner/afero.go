package scanner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// AferoLister lists directories of an afero filesystem
type AferoLister struct {
	fs afero.Fs
}

// NewAferoLister creates a lister over fs, or over the OS filesystem when fs is nil
func NewAferoLister(fs afero.Fs) *AferoLister {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &AferoLister{fs: fs}
}

// ReadDir lists dir in lexical order. Symlinks are reported with the type of
// their target; dangling links are reported as files.
func (l *AferoLister) ReadDir(dir string) ([]Entry, error) {
	infos, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entry := Entry{
			Name:  info.Name(),
			IsDir: info.IsDir(),
		}

		if info.Mode()&os.ModeSymlink != 0 {
			full := filepath.Join(dir, info.Name())
			entry.Symlink = true
			entry.IsDir = false
			if target, err := l.fs.Stat(full); err == nil {
				entry.IsDir = target.IsDir()
			}
			entry.Target = l.resolveLink(full)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// Resolve validates dir and returns its canonical identity
func (l *AferoLister) Resolve(dir string) (string, error) {
	info, err := l.fs.Stat(dir)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	if _, ok := l.fs.(*afero.OsFs); ok {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return resolved, nil
		}
	}
	return filepath.Clean(dir), nil
}

// resolveLink returns the identity of a symlink's target, or "" when unknown
func (l *AferoLister) resolveLink(path string) string {
	if _, ok := l.fs.(*afero.OsFs); ok {
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return ""
		}
		return resolved
	}

	// Other filesystems: follow a single level
	reader, ok := l.fs.(afero.LinkReader)
	if !ok {
		return ""
	}
	target, err := reader.ReadlinkIfPossible(path)
	if err != nil {
		return ""
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Clean(target)
}
