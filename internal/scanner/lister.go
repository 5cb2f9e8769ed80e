package scanner

import (
	"errors"
)

// ErrNotDirectory is returned when a walk root exists but is not a directory
var ErrNotDirectory = errors.New("not a directory")

// Entry is one item of a directory listing
type Entry struct {
	Name    string // Base name within the listed directory
	IsDir   bool   // Directory, after following a symlink
	Symlink bool   // Entry is a symbolic link
	Target  string // Canonical identity of the link target, empty if unknown
}

// Lister lists the immediate entries of a directory. It is the walker's only
// dependency on a real filesystem.
type Lister interface {
	ReadDir(dir string) ([]Entry, error)
}

// ListerFunc adapts an ordinary function to the Lister interface
type ListerFunc func(dir string) ([]Entry, error)

// ReadDir calls f(dir)
func (f ListerFunc) ReadDir(dir string) ([]Entry, error) {
	return f(dir)
}

// Resolver is implemented by listers that can validate a walk root and
// report its canonical identity
type Resolver interface {
	// Resolve fails when dir is missing or not a directory
	Resolve(dir string) (string, error)
}
