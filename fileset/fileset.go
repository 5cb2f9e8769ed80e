// Package fileset finds the files below a directory that match Ant-style
// glob patterns.
//
// A FileSet is built once from include and exclude patterns and walked any
// number of times. Walks are lazy and skip every subtree that no include can
// reach or that an exclude covers entirely:
//
//	fs, err := fileset.New(
//		fileset.WithDirectory("src"),
//		fileset.WithInclude("**/*.go"),
//		fileset.WithExclude("**/*_test.go"),
//	)
//	if err != nil {
//		return err
//	}
//	for m := range fs.Walk() {
//		fmt.Println(m.Rel)
//	}
package fileset

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheerioskun/antglob/internal/glob"
	"github.com/cheerioskun/antglob/internal/scanner"
)

var (
	// ErrNoIncludes is returned when a FileSet is created without include patterns
	ErrNoIncludes = errors.New("no include patterns specified, nothing to find")

	// ErrRoot is wrapped by every RootError
	ErrRoot = errors.New("invalid root directory")
)

// RootError reports a walk root that is missing or not a directory
type RootError struct {
	Dir string
	Err error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrRoot, e.Dir, e.Err)
}

// Unwrap returns ErrRoot and the underlying cause
func (e *RootError) Unwrap() []error {
	return []error{ErrRoot, e.Err}
}

// FileSet is a compiled set of include and exclude patterns bound to a root
// directory
type FileSet struct {
	root     string
	includes *glob.Set
	excludes *glob.Set
	userExcl int
	cfg      *config
	walker   *scanner.Walker
	rootID   string
}

// New compiles the patterns and validates the root. Pattern errors are
// *glob.PatternError values and match glob.ErrInvalidPattern.
func New(opts ...Option) (*FileSet, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if len(cfg.include) == 0 {
		return nil, ErrNoIncludes
	}
	if cfg.maxDepth < 0 {
		return nil, fmt.Errorf("max depth must not be negative, got %d", cfg.maxDepth)
	}

	sensitive := cfg.caseMode.Sensitive()
	includes, err := glob.CompileSet(cfg.include, sensitive)
	if err != nil {
		return nil, err
	}
	excludes, err := glob.CompileSet(cfg.exclude, sensitive)
	if err != nil {
		return nil, err
	}
	userExcl := excludes.Len()
	if cfg.defaultExcludes {
		excludes.Append(glob.DefaultExcludes(sensitive)...)
	}

	root, err := absRoot(cfg.directory)
	if err != nil {
		return nil, &RootError{Dir: cfg.directory, Err: err}
	}

	lister := cfg.lister
	if lister == nil {
		lister = scanner.NewAferoLister(cfg.fs)
	}

	rootID := root
	if r, ok := lister.(scanner.Resolver); ok {
		if rootID, err = r.Resolve(root); err != nil {
			return nil, &RootError{Dir: root, Err: err}
		}
	}

	walker := scanner.NewWalker(lister, includes, excludes)
	walker.SetMaxDepth(cfg.maxDepth)
	walker.SetFollowSymlinks(cfg.symlinks)
	walker.SetDirectories(cfg.directories)
	walker.SetErrorHandler(cfg.onError)
	walker.SetLogger(cfg.logger.With().Str("component", "fileset").Logger())

	cfg.logger.Debug().
		Str("root", root).
		Str("case", cfg.caseMode.String()).
		Bool("case_sensitive", sensitive).
		Int("includes", includes.Len()).
		Int("excludes", excludes.Len()).
		Msg("FileSet compiled")

	return &FileSet{
		root:     root,
		includes: includes,
		excludes: excludes,
		userExcl: userExcl,
		cfg:      cfg,
		walker:   walker,
		rootID:   rootID,
	}, nil
}

// absRoot makes dir absolute and clean; empty means the working directory
func absRoot(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}

// Root returns the absolute, cleaned root directory
func (f *FileSet) Root() string {
	return f.root
}

// Includes returns the normalized include patterns
func (f *FileSet) Includes() []string {
	return f.includes.Strings()
}

// Excludes returns the normalized exclude patterns, default excludes last
func (f *FileSet) Excludes() []string {
	return f.excludes.Strings()
}

// Walk returns a lazy iterator over the matches. Every range over it is a
// new walk of the filesystem.
func (f *FileSet) Walk() iter.Seq[Match] {
	return f.walker.Seq(f.root, f.rootID)
}

// Files iterates the qualified paths of the matches
func (f *FileSet) Files() iter.Seq[string] {
	return func(yield func(string) bool) {
		for m := range f.Walk() {
			if !yield(m.Path) {
				return
			}
		}
	}
}

// RelativeFiles iterates the root-relative paths of the matches, with the
// platform separator
func (f *FileSet) RelativeFiles() iter.Seq[string] {
	return func(yield func(string) bool) {
		for m := range f.Walk() {
			if !yield(filepath.FromSlash(m.Rel)) {
				return
			}
		}
	}
}

// Collect walks once and returns every match
func (f *FileSet) Collect() []Match {
	matches := make([]Match, 0)
	for m := range f.Walk() {
		matches = append(matches, m)
	}
	return matches
}

// LastStats returns the counters of the most recent walk
func (f *FileSet) LastStats() Stats {
	return f.walker.Stats()
}

// String describes the FileSet
func (f *FileSet) String() string {
	excludes := f.excludes.Strings()[:f.userExcl]
	return fmt.Sprintf("FileSet [directory=%s, include=[%s], exclude=[%s], default excludes? %t, symlinks? %t, case=%s]",
		f.root,
		strings.Join(f.includes.Strings(), ", "),
		strings.Join(excludes, ", "),
		f.cfg.defaultExcludes,
		f.cfg.symlinks,
		f.cfg.caseMode)
}
