package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// StaticLister serves listings of an in-memory tree described by a list of
// paths. It stands in for the real filesystem in tests and can walk path
// lists that do not exist on disk. ReadDir calls are counted.
type StaticLister struct {
	root   string
	dirs   map[string][]Entry
	files  map[string]bool
	seen   map[string]bool
	links  map[string]string
	errs   map[string]error
	listed []string
}

// NewStaticLister creates a tree rooted at root holding the given slash
// separated paths, relative to root. A path ending in "/" is an empty
// directory; every other path is a file.
func NewStaticLister(root string, paths ...string) *StaticLister {
	root = filepath.Clean(root)
	l := &StaticLister{
		root:  root,
		dirs:  map[string][]Entry{root: {}},
		files: make(map[string]bool),
		seen:  make(map[string]bool),
		links: make(map[string]string),
		errs:  make(map[string]error),
	}
	l.Add(paths...)
	return l
}

// Root returns the cleaned root directory
func (l *StaticLister) Root() string {
	return l.root
}

// Add inserts more paths into the tree
func (l *StaticLister) Add(paths ...string) {
	for _, p := range paths {
		isDir := strings.HasSuffix(p, "/")
		parts := strings.Split(strings.Trim(p, "/"), "/")
		if len(parts) == 1 && parts[0] == "" {
			continue
		}

		parent := l.root
		for i, name := range parts {
			full := filepath.Join(parent, name)
			last := i == len(parts)-1
			if last && !isDir {
				l.addEntry(parent, Entry{Name: name})
				l.files[full] = true
				break
			}
			l.addEntry(parent, Entry{Name: name, IsDir: true})
			if _, ok := l.dirs[full]; !ok {
				l.dirs[full] = []Entry{}
			}
			parent = full
		}
	}
}

// Link adds a symbolic link at link pointing to the directory target, both
// relative to the root
func (l *StaticLister) Link(link, target string) {
	link = strings.Trim(link, "/")
	full := filepath.Join(l.root, filepath.FromSlash(link))
	resolved := filepath.Join(l.root, filepath.FromSlash(strings.Trim(target, "/")))

	parent := filepath.Dir(full)
	if parent != l.root {
		l.Add(filepath.ToSlash(strings.TrimPrefix(parent, l.root)) + "/")
	}
	l.addEntry(parent, Entry{
		Name:    filepath.Base(full),
		IsDir:   true,
		Symlink: true,
		Target:  resolved,
	})
	l.links[full] = resolved
}

// Fail makes every listing of dir, relative to the root, return err
func (l *StaticLister) Fail(dir string, err error) {
	l.errs[filepath.Join(l.root, filepath.FromSlash(strings.Trim(dir, "/")))] = err
}

// ReadDir returns the entries of dir in insertion order
func (l *StaticLister) ReadDir(dir string) ([]Entry, error) {
	dir = filepath.Clean(dir)
	l.listed = append(l.listed, dir)

	if err, ok := l.errs[dir]; ok {
		return nil, err
	}

	entries, ok := l.dirs[l.resolve(dir)]
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: dir, Err: fs.ErrNotExist}
	}

	out := make([]Entry, len(entries))
	copy(out, entries)
	return out, nil
}

// Resolve validates dir and returns the directory it stands for after links
func (l *StaticLister) Resolve(dir string) (string, error) {
	resolved := l.resolve(filepath.Clean(dir))
	if _, ok := l.dirs[resolved]; ok {
		return resolved, nil
	}
	if l.files[resolved] {
		return "", fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}
	return "", &fs.PathError{Op: "stat", Path: dir, Err: fs.ErrNotExist}
}

// Calls returns how many times ReadDir was called
func (l *StaticLister) Calls() int {
	return len(l.listed)
}

// Listed returns the directories passed to ReadDir, in call order
func (l *StaticLister) Listed() []string {
	out := make([]string, len(l.listed))
	copy(out, l.listed)
	return out
}

// ResetCalls clears the call log
func (l *StaticLister) ResetCalls() {
	l.listed = nil
}

// addEntry appends an entry to parent unless it is already there
func (l *StaticLister) addEntry(parent string, e Entry) {
	key := filepath.Join(parent, e.Name)
	if l.seen[key] {
		return
	}
	l.seen[key] = true
	l.dirs[parent] = append(l.dirs[parent], e)
}

// resolve replaces every linked prefix of dir with its target
func (l *StaticLister) resolve(dir string) string {
	if len(l.links) == 0 || dir == l.root {
		return dir
	}
	rel, err := filepath.Rel(l.root, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return dir
	}

	current := l.root
	for _, name := range strings.Split(rel, string(filepath.Separator)) {
		current = filepath.Join(current, name)
		// Bounded by the number of links, so a link cycle cannot spin forever
		for i := 0; i <= len(l.links); i++ {
			target, ok := l.links[current]
			if !ok {
				break
			}
			current = target
		}
	}
	return current
}
