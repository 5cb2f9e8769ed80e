package scanner

import (
	"iter"
	"path/filepath"

	"github.com/cheerioskun/antglob/internal/glob"
	"github.com/cheerioskun/antglob/internal/models"
	"github.com/rs/zerolog"
)

// ErrorHandler receives directories whose listing failed. The walk goes on.
type ErrorHandler func(dir string, err error)

// Walker enumerates the files below a root that an include set selects and
// an exclude set does not, listing only directories that can hold results
type Walker struct {
	lister         Lister
	includes       *glob.Set
	excludes       *glob.Set
	decider        *glob.Decider
	maxDepth       int
	followSymlinks bool
	directories    bool
	onError        ErrorHandler
	logger         zerolog.Logger
	stats          models.WalkStats
}

// frame is the memoized matching state of one directory
type frame struct {
	path  string // Path handed to the lister
	id    string // Canonical identity, entered at most once per walk
	rel   string // Slash separated path relative to the root
	depth int
	inc   glob.SetState
	exc   glob.SetState
}

// NewWalker creates a Walker. A nil excludes set excludes nothing.
func NewWalker(lister Lister, includes, excludes *glob.Set) *Walker {
	if excludes == nil {
		excludes = glob.NewSet(includes.CaseSensitive())
	}
	return &Walker{
		lister:         lister,
		includes:       includes,
		excludes:       excludes,
		decider:        glob.NewDecider(includes, excludes),
		followSymlinks: true,
		logger:         zerolog.Nop(),
	}
}

// SetMaxDepth limits how many directory levels below the root are entered.
// Zero means unlimited.
func (w *Walker) SetMaxDepth(depth int) {
	w.maxDepth = depth
}

// SetFollowSymlinks sets whether symbolic links are followed and reported
func (w *Walker) SetFollowSymlinks(follow bool) {
	w.followSymlinks = follow
}

// SetDirectories sets whether directories selected by a directory pattern
// are yielded alongside files
func (w *Walker) SetDirectories(enabled bool) {
	w.directories = enabled
}

// SetErrorHandler sets the callback for failed listings
func (w *Walker) SetErrorHandler(fn ErrorHandler) {
	w.onError = fn
}

// SetLogger sets the logger; the default discards everything
func (w *Walker) SetLogger(logger zerolog.Logger) {
	w.logger = logger
}

// Stats returns the counters of the last walk
func (w *Walker) Stats() models.WalkStats {
	return w.stats
}

// Seq returns the walk as an iterator. Each iteration starts a new walk.
func (w *Walker) Seq(root, rootID string) iter.Seq[models.Match] {
	return func(yield func(models.Match) bool) {
		w.Walk(root, rootID, yield)
	}
}

// Walk visits root depth-first and calls yield for every result. It stops
// listing as soon as yield returns false. rootID is the canonical identity
// of root; when empty, root itself is used.
func (w *Walker) Walk(root, rootID string, yield func(models.Match) bool) {
	w.stats = models.WalkStats{}
	if rootID == "" {
		rootID = root
	}

	start := frame{
		path: root,
		id:   rootID,
		inc:  w.includes.Start(),
		exc:  w.excludes.Start(),
	}
	w.logger.Debug().
		Str("root", root).
		Strs("include", w.includes.Strings()).
		Int("exclude_count", w.excludes.Len()).
		Msg("Starting walk")

	w.walkDir(start, make(map[string]bool), yield)

	w.logger.Debug().
		Int("matches", w.stats.Matches).
		Int("dirs_listed", w.stats.DirsListed).
		Int("pruned", w.stats.Pruned()).
		Msg("Walk finished")
}

// walkDir lists one directory and recurses into its subdirectories. visited
// holds every identity entered so far in this walk. It returns false once the
// consumer has stopped.
func (w *Walker) walkDir(f frame, visited map[string]bool, yield func(models.Match) bool) bool {
	switch w.decider.Decide(f.inc, f.exc) {
	case glob.PruneExcluded:
		w.stats.PrunedExcluded++
		w.logger.Trace().Str("dir", f.rel).Msg("Pruned, excluded")
		return true
	case glob.PruneInfeasible:
		w.stats.PrunedInfeasible++
		w.logger.Trace().Str("dir", f.rel).Msg("Pruned, no include can match")
		return true
	}

	if visited[f.id] {
		w.stats.Cycles++
		w.logger.Debug().Str("dir", f.path).Str("target", f.id).Msg("Skipping directory already entered")
		return true
	}
	visited[f.id] = true

	w.stats.DirsListed++
	w.logger.Trace().
		Str("dir", f.rel).
		Int("live_includes", f.inc.Live()).
		Int("live_excludes", f.exc.Live()).
		Msg("Listing")
	entries, err := w.lister.ReadDir(f.path)
	if err != nil {
		w.stats.Errors++
		w.logger.Warn().Err(err).Str("dir", f.path).Msg("Failed to list directory")
		if w.onError != nil {
			w.onError(f.path, err)
		}
		return true
	}

	for _, entry := range entries {
		if entry.Symlink && !w.followSymlinks {
			continue
		}

		inc := w.includes.Step(f.inc, entry.Name)
		exc := w.excludes.Step(f.exc, entry.Name)
		rel := joinRel(f.rel, entry.Name)
		path := filepath.Join(f.path, entry.Name)

		if !entry.IsDir {
			if w.includes.Accepts(inc, false) && !w.excludes.Accepts(exc, false) {
				if !w.emit(models.Match{Path: path, Rel: rel}, yield) {
					return false
				}
			}
			continue
		}

		if w.directories && w.includes.SelectsDirectory(inc) && !w.excludes.Accepts(exc, true) {
			if !w.emit(models.Match{Path: path, Rel: rel, IsDir: true}, yield) {
				return false
			}
		}

		depth := f.depth + 1
		if w.maxDepth > 0 && depth > w.maxDepth {
			w.stats.PrunedDepth++
			continue
		}

		id := filepath.Join(f.id, entry.Name)
		if entry.Symlink && entry.Target != "" {
			id = entry.Target
		}

		child := frame{path: path, id: id, rel: rel, depth: depth, inc: inc, exc: exc}
		if !w.walkDir(child, visited, yield) {
			return false
		}
	}

	return true
}

func (w *Walker) emit(m models.Match, yield func(models.Match) bool) bool {
	w.stats.Matches++
	return yield(m)
}

func joinRel(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
