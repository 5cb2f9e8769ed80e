package fileset

import (
	"github.com/cheerioskun/antglob/internal/glob"
	"github.com/cheerioskun/antglob/internal/models"
	"github.com/cheerioskun/antglob/internal/scanner"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// CaseMode selects how pattern letters compare to path letters
type CaseMode = models.CaseMode

const (
	// CasePlatform is insensitive on Windows and sensitive elsewhere
	CasePlatform = models.CasePlatform
	// CaseSensitive compares letters exactly
	CaseSensitive = models.CaseSensitive
	// CaseInsensitive compares case-folded letters
	CaseInsensitive = models.CaseInsensitive
)

// Lister lists the immediate entries of a directory
type Lister = scanner.Lister

// Entry is one item of a directory listing
type Entry = scanner.Entry

// Match is one result of a walk
type Match = models.Match

// Stats counts what a walk did
type Stats = models.WalkStats

// PatternError reports a glob that could not be compiled
type PatternError = glob.PatternError

// ErrInvalidPattern is wrapped by every PatternError
var ErrInvalidPattern = glob.ErrInvalidPattern

// DefaultExcludes returns the patterns excluded unless WithDefaultExcludes(false)
func DefaultExcludes() []string {
	return glob.DefaultExcludeSources()
}

// Option configures a FileSet
type Option func(*config)

type config struct {
	directory       string
	include         []string
	exclude         []string
	caseMode        CaseMode
	symlinks        bool
	defaultExcludes bool
	directories     bool
	maxDepth        int
	lister          Lister
	fs              afero.Fs
	onError         scanner.ErrorHandler
	logger          zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		caseMode:        CasePlatform,
		symlinks:        true,
		defaultExcludes: true,
		logger:          zerolog.Nop(),
	}
}

// WithDirectory sets the walk root. The default is the working directory.
func WithDirectory(dir string) Option {
	return func(c *config) {
		c.directory = dir
	}
}

// WithInclude adds include patterns
func WithInclude(patterns ...string) Option {
	return func(c *config) {
		c.include = append(c.include, patterns...)
	}
}

// WithExclude adds exclude patterns
func WithExclude(patterns ...string) Option {
	return func(c *config) {
		c.exclude = append(c.exclude, patterns...)
	}
}

// WithCase sets the case mode
func WithCase(mode CaseMode) Option {
	return func(c *config) {
		c.caseMode = mode
	}
}

// WithSymlinks sets whether symbolic links are followed and reported
func WithSymlinks(follow bool) Option {
	return func(c *config) {
		c.symlinks = follow
	}
}

// WithDefaultExcludes sets whether the default exclude table applies
func WithDefaultExcludes(enabled bool) Option {
	return func(c *config) {
		c.defaultExcludes = enabled
	}
}

// WithDirectories makes directories selected by a directory pattern
// ("dir/" or "dir/**") part of the results
func WithDirectories(enabled bool) Option {
	return func(c *config) {
		c.directories = enabled
	}
}

// WithMaxDepth limits how many directory levels below the root are entered.
// Zero means unlimited.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// WithLister replaces the filesystem with a custom listing source
func WithLister(l Lister) Option {
	return func(c *config) {
		c.lister = l
	}
}

// WithFs walks an afero filesystem instead of the OS one
func WithFs(fs afero.Fs) Option {
	return func(c *config) {
		c.fs = fs
	}
}

// WithErrorHandler receives directories that could not be listed
func WithErrorHandler(fn func(dir string, err error)) Option {
	return func(c *config) {
		c.onError = fn
	}
}

// WithLogger sets the logger used during walks
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// FromCriteria applies every setting of a serialized configuration. An
// unknown case mode leaves the current one unchanged; validate the Criteria
// first to catch it.
func FromCriteria(cr models.Criteria) Option {
	return func(c *config) {
		c.directory = cr.Directory
		c.include = append(c.include, cr.Include...)
		c.exclude = append(c.exclude, cr.Exclude...)
		if mode, err := cr.CaseMode(); err == nil {
			c.caseMode = mode
		}
		c.symlinks = cr.Symlinks
		c.defaultExcludes = cr.DefaultExcludes
		c.directories = cr.Directories
		c.maxDepth = cr.MaxDepth
	}
}
