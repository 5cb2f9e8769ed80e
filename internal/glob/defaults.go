package glob

import (
	"sync"
)

// DefaultExcludesVersion identifies the revision of the default-exclude table
const DefaultExcludesVersion = "1"

// defaultExcludeSources screens out VCS metadata and editor/build noise,
// following the Apache Ant default excludes plus __pycache__.
var defaultExcludeSources = []string{
	"**/__pycache__/",
	"**/*~",
	"**/#*#",
	"**/.#*",
	"**/%*%",
	"**/._*",
	"**/CVS",
	"**/CVS/",
	"**/.cvsignore",
	"**/SCCS",
	"**/SCCS/",
	"**/vssver.scc",
	"**/.svn",
	"**/.svn/",
	"**/.DS_Store",
	"**/.git",
	"**/.git/",
	"**/.gitattributes",
	"**/.gitignore",
	"**/.gitmodules",
	"**/.hg",
	"**/.hg/",
	"**/.hgignore",
	"**/.hgsub",
	"**/.hgsubstate",
	"**/.hgtags",
	"**/.bzr",
	"**/.bzr/",
	"**/.bzrignore",
}

var (
	sensitiveDefaults   = sync.OnceValue(func() []*Pattern { return compileDefaults(true) })
	insensitiveDefaults = sync.OnceValue(func() []*Pattern { return compileDefaults(false) })
)

func compileDefaults(caseSensitive bool) []*Pattern {
	patterns := make([]*Pattern, len(defaultExcludeSources))
	for i, source := range defaultExcludeSources {
		patterns[i] = MustCompile(source, caseSensitive)
	}
	return patterns
}

// DefaultExcludeSources returns the default-exclude globs
func DefaultExcludeSources() []string {
	out := make([]string, len(defaultExcludeSources))
	copy(out, defaultExcludeSources)
	return out
}

// DefaultExcludes returns the compiled default-exclude table. The table is
// compiled once per case mode and never modified.
func DefaultExcludes(caseSensitive bool) []*Pattern {
	table := insensitiveDefaults()
	if caseSensitive {
		table = sensitiveDefaults()
	}
	out := make([]*Pattern, len(table))
	copy(out, table)
	return out
}
