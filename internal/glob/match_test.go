package glob

import (
	"strings"
	"testing"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPattern_Match(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		isDir   bool
		want    bool
	}{
		// Floating file pattern matches at any depth
		{"*.py", "foo.py", false, true},
		{"*.py", "bar/foo.py", false, true},
		{"*.py", "a/b/c/foo.py", false, true},
		{"*.py", "foo.pyc", false, false},
		{"*.py", "bar/foo.pyc", false, false},

		// Anchored file pattern matches one level only
		{"/*.py", "foo.py", false, true},
		{"/*.py", "bar/foo.py", false, false},

		// Anchored subtree
		{"/myapp/**", "myapp/a.txt", false, true},
		{"/myapp/**", "myapp/x/y/z.txt", false, true},
		{"/myapp/**", "myapp", true, true},
		{"/myapp/**", "other/myapp/a.txt", false, false},
		{"/myapp/**", "myapplication/a.txt", false, false},

		// A component anywhere in the path
		{"**/test/**", "test", false, true},
		{"**/test/**", "test", true, true},
		{"**/test/**", "a/test/b.txt", false, true},
		{"**/test/**", "a/b/test", false, true},
		{"**/test/**", "a/testing/b.txt", false, false},

		// Literal directory then file, floating
		{"dir1/__init__.py", "dir1/__init__.py", false, true},
		{"dir1/__init__.py", "x/y/dir1/__init__.py", false, true},
		{"dir1/__init__.py", "dir1/file.py", false, false},
		{"dir1/__init__.py", "dir1/another/__init__.py", false, false},
		{"/**/dir1/__init__.py", "dir3/dir1/__init__.py", false, true},

		// Anchored prefix with floating middle
		{"/myapp/**/dir1/__init__.py", "myapp/dir1/__init__.py", false, true},
		{"/myapp/**/dir1/__init__.py", "myapp/dir2/dir1/__init__.py", false, true},
		{"/myapp/**/dir1/__init__.py", "myapp/file.txt", false, false},
		{"/myapp/**/dir1/__init__.py", "dir1/__init__.py", false, false},

		// Directory-only patterns
		{"build/", "build", true, true},
		{"build/", "build", false, false},
		{"build/", "build/out.o", false, true},
		{"build/", "src/build/x/y.o", false, true},
		{"build/", "src/build", true, true},
		{"build/", "builds/x", false, false},
		{"/build/", "build/x", false, true},
		{"/build/", "src/build/x", false, false},
		{"a/**/", "a", true, true},
		{"a/**/", "a", false, false},
		{"a/**/", "a/b/c", false, true},

		// Double star in the middle matches zero or more components
		{"a/**/b", "a/b", false, true},
		{"a/**/b", "a/x/y/b", false, true},
		{"a/**/b", "a/x", false, false},

		// Everything
		{"**", "x", false, true},
		{"**", "x/y/z", false, true},

		// Single character wildcard
		{"a?c", "abc", false, true},
		{"a?c", "ac", false, false},
		{"/?/*", "a/b", false, true},
		{"/?/*", "ab/b", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			p, err := Compile(tt.pattern, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.MatchPath(tt.path, tt.isDir))
		})
	}
}

func TestPattern_MatchCaseSensitivity(t *testing.T) {
	insensitive := MustCompile("Docs/*.PY", false)
	assert.True(t, insensitive.MatchPath("docs/foo.py", false))
	assert.True(t, insensitive.MatchPath("DOCS/FOO.Py", false))

	sensitive := MustCompile("Docs/*.PY", true)
	assert.False(t, sensitive.MatchPath("docs/foo.py", false))
	assert.True(t, sensitive.MatchPath("Docs/foo.PY", false))
}

func TestPattern_MatchWindowsSeparators(t *testing.T) {
	p := MustCompile("*.py", true)
	assert.True(t, p.MatchPath(`bar\foo.py`, false))
}

func TestPattern_MatchAdversarial(t *testing.T) {
	p := MustCompile("**/a/**/a/**/a/**/a/**/a/**/a/**/b", true)
	segs := make([]string, 60)
	for i := range segs {
		segs[i] = "a"
	}

	start := time.Now()
	assert.False(t, p.Match(segs, false))
	assert.True(t, p.Match(append(segs, "b"), false))
	assert.Less(t, time.Since(start), time.Second)
}

func TestPattern_States(t *testing.T) {
	t.Run("anchored subtree", func(t *testing.T) {
		p := MustCompile("/a/b/**", true)

		s := p.Step(p.Start(), "x")
		assert.True(t, s.Dead())
		assert.False(t, p.Feasible(s))

		s = p.Step(p.Start(), "a")
		assert.True(t, p.Feasible(s))
		assert.False(t, p.Covers(s))

		s = p.Step(s, "b")
		assert.True(t, p.Covers(s))
		assert.True(t, p.Accepts(s, true))

		// Stepping a saturated state is free and keeps it saturated
		deeper := p.Step(p.Step(s, "c"), "d")
		assert.Equal(t, s, deeper)
	})

	t.Run("dir only", func(t *testing.T) {
		p := MustCompile("build/", true)
		s := p.Step(p.Start(), "build")
		assert.True(t, p.Covers(s))
		assert.True(t, p.Accepts(s, true))
		assert.False(t, p.Accepts(s, false))
	})

	t.Run("file pattern", func(t *testing.T) {
		p := MustCompile("/*.py", true)
		s := p.Step(p.Start(), "x.py")
		assert.True(t, p.Accepts(s, false))
		assert.False(t, p.Feasible(s))
		assert.False(t, p.Covers(s))
	})

	t.Run("dead state", func(t *testing.T) {
		p := MustCompile("/a", true)
		var zero State
		assert.True(t, zero.Dead())
		assert.False(t, p.Covers(zero))
		assert.False(t, p.Accepts(zero, true))
	})
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitPath("a/b/c"))
	assert.Equal(t, []string{"a", "b"}, SplitPath("/a//./b/"))
	assert.Equal(t, []string{"a", "b"}, SplitPath(`a\b`))
	assert.Empty(t, SplitPath(""))
}

// For anchored patterns without a trailing "**" or separator, the Ant
// grammar and doublestar agree.
func TestPattern_AgreesWithDoublestar(t *testing.T) {
	patterns := []string{
		"a/*.go",
		"a/**/b.go",
		"*/x",
		"**/*.go",
		"a/?/c",
		"a*/b",
		"**/c",
		"a/**/b/**/c",
	}
	paths := []string{
		"a/b.go",
		"a/x/b.go",
		"a/x/y/b.go",
		"b/x",
		"a/b/c",
		"ab/b",
		"c",
		"x/c",
		"a/b/c.go",
		"a/b/x/c",
		"a/x/b/y/z/c",
	}

	for _, pattern := range patterns {
		p := MustCompile("/"+pattern, true)
		for _, path := range paths {
			want, err := doublestar.Match(pattern, path)
			require.NoError(t, err)
			assert.Equal(t, want, p.MatchPath(path, false), "pattern %q path %q", pattern, path)
		}
	}
}

func BenchmarkPattern_MatchDeep(b *testing.B) {
	p := MustCompile("**/src/**/*.go", true)
	segs := strings.Split(strings.Repeat("dir/", 30)+"src/x/y/main.go", "/")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Match(segs, false)
	}
}
