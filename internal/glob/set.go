package glob

// Set is an ordered collection of patterns sharing one case mode
type Set struct {
	patterns      []*Pattern
	caseSensitive bool
}

// NewSet creates an empty Set
func NewSet(caseSensitive bool) *Set {
	return &Set{
		patterns:      make([]*Pattern, 0),
		caseSensitive: caseSensitive,
	}
}

// CompileSet compiles every source into a new Set, failing on the first bad pattern
func CompileSet(sources []string, caseSensitive bool) (*Set, error) {
	s := NewSet(caseSensitive)
	if err := s.Add(sources...); err != nil {
		return nil, err
	}
	return s, nil
}

// Add compiles and appends patterns
func (s *Set) Add(sources ...string) error {
	for _, source := range sources {
		p, err := Compile(source, s.caseSensitive)
		if err != nil {
			return err
		}
		s.patterns = append(s.patterns, p)
	}
	return nil
}

// Append adds compiled patterns. A pattern compiled with a different case
// mode is recompiled from its normalized source.
func (s *Set) Append(patterns ...*Pattern) {
	for _, p := range patterns {
		if p.caseSensitive != s.caseSensitive {
			p = MustCompile(p.source, s.caseSensitive)
		}
		s.patterns = append(s.patterns, p)
	}
}

// Len returns the number of patterns
func (s *Set) Len() int {
	return len(s.patterns)
}

// CaseSensitive reports the case mode of the Set
func (s *Set) CaseSensitive() bool {
	return s.caseSensitive
}

// Strings returns the normalized source of every pattern
func (s *Set) Strings() []string {
	out := make([]string, len(s.patterns))
	for i, p := range s.patterns {
		out[i] = p.String()
	}
	return out
}

// SetState tracks the patterns of a Set that are still alive after a path
// prefix, with their individual states
type SetState struct {
	live []liveState
}

type liveState struct {
	idx   int
	state State
}

// Live returns how many patterns can still match at or below the prefix
func (st SetState) Live() int {
	return len(st.live)
}

// Start returns the state of every pattern before any component is consumed
func (s *Set) Start() SetState {
	live := make([]liveState, 0, len(s.patterns))
	for i, p := range s.patterns {
		live = append(live, liveState{idx: i, state: p.Start()})
	}
	return SetState{live: live}
}

// Step consumes one path component for every live pattern. The component is
// case-folded once for the whole Set; dead patterns are dropped.
func (s *Set) Step(st SetState, name string) SetState {
	if len(st.live) == 0 {
		return st
	}
	folded := fold(name, s.caseSensitive)

	next := make([]liveState, 0, len(st.live))
	for _, l := range st.live {
		ns := s.patterns[l.idx].step(l.state, folded)
		if !ns.Dead() {
			next = append(next, liveState{idx: l.idx, state: ns})
		}
	}
	return SetState{live: next}
}

// Accepts reports whether any pattern matches the consumed prefix itself
func (s *Set) Accepts(st SetState, isDir bool) bool {
	for _, l := range st.live {
		if s.patterns[l.idx].Accepts(l.state, isDir) {
			return true
		}
	}
	return false
}

// SelectsDirectory reports whether the consumed prefix, a directory, is
// matched by a pattern that selects directories as results
func (s *Set) SelectsDirectory(st SetState) bool {
	for _, l := range st.live {
		p := s.patterns[l.idx]
		if p.SelectsDirectories() && p.Accepts(l.state, true) {
			return true
		}
	}
	return false
}

// Covers reports whether some pattern matches everything below the prefix
func (s *Set) Covers(st SetState) bool {
	for _, l := range st.live {
		if s.patterns[l.idx].Covers(l.state) {
			return true
		}
	}
	return false
}

// Feasible reports whether some pattern could match below the prefix
func (s *Set) Feasible(st SetState) bool {
	for _, l := range st.live {
		if s.patterns[l.idx].Feasible(l.state) {
			return true
		}
	}
	return false
}

// Walk consumes a sequence of components from the start state
func (s *Set) Walk(segments []string) SetState {
	st := s.Start()
	for _, seg := range segments {
		st = s.Step(st, seg)
	}
	return st
}

// Match reports whether any pattern matches the path components
func (s *Set) Match(segments []string, isDir bool) bool {
	for _, p := range s.patterns {
		if p.Match(segments, isDir) {
			return true
		}
	}
	return false
}

// MatchPath is Match for a slash separated relative path
func (s *Set) MatchPath(path string, isDir bool) bool {
	return s.Match(SplitPath(path), isDir)
}
