package glob

import (
	"sort"
	"strings"
)

// State is the set of pattern positions reachable after consuming a path
// prefix, kept in ascending order. It is one row of the
// (pattern position, path position) table; stepping from row to row visits
// every pair at most once. The zero State is dead.
type State struct {
	pos []int
}

// Dead reports whether no continuation of the prefix can match
func (s State) Dead() bool {
	return len(s.pos) == 0
}

// has reports whether position i is reachable
func (s State) has(i int) bool {
	k := sort.SearchInts(s.pos, i)
	return k < len(s.pos) && s.pos[k] == i
}

// Start returns the state before any path component is consumed
func (p *Pattern) Start() State {
	mark := make([]bool, len(p.prog)+1)
	mark[0] = true
	return p.collect(mark)
}

// Step consumes one path component
func (p *Pattern) Step(s State, name string) State {
	return p.step(s, fold(name, p.caseSensitive))
}

// step consumes one already folded path component
func (p *Pattern) step(s State, name string) State {
	if s.Dead() || p.saturated(s) {
		// A reachable trailing "**" absorbs every further component
		return s
	}

	mark := make([]bool, len(p.prog)+1)
	advanced := false
	for _, i := range s.pos {
		if i == len(p.prog) {
			continue
		}
		t := p.prog[i]
		if t.kind == doubleStarToken {
			mark[i] = true
			advanced = true
			continue
		}
		if t.matches(name) {
			mark[i+1] = true
			advanced = true
		}
	}

	if !advanced {
		return State{}
	}
	return p.collect(mark)
}

// collect closes mark over "**" zero-width moves and packs it into a State
func (p *Pattern) collect(mark []bool) State {
	n := 0
	for i := 0; i <= len(p.prog); i++ {
		if !mark[i] {
			continue
		}
		n++
		if i < len(p.prog) && p.prog[i].kind == doubleStarToken {
			mark[i+1] = true
		}
	}

	pos := make([]int, 0, n)
	for i, ok := range mark {
		if ok {
			pos = append(pos, i)
		}
	}
	return State{pos: pos}
}

// saturated reports whether a trailing "**" is reachable
func (p *Pattern) saturated(s State) bool {
	last := len(p.prog) - 1
	return p.prog[last].kind == doubleStarToken && s.has(last)
}

// Accepts reports whether the consumed prefix is itself a match
func (p *Pattern) Accepts(s State, isDir bool) bool {
	if s.has(len(p.prog)) {
		return true
	}
	return isDir && p.dirAccept >= 0 && s.has(p.dirAccept)
}

// Covers reports whether every path strictly below the consumed prefix matches
func (p *Pattern) Covers(s State) bool {
	if s.Dead() {
		return false
	}
	return p.saturated(s) || (p.dirAccept >= 0 && s.has(p.dirAccept))
}

// Feasible reports whether some path strictly below the consumed prefix could match
func (p *Pattern) Feasible(s State) bool {
	// Positions are ascending; any position short of the end can consume more
	return len(s.pos) > 0 && s.pos[0] < len(p.prog)
}

// Match reports whether a path, given as its components relative to the
// walk root, matches the pattern
func (p *Pattern) Match(segments []string, isDir bool) bool {
	s := p.Start()
	for _, seg := range segments {
		if s.Dead() {
			return false
		}
		if p.Covers(s) {
			return true
		}
		s = p.Step(s, seg)
	}
	return p.Accepts(s, isDir)
}

// MatchPath is Match for a slash or backslash separated relative path
func (p *Pattern) MatchPath(path string, isDir bool) bool {
	return p.Match(SplitPath(path), isDir)
}

// SplitPath breaks a relative path into components, dropping empty and "."
// components
func SplitPath(path string) []string {
	path = strings.ReplaceAll(path, `\`, "/")
	parts := strings.Split(path, "/")
	segs := parts[:0]
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		segs = append(segs, part)
	}
	return segs
}
