package glob

import (
	"strings"
)

// tokenKind classifies one compiled pattern segment
type tokenKind uint8

const (
	literalToken    tokenKind = iota // literal text, possibly with '*' and '?'
	doubleStarToken                  // "**": zero or more whole components
	anySegmentToken                  // exactly one component; only emitted for dirOnly patterns
)

// token is one compiled segment of a Pattern
type token struct {
	kind tokenKind
	raw  string // text as written
	text string // comparison form of raw (case-folded when insensitive)
	wild bool   // text contains '*' or '?'
}

// matches reports whether a folded path component satisfies the token.
// Double-star tokens never consume through this method.
func (t token) matches(name string) bool {
	switch t.kind {
	case anySegmentToken:
		return true
	case literalToken:
		if t.wild {
			return matchSegment(t.text, name)
		}
		return t.text == name
	default:
		return false
	}
}

// Pattern is a compiled Ant glob.
//
// A pattern is an ordered list of segments. A leading separator anchors it
// to the walk root; without one the pattern floats, as if it started with
// "**". A trailing separator makes it directory-only: it matches the
// directory itself and everything below it, never a plain file of that name.
//
// Only a segment that is exactly "**" spans directories. A segment such as
// "a**b" is an ordinary wildcard segment equivalent to "a*b".
type Pattern struct {
	source        string
	tokens        []token
	anchored      bool
	dirOnly       bool
	caseSensitive bool

	// prog is tokens plus the implicit leading "**" of floating patterns and
	// the implicit descendant suffix of dirOnly patterns.
	prog []token
	// dirAccept is the prog position at which a dirOnly pattern accepts a
	// directory, -1 for other patterns.
	dirAccept int
}

// Compile parses an Ant glob into a Pattern
func Compile(source string, caseSensitive bool) (*Pattern, error) {
	if strings.TrimSpace(source) == "" {
		return nil, &PatternError{Pattern: source, Reason: "pattern is empty"}
	}

	// Windows separators are accepted everywhere
	normalized := strings.ReplaceAll(source, `\`, "/")

	p := &Pattern{
		anchored:      strings.HasPrefix(normalized, "/"),
		dirOnly:       strings.HasSuffix(normalized, "/"),
		caseSensitive: caseSensitive,
		dirAccept:     -1,
	}

	for _, part := range strings.Split(normalized, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			return nil, &PatternError{Pattern: source, Reason: "'..' cannot appear in a glob"}
		case "**":
			if n := len(p.tokens); n > 0 && p.tokens[n-1].kind == doubleStarToken {
				continue
			}
			p.tokens = append(p.tokens, token{kind: doubleStarToken, raw: "**"})
		default:
			p.tokens = append(p.tokens, token{
				kind: literalToken,
				raw:  part,
				text: fold(part, caseSensitive),
				wild: hasWildcard(part),
			})
		}
	}

	if len(p.tokens) == 0 {
		return nil, &PatternError{Pattern: source, Reason: "pattern has no path segments"}
	}

	p.source = p.render()
	p.prog = p.program()
	return p, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(source string, caseSensitive bool) *Pattern {
	p, err := Compile(source, caseSensitive)
	if err != nil {
		panic(err)
	}
	return p
}

// program builds the token list actually executed by the matcher
func (p *Pattern) program() []token {
	prog := make([]token, 0, len(p.tokens)+3)
	if !p.anchored && p.tokens[0].kind != doubleStarToken {
		prog = append(prog, token{kind: doubleStarToken, raw: "**"})
	}
	prog = append(prog, p.tokens...)
	if p.dirOnly {
		p.dirAccept = len(prog)
		prog = append(prog,
			token{kind: anySegmentToken},
			token{kind: doubleStarToken, raw: "**"},
		)
	}
	return prog
}

// render returns the normalized form of the pattern
func (p *Pattern) render() string {
	var b strings.Builder
	if p.anchored {
		b.WriteByte('/')
	}
	for i, t := range p.tokens {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(t.raw)
	}
	if p.dirOnly {
		b.WriteByte('/')
	}
	return b.String()
}

// String returns the normalized glob; compiling it again yields an equal pattern
func (p *Pattern) String() string {
	return p.source
}

// SelectsDirectories reports whether a directory matched by the pattern is
// itself a result: the pattern is dirOnly or ends in "**".
func (p *Pattern) SelectsDirectories() bool {
	return p.dirOnly || p.tokens[len(p.tokens)-1].kind == doubleStarToken
}
