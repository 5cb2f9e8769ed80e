package glob

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// hasWildcard reports whether a segment needs wildcard matching
func hasWildcard(segment string) bool {
	return strings.ContainsAny(segment, "*?")
}

// matchSegment matches one path component against one glob segment.
// '*' matches any run of characters, '?' exactly one character. Neither
// argument contains a separator.
func matchSegment(pattern, name string) bool {
	px, nx := 0, 0
	// Restart point for the most recent '*'
	starPx, starNx := -1, -1

	for px < len(pattern) || nx < len(name) {
		if px < len(pattern) {
			switch c := pattern[px]; c {
			case '?':
				if nx < len(name) {
					_, w := utf8.DecodeRuneInString(name[nx:])
					px++
					nx += w
					continue
				}
			case '*':
				// Try to match zero characters first, remember where to resume
				starPx, starNx = px, nx
				px++
				continue
			default:
				if nx < len(name) && name[nx] == c {
					px++
					nx++
					continue
				}
			}
		}

		// Mismatch: let the last '*' swallow one more character
		if starNx >= 0 && starNx < len(name) {
			_, w := utf8.DecodeRuneInString(name[starNx:])
			starNx += w
			px = starPx + 1
			nx = starNx
			continue
		}
		return false
	}
	return true
}

// fold returns the comparison form of s. Insensitive comparison composes s
// to NFC and maps every rune to one representative of its simple case
// folding orbit, so folding never changes how many characters '?' sees.
func fold(s string, caseSensitive bool) string {
	if caseSensitive {
		return s
	}
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return strings.Map(foldRune, norm.NFC.String(s))
		}
	}
	return strings.ToLower(s)
}

// foldRune returns the smallest lower case rune of r's folding orbit, or the
// smallest rune of the orbit when it has no lower case member. For ASCII
// letters this is the plain lower case letter.
func foldRune(r rune) rune {
	best, bestLower := r, unicode.IsLower(r)
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		lower := unicode.IsLower(f)
		switch {
		case lower && !bestLower, lower == bestLower && f < best:
			best, bestLower = f, lower
		}
	}
	return best
}
