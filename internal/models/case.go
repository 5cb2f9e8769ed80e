package models

import (
	"fmt"
	"runtime"
	"strings"
)

// CaseMode selects how pattern letters compare to path letters
type CaseMode int

const (
	// CasePlatform is insensitive on Windows and sensitive elsewhere
	CasePlatform CaseMode = iota
	// CaseSensitive compares letters exactly
	CaseSensitive
	// CaseInsensitive compares case-folded letters
	CaseInsensitive
)

// String returns the name used in config files and flags
func (m CaseMode) String() string {
	switch m {
	case CasePlatform:
		return "platform"
	case CaseSensitive:
		return "sensitive"
	case CaseInsensitive:
		return "insensitive"
	default:
		return fmt.Sprintf("CaseMode(%d)", int(m))
	}
}

// ParseCaseMode parses a mode name. The empty string is CasePlatform.
func ParseCaseMode(s string) (CaseMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "platform", "auto":
		return CasePlatform, nil
	case "sensitive", "case-sensitive":
		return CaseSensitive, nil
	case "insensitive", "case-insensitive":
		return CaseInsensitive, nil
	default:
		return CasePlatform, fmt.Errorf("unknown case mode %q", s)
	}
}

// Sensitive resolves the mode for the running platform
func (m CaseMode) Sensitive() bool {
	return m.sensitiveOn(runtime.GOOS)
}

func (m CaseMode) sensitiveOn(goos string) bool {
	switch m {
	case CaseSensitive:
		return true
	case CaseInsensitive:
		return false
	default:
		return goos != "windows"
	}
}
