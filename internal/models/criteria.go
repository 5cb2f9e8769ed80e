package models

import (
	"fmt"
	"strings"
)

// Criteria is the serializable configuration of a FileSet
type Criteria struct {
	Directory       string   `json:"directory" yaml:"directory" mapstructure:"directory"`                      // Walk root, empty for the working directory
	Include         []string `json:"include" yaml:"include" mapstructure:"include"`                            // Include patterns
	Exclude         []string `json:"exclude" yaml:"exclude" mapstructure:"exclude"`                            // Exclude patterns
	Case            string   `json:"case" yaml:"case" mapstructure:"case"`                                     // platform, sensitive or insensitive
	Symlinks        bool     `json:"symlinks" yaml:"symlinks" mapstructure:"symlinks"`                         // Follow symbolic links
	DefaultExcludes bool     `json:"default_excludes" yaml:"default_excludes" mapstructure:"default_excludes"` // Apply the default exclude table
	Directories     bool     `json:"directories" yaml:"directories" mapstructure:"directories"`                // Yield matching directories
	MaxDepth        int      `json:"max_depth" yaml:"max_depth" mapstructure:"max_depth"`                      // 0 means unlimited
}

// NewCriteria creates Criteria with the default settings
func NewCriteria() *Criteria {
	return &Criteria{
		Include:         make([]string, 0),
		Exclude:         make([]string, 0),
		Case:            CasePlatform.String(),
		Symlinks:        true,
		DefaultExcludes: true,
	}
}

// AddInclude appends include patterns, skipping blanks
func (c *Criteria) AddInclude(patterns ...string) {
	c.Include = appendNonBlank(c.Include, patterns)
}

// AddExclude appends exclude patterns, skipping blanks
func (c *Criteria) AddExclude(patterns ...string) {
	c.Exclude = appendNonBlank(c.Exclude, patterns)
}

// CaseMode parses the configured case mode
func (c *Criteria) CaseMode() (CaseMode, error) {
	return ParseCaseMode(c.Case)
}

// Validate checks the settings that do not need pattern compilation
func (c *Criteria) Validate() error {
	if _, err := c.CaseMode(); err != nil {
		return err
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}

func appendNonBlank(dst, patterns []string) []string {
	for _, p := range patterns {
		if strings.TrimSpace(p) != "" {
			dst = append(dst, p)
		}
	}
	return dst
}
