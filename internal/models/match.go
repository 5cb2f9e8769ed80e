package models

import "fmt"

// Match is one result of a walk
type Match struct {
	Path  string `json:"path"`   // Root joined with the relative path
	Rel   string `json:"rel"`    // Slash separated path relative to the root
	IsDir bool   `json:"is_dir"` // Directory result, only with directories enabled
}

// WalkStats counts what a single walk did
type WalkStats struct {
	DirsListed       int `json:"dirs_listed"`       // Directories passed to the lister
	PrunedExcluded   int `json:"pruned_excluded"`   // Subtrees skipped because an exclude covers them
	PrunedInfeasible int `json:"pruned_infeasible"` // Subtrees no include can reach
	PrunedDepth      int `json:"pruned_depth"`      // Subtrees below the max depth
	Cycles           int `json:"cycles"`            // Directories skipped as already entered
	Errors           int `json:"errors"`            // Failed listings
	Matches          int `json:"matches"`           // Results yielded
}

// Pruned returns the number of subtrees skipped for any reason
func (s WalkStats) Pruned() int {
	return s.PrunedExcluded + s.PrunedInfeasible + s.PrunedDepth
}

// String returns a one-line summary
func (s WalkStats) String() string {
	return fmt.Sprintf("%d matches, %d dirs listed, %d pruned (%d excluded, %d infeasible, %d depth), %d cycles, %d errors",
		s.Matches, s.DirsListed, s.Pruned(), s.PrunedExcluded, s.PrunedInfeasible, s.PrunedDepth, s.Cycles, s.Errors)
}
