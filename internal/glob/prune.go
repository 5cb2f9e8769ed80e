package glob

// Decision is the outcome of a pruning check for one directory
type Decision int

const (
	// Descend means the directory may contain matches
	Descend Decision = iota
	// PruneExcluded means an exclude pattern matches the whole subtree
	PruneExcluded
	// PruneInfeasible means no include pattern can match inside the directory
	PruneInfeasible
)

// String returns a human-readable representation of the decision
func (d Decision) String() string {
	switch d {
	case Descend:
		return "descend"
	case PruneExcluded:
		return "excluded"
	case PruneInfeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// Decider decides whether traversal below a directory can contribute results.
// It works on the per-directory states produced by Set.Step, so each
// directory costs one step per live pattern rather than a full re-match.
type Decider struct {
	Includes *Set
	Excludes *Set
}

// NewDecider creates a Decider; excludes may be nil
func NewDecider(includes, excludes *Set) *Decider {
	return &Decider{
		Includes: includes,
		Excludes: excludes,
	}
}

// Decide returns the decision for a directory whose path has been consumed
// into inc and exc
func (d *Decider) Decide(inc, exc SetState) Decision {
	// Excluding a directory excludes everything under it
	if d.Excludes != nil && d.Excludes.Covers(exc) {
		return PruneExcluded
	}
	if !d.Includes.Feasible(inc) {
		return PruneInfeasible
	}
	return Descend
}

// DecidePath evaluates a directory prefix from scratch
func (d *Decider) DecidePath(prefix []string) Decision {
	exc := SetState{}
	if d.Excludes != nil {
		exc = d.Excludes.Walk(prefix)
	}
	return d.Decide(d.Includes.Walk(prefix), exc)
}
