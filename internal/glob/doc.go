// Package glob compiles and matches Apache Ant style globs.
//
// Grammar:
//
//	?     matches exactly one character of a path component
//	*     matches zero or more characters of a path component
//	**    as a whole component, matches zero or more components
//	/x    a leading separator anchors the pattern to the walk root
//	x/    a trailing separator matches the directory x and everything below it
//
// Patterns without a leading separator float: "*.py" behaves as "**/*.py".
//
// Matching runs over path components, never over joined strings. The
// reachable pattern positions after each component are kept as a State so
// that a directory walker can extend the state of a parent directory by one
// component for each child, and can ask whether anything below a directory
// could still match (Feasible) or is certain to match (Covers).
package glob
