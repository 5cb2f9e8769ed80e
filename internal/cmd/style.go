package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/antglob/internal/models"
)

// styles for stderr output; plain when stderr is not a terminal
type styles struct {
	title lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{title: plain, label: plain, value: plain, warn: plain, err: plain}
	}

	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		label: r.NewStyle().Foreground(lipgloss.Color("240")),
		value: r.NewStyle().Foreground(lipgloss.Color("86")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("214")),
		err:   r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// renderSummary renders the walk statistics shown with -v
func (s styles) renderSummary(root string, stats models.WalkStats) string {
	row := func(label string, value int) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			s.label.Render(fmt.Sprintf("  %-20s", label)),
			s.value.Render(fmt.Sprintf("%d", value)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render("antglob: "+root),
		row("matches", stats.Matches),
		row("directories listed", stats.DirsListed),
		row("pruned (excluded)", stats.PrunedExcluded),
		row("pruned (no match)", stats.PrunedInfeasible),
		row("pruned (depth)", stats.PrunedDepth),
		row("symlink cycles", stats.Cycles),
		row("listing errors", stats.Errors),
	)
}

func (s styles) renderWarning(msg string) string {
	return s.warn.Render("warning: " + msg)
}

func (s styles) renderError(err error) string {
	return s.err.Render("error: " + err.Error())
}
