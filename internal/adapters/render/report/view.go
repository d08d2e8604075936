// Package report renders run summaries and discovery listings for the
// terminal.
package report

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/daiimus/paracord/internal/application"
	"github.com/daiimus/paracord/internal/domain"
)

// RunHeader describes what a run is about to do.
func RunHeader(settings domain.Settings, targetCount int) string {
	s := newStyles()

	lines := []string{
		s.title.Render("Paracord run"),
		s.detail.Render(fmt.Sprintf("targets: %d", targetCount)),
		s.detail.Render(fmt.Sprintf("search delay: %s, delete delay: %s", settings.SearchDelay, settings.DeleteDelay)),
		s.detail.Render(fmt.Sprintf("skip pinned: %t, skip meowed: %t, max retries: %d", settings.SkipPinned, settings.SkipMeowed, settings.MaxRetries)),
	}
	if settings.MeowMode != domain.MeowModeOff {
		lines = append(lines, s.warn.Render(fmt.Sprintf("meow mode: %s", settings.MeowMode)))
	}
	if settings.DryRun {
		lines = append(lines, s.warn.Render("DRY RUN: no messages will be modified"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Summary renders the end-of-run tallies.
func Summary(summary application.Summary, duration time.Duration) string {
	s := newStyles()

	lines := []string{
		s.title.Render("Summary"),
		s.detail.Render(fmt.Sprintf("duration: %s", duration.Round(time.Second))),
		s.good.Render(fmt.Sprintf("deleted: %d", summary.Deleted)),
	}
	if summary.Overwritten > 0 {
		lines = append(lines, s.good.Render(fmt.Sprintf("overwritten: %d", summary.Overwritten)))
	}
	lines = append(lines,
		s.warn.Render(fmt.Sprintf("ghosts: %d (stale search index entries)", summary.Ghosts)),
		s.warn.Render(fmt.Sprintf("skipped: %d", summary.Skipped)),
	)
	if summary.Failed > 0 {
		lines = append(lines, s.bad.Render(fmt.Sprintf("failed: %d", summary.Failed)))
	} else {
		lines = append(lines, s.faint.Render("failed: 0"))
	}
	lines = append(lines, s.header.Render(fmt.Sprintf("rate limited %d times, %d targets done", summary.RateLimited, summary.TargetsDone)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Targets renders a discovery listing grouped by scope kind.
func Targets(targets []domain.Target) string {
	s := newStyles()

	lines := []string{
		s.title.Render("Discovered targets"),
		s.header.Render(fmt.Sprintf("total: %d", len(targets))),
	}

	if len(targets) == 0 {
		lines = append(lines, s.faint.Render("Nothing found."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	byKind := map[domain.TargetKind][]domain.Target{}
	for _, target := range targets {
		byKind[target.Kind] = append(byKind[target.Kind], target)
	}

	for _, kind := range []domain.TargetKind{domain.TargetKindGuild, domain.TargetKindDM, domain.TargetKindGroupDM} {
		group := byKind[kind]
		if len(group) == 0 {
			continue
		}
		lines = append(lines, s.section.Render(s.target.Render(kindLabel(kind))))
		for _, target := range group {
			lines = append(lines, s.detail.Render(fmt.Sprintf("  %s  (id: %s)", target.DisplayName(), target.ID())))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func kindLabel(kind domain.TargetKind) string {
	switch kind {
	case domain.TargetKindGuild:
		return "Guild channels"
	case domain.TargetKindDM:
		return "Direct messages"
	case domain.TargetKindGroupDM:
		return "Group DMs"
	}
	return string(kind)
}
