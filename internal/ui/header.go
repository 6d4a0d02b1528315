package ui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lunchtray/internal/linq"
	"github.com/five82/lunchtray/internal/state"
)

const (
	badgeWaiting     = "waiting"
	badgeCached      = "cached"
	badgeFetching    = "fetching"
	badgeOK          = "ok"
	badgeFailed      = "failed"
	badgeUnavailable = "unavailable"
)

// statusBadge summarizes the poll state in one word.
func statusBadge(snap state.Snapshot) string {
	switch {
	case snap.Phase == state.PhaseFetching:
		return badgeFetching
	case snap.IsUnavailable():
		return badgeUnavailable
	case snap.LastOutcome == state.OutcomeFailed:
		return badgeFailed
	case snap.LastOutcome == state.OutcomeSuccess:
		return badgeOK
	case snap.FromCache:
		return badgeCached
	default:
		return badgeWaiting
	}
}

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	badge := statusBadge(m.snapshot)
	parts := []string{
		bg.Render("lunchtray", styles.Logo),
		styles.BadgeStyle(badge).Render(strings.ToUpper(badge)),
	}

	if m.snapshot.HasMenu {
		updated := "Updated " + formatStamp(m.snapshot.FetchedAt, m.now())
		if m.snapshot.FromCache {
			updated = "Cached " + formatStamp(m.snapshot.FetchedAt, m.now())
		}
		parts = append(parts, bg.Render(updated, styles.MutedText))
	}

	if m.snapshot.LastError != nil && m.snapshot.LastOutcome == state.OutcomeFailed {
		parts = append(parts, bg.Render(describeError(m.snapshot.LastError), styles.DangerText))
	} else if m.notice != "" {
		parts = append(parts, bg.Render(m.notice, styles.WarningText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints for the active view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"tab", "Views"},
		{"r", "Refresh"},
		{"j/k", "Scroll"},
		{"T", m.theme.Name},
		{"?", "Help"},
		{"e", "Quit"},
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, v := range viewOrder {
		label := strings.ToUpper(v.String()[:1]) + v.String()[1:]
		style := styles.MutedText
		if v == m.currentView {
			style = styles.AccentText.Bold(true)
		}
		segments = append(segments, bg.Render(label, style))
	}
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Width(m.width).
		Padding(0, 1).
		Render(bg.Join(segments, "  "))
}

// formatStamp shows a clock time for today and a short date otherwise.
func formatStamp(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	local := t.In(time.Local)
	y1, m1, d1 := local.Date()
	y2, m2, d2 := now.In(time.Local).Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return local.Format("15:04")
	}
	return local.Format("Jan 2 15:04")
}

// describeError shortens a poll error for the header.
func describeError(err error) string {
	var apiErr *linq.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Timeout():
			return "api timeout"
		case apiErr.Kind == linq.KindHTTP:
			return "api http " + strconv.Itoa(apiErr.StatusCode)
		case apiErr.Kind == linq.KindDecode:
			return "api sent invalid data"
		default:
			return "api unreachable"
		}
	}
	return truncate(firstLine(err.Error()), 60)
}
