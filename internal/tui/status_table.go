package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MKhiriev/go-req-sync/models"
)

const (
	colState = 2
	maxName  = 32
)

var statusHeaders = []string{"ID", "NAME", "STATE", "FILES", "LAST SYNC"}

// RenderStatusTable draws one row per collection. Sync times are shown
// relative to now.
func RenderStatusTable(rows []models.CollectionStatus, now time.Time) string {
	if len(rows) == 0 {
		return helpStyle.Render("no collections")
	}

	states := make([]models.SyncState, len(rows))
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(statusHeaders...)

	for i, row := range rows {
		states[i] = row.State
		t.Row(
			row.ID,
			fitText(row.Name, maxName),
			string(row.State),
			strconv.Itoa(row.TrackedFiles),
			lastSynced(row.LastSyncedAt, now),
		)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if col == colState && row >= 0 && row < len(states) {
			return cellStyle.Foreground(stateColors[states[row]])
		}
		return cellStyle
	})

	return t.Render()
}

func lastSynced(at *time.Time, now time.Time) string {
	if at == nil {
		return "never"
	}
	d := now.Sub(*at)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return strconv.Itoa(int(d/time.Minute)) + "m ago"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d/time.Hour)) + "h ago"
	default:
		return at.Local().Format(time.DateTime)
	}
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
