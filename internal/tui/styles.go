package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-req-sync/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	overlayStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

	stateColors = map[models.SyncState]lipgloss.Color{
		models.StateSynced:      lipgloss.Color("10"),
		models.StateDirty:       lipgloss.Color("11"),
		models.StateNeverSynced: lipgloss.Color("12"),
		models.StateDisabled:    lipgloss.Color("8"),
	}
)
