// ABOUTME: Bubbletea model for the player TUI
// ABOUTME: Polls the manager for unit state and maps focus changes to lifecycle signals
package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aerials-audio/acaudio/pkg/acaudio"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	pollInterval = 100 * time.Millisecond
	seekStepMs   = 5000
	barWidth     = 24
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))  // Cyan
	playingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))            // Bright Green
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true) // Red
	statusStyle   = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Player is the manager surface the TUI drives
type Player interface {
	PlayUnit(h acaudio.UnitHandle, loop bool) (int64, error)
	StopUnit(h acaudio.UnitHandle, rewind bool) error
	SetTime(h acaudio.UnitHandle, ms int64) (int64, error)
	CheckPlaying(h acaudio.UnitHandle) (bool, error)
	Unit(h acaudio.UnitHandle) (acaudio.UnitInfo, error)
	PlayPreview(data []byte, loop bool) error
	StopPreview() error
	PreviewTime() (int64, bool)
	CheckPreview() bool
	Handle(sig acaudio.Signal) error
	Stats() acaudio.Stats
}

// Track is a loaded file and the unit playing it
type Track struct {
	Name string
	Path string
	Unit acaudio.UnitHandle
}

// tickMsg triggers a poll of the manager
type tickMsg time.Time

// Model represents the TUI state
type Model struct {
	player Player
	keys   KeyMap
	tracks []Track
	loops  []bool

	// Polled state, one entry per track
	infos          []acaudio.UnitInfo
	stats          acaudio.Stats
	previewName    string
	previewMs      int64
	previewPlaying bool

	selected  int
	focused   bool
	suspended bool // deactivated; poll cached flags only
	lastError string
	showDebug bool

	width  int
	height int
}

// Init starts polling
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		m.refresh()
		return m, tickCmd()
	case tea.FocusMsg:
		m.focused = true
		m.signal(acaudio.SignalActivated)
	case tea.BlurMsg:
		m.focused = false
		m.signal(acaudio.SignalDeactivated)
	case tea.ResumeMsg:
		m.signal(acaudio.SignalActivated)
	case SignalMsg:
		m.signal(msg.Signal)
		m.refresh()
	}

	return m, nil
}

// refresh re-queries every unit and the preview
func (m *Model) refresh() {
	m.infos = m.infos[:0]
	for _, t := range m.tracks {
		// CheckPlaying would clear the flags a deactivated manager resumes from
		if !m.suspended {
			if _, err := m.player.CheckPlaying(t.Unit); err != nil {
				m.infos = append(m.infos, acaudio.UnitInfo{Handle: t.Unit})
				continue
			}
		}
		info, err := m.player.Unit(t.Unit)
		if err != nil {
			info = acaudio.UnitInfo{Handle: t.Unit}
		}
		m.infos = append(m.infos, info)
	}

	m.stats = m.player.Stats()
	if !m.suspended {
		m.previewPlaying = m.player.CheckPreview()
	}
	if ms, ok := m.player.PreviewTime(); ok {
		m.previewMs = ms
	} else {
		m.previewName = ""
		m.previewMs = 0
	}
}

func (m *Model) signal(sig acaudio.Signal) {
	m.suspended = sig == acaudio.SignalDeactivated
	if err := m.player.Handle(sig); err != nil {
		m.lastError = err.Error()
	}
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Suspend):
		m.signal(acaudio.SignalDeactivated)
		return m, tea.Suspend
	case key.Matches(msg, m.keys.Debug):
		m.showDebug = !m.showDebug
		return m, nil
	case key.Matches(msg, m.keys.StopPreview):
		m.setError(m.player.StopPreview())
		m.refresh()
		return m, nil
	}

	if len(m.tracks) == 0 {
		return m, nil
	}
	t := m.tracks[m.selected]

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.tracks)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Play):
		playing, err := m.player.CheckPlaying(t.Unit)
		if err == nil && playing {
			err = m.player.StopUnit(t.Unit, false)
		} else if err == nil {
			_, err = m.player.PlayUnit(t.Unit, m.loops[m.selected])
		}
		m.setError(err)
	case key.Matches(msg, m.keys.Loop):
		m.loops[m.selected] = !m.loops[m.selected]
		// A stopped unit picks the flag up on its next start
		playing, err := m.player.CheckPlaying(t.Unit)
		if err == nil && playing {
			_, err = m.player.PlayUnit(t.Unit, m.loops[m.selected])
		}
		m.setError(err)
	case key.Matches(msg, m.keys.Rewind):
		_, err := m.player.SetTime(t.Unit, 0)
		m.setError(err)
	case key.Matches(msg, m.keys.Forward):
		m.seekBy(t, seekStepMs)
	case key.Matches(msg, m.keys.Back):
		m.seekBy(t, -seekStepMs)
	case key.Matches(msg, m.keys.Preview):
		data, err := os.ReadFile(t.Path)
		if err == nil {
			err = m.player.PlayPreview(data, false)
		}
		if err == nil {
			m.previewName = t.Name
		}
		m.setError(err)
	}

	m.refresh()
	return m, nil
}

func (m *Model) seekBy(t Track, deltaMs int64) {
	info, err := m.player.Unit(t.Unit)
	if err == nil {
		_, err = m.player.SetTime(t.Unit, info.TimeMs+deltaMs)
	}
	m.setError(err)
}

func (m *Model) setError(err error) {
	if err != nil {
		m.lastError = err.Error()
	} else {
		m.lastError = ""
	}
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("acaudio player") + "\n\n")
	b.WriteString(m.renderTracks())
	b.WriteString("\n" + m.renderPreview() + "\n")

	if m.showDebug {
		b.WriteString(m.renderDebug())
	}
	if m.lastError != "" {
		b.WriteString(errorStyle.Render("error: "+m.lastError) + "\n")
	}
	b.WriteString("\n" + m.renderHelp())

	return boxStyle.Width(max(m.width-2, 20)).Render(b.String())
}

// renderTracks renders one line per unit
func (m Model) renderTracks() string {
	if len(m.tracks) == 0 {
		return statusStyle.Render("No tracks loaded") + "\n"
	}

	var b strings.Builder
	for i, t := range m.tracks {
		var info acaudio.UnitInfo
		if i < len(m.infos) {
			info = m.infos[i]
		}

		icon := "■"
		if info.Playing {
			icon = playingStyle.Render("▶")
		}
		loop := " "
		if m.loops[i] {
			loop = "↻"
		}

		line := fmt.Sprintf("%s %s %-24s [%s] %s / %s",
			icon, loop, truncate(t.Name, 24),
			renderBar(info.TimeMs, info.LengthMs, barWidth),
			formatMs(info.TimeMs), formatMs(info.LengthMs))
		if i == m.selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// renderPreview renders the preview slot
func (m Model) renderPreview() string {
	if !m.stats.PreviewActive {
		return statusStyle.Render("Preview: none")
	}
	state := "stopped"
	if m.previewPlaying {
		state = "playing"
	}
	name := m.previewName
	if name == "" {
		name = "(preview)"
	}
	return fmt.Sprintf("Preview: %s %s %s", truncate(name, 24), state, formatMs(m.previewMs))
}

// renderDebug renders table occupancy and focus state
func (m Model) renderDebug() string {
	return statusStyle.Render(fmt.Sprintf("resources=%d units=%d playing=%d preview=%t focused=%t",
		m.stats.Resources, m.stats.Units, m.stats.PlayingUnits, m.stats.PreviewActive, m.focused)) + "\n"
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	var parts []string
	for _, b := range m.keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+":"+h.Desc)
	}
	return helpStyle.Render(strings.Join(parts, "  "))
}

// Utility functions
func renderBar(value, total int64, width int) string {
	filled := 0
	if total > 0 {
		filled = int(value * int64(width) / total)
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func formatMs(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	s := ms / 1000
	return fmt.Sprintf("%d:%02d.%d", s/60, s%60, (ms%1000)/100)
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
