// Package tui provides Bubble Tea models for resub.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FileChange is one file's pending rewrite as shown in the preview.
type FileChange struct {
	// Path is the file's relative path.
	Path string

	// Before and After are the file's content around the rewrite.
	Before string
	After  string
}

// PreviewModel is a Bubble Tea model for reviewing pending rewrites and
// choosing which files to commit.
type PreviewModel struct {
	// Changes is the full list of pending rewrites.
	Changes []FileChange

	// Selected is the set of selected change indices. Everything starts
	// selected.
	Selected map[int]bool

	// Filtered is the list of change indices after filtering.
	Filtered []int

	// cursor is the current cursor position in the filtered list.
	cursor int

	// FilterInput is the text input for filtering by path.
	FilterInput textinput.Model

	// Viewport shows the content preview for the file under the cursor.
	Viewport viewport.Model

	// ShowAfter controls which side of the rewrite the preview shows.
	ShowAfter bool

	// Focused indicates which component is focused ("filter" or "list").
	Focused string

	// Quit indicates whether the user quit without committing.
	Quit bool

	// Confirmed indicates whether the user confirmed the selection.
	Confirmed bool

	// styles
	normalStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	previewStyle  lipgloss.Style
}

// NewPreviewModel creates a new preview model with every change selected.
func NewPreviewModel(changes []FileChange) PreviewModel {
	ti := textinput.New()
	ti.Placeholder = "Filter files..."
	ti.Focus()

	vp := viewport.New(60, 20)

	filtered := make([]int, len(changes))
	selected := make(map[int]bool, len(changes))
	for i := range changes {
		filtered[i] = i
		selected[i] = true
	}

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("229")).
		Bold(true)
	previewStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("242"))

	return PreviewModel{
		Changes:       changes,
		Selected:      selected,
		Filtered:      filtered,
		cursor:        0,
		FilterInput:   ti,
		Viewport:      vp,
		ShowAfter:     true,
		Focused:       "filter",
		Quit:          false,
		Confirmed:     false,
		normalStyle:   normalStyle,
		selectedStyle: selectedStyle,
		previewStyle:  previewStyle,
	}
}

// Init implements tea.Model.
func (m PreviewModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quit = true
			return m, tea.Quit

		case "enter":
			if m.Focused == "filter" {
				m.Focused = "list"
				m.FilterInput.Blur()
			} else {
				m.Confirmed = true
				return m, tea.Quit
			}

		case "/":
			m.Focused = "filter"
			m.FilterInput.Focus()
			return m, nil

		case " ":
			// Toggle selection
			if m.Focused == "list" {
				if len(m.Filtered) > 0 {
					idx := m.Filtered[m.cursor]
					m.Selected[idx] = !m.Selected[idx]
				}
				return m, nil
			}

		case "a":
			if m.Focused == "list" {
				for _, idx := range m.Filtered {
					m.Selected[idx] = true
				}
				return m, nil
			}

		case "n":
			if m.Focused == "list" {
				m.Selected = make(map[int]bool)
				return m, nil
			}

		case "b":
			if m.Focused == "list" {
				m.ShowAfter = !m.ShowAfter
				return m, nil
			}

		case "up", "k":
			if m.Focused == "list" && m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.Focused == "list" && m.cursor < len(m.Filtered)-1 {
				m.cursor++
			}

		case "home", "g":
			if m.Focused == "list" {
				m.cursor = 0
			}

		case "end", "G":
			if m.Focused == "list" {
				m.cursor = len(m.Filtered) - 1
			}
		}
	}

	// Update filter input
	if m.Focused == "filter" {
		oldFilter := m.FilterInput.Value()
		m.FilterInput, cmd = m.FilterInput.Update(msg)
		newFilter := m.FilterInput.Value()
		if newFilter != oldFilter {
			m.applyFilter(newFilter)
		}
	}

	if len(m.Filtered) > 0 {
		m.Viewport, cmd = m.Viewport.Update(msg)
	}

	return m, cmd
}

// applyFilter rebuilds the filtered list from a case-insensitive
// substring match on paths, resetting the cursor.
func (m *PreviewModel) applyFilter(filter string) {
	m.Filtered = m.Filtered[:0]
	needle := strings.ToLower(filter)
	for i, change := range m.Changes {
		if needle == "" || strings.Contains(strings.ToLower(change.Path), needle) {
			m.Filtered = append(m.Filtered, i)
		}
	}
	m.cursor = 0
}

// SelectedPaths returns the paths of the selected changes, in original
// order.
func (m PreviewModel) SelectedPaths() []string {
	var paths []string
	for i, change := range m.Changes {
		if m.Selected[i] {
			paths = append(paths, change.Path)
		}
	}
	return paths
}

// SelectedCount returns the number of selected changes.
func (m PreviewModel) SelectedCount() int {
	n := 0
	for _, ok := range m.Selected {
		if ok {
			n++
		}
	}
	return n
}

// View implements tea.Model.
func (m PreviewModel) View() string {
	if len(m.Changes) == 0 {
		return "\n  Nothing to rewrite.\n"
	}

	var b strings.Builder

	b.WriteString("\n  ")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render("Rewrite Preview"))
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(m.helpText())
	b.WriteString("\n\n")

	leftWidth := 50
	rightWidth := 60

	leftCol := m.renderListColumn(leftWidth)
	rightCol := m.renderPreviewColumn(rightWidth)

	combined := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)

	b.WriteString(combined)
	b.WriteString("\n")

	return b.String()
}

// renderListColumn renders the filter and file list column.
func (m PreviewModel) renderListColumn(width int) string {
	var b strings.Builder

	b.WriteString("  Filter: ")
	b.WriteString(m.FilterInput.View())
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(
		fmt.Sprintf("%d files, %d selected", len(m.Filtered), m.SelectedCount()),
	))
	b.WriteString("\n\n")

	if len(m.Filtered) == 0 {
		b.WriteString("  (no matches)")
	} else {
		// Show visible window around cursor
		start := max(0, m.cursor-10)
		end := min(len(m.Filtered), m.cursor+11)

		for i := start; i < end; i++ {
			changeIdx := m.Filtered[i]
			change := m.Changes[changeIdx]
			isSelected := m.Selected[changeIdx]
			isCursor := i == m.cursor

			line := "  "
			if isSelected {
				line += "[x] "
			} else {
				line += "[ ] "
			}

			path := change.Path
			if len(path) > 40 {
				path = "..." + path[len(path)-37:]
			}

			style := m.normalStyle
			if isCursor {
				style = m.selectedStyle
			}
			if isSelected {
				style = style.Foreground(lipgloss.Color("green"))
			}

			line += style.Render(path)
			b.WriteString(line + "\n")
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(b.String())
}

// renderPreviewColumn renders the content preview column.
func (m PreviewModel) renderPreviewColumn(width int) string {
	if len(m.Filtered) == 0 {
		return ""
	}

	changeIdx := m.Filtered[m.cursor]
	change := m.Changes[changeIdx]

	var b strings.Builder

	side := "After"
	content := change.After
	if !m.ShowAfter {
		side = "Before"
		content = change.Before
	}

	b.WriteString(fmt.Sprintf("  Preview (%s)\n\n", side))
	b.WriteString("  File: " + change.Path + "\n")
	b.WriteString(fmt.Sprintf("  Size: %d -> %d bytes\n\n", len(change.Before), len(change.After)))

	for _, line := range previewLines(content, 16) {
		b.WriteString("  " + m.previewStyle.Render(line) + "\n")
	}

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(b.String())
}

// previewLines truncates content to the first n display lines.
func previewLines(content string, n int) []string {
	lines := strings.Split(content, "\n")
	if len(lines) > n {
		lines = lines[:n]
		lines = append(lines, "...")
	}
	for i, line := range lines {
		if len(line) > 54 {
			lines[i] = line[:51] + "..."
		}
	}
	return lines
}

// helpText returns the help text.
func (m PreviewModel) helpText() string {
	var parts []string

	if m.Focused == "filter" {
		parts = append(parts, "[Enter] Focus list", "[Ctrl+C] Quit")
	} else {
		parts = append(parts,
			"[Enter] Commit selected",
			"[Space] Toggle",
			"[a/n] Select all/none",
			"[b] Before/after",
			"[/] Focus filter",
			"[q] Quit",
		)
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(strings.Join(parts, "  "))
}
