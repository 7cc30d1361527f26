package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Component is the interface for all TUI components.
type Component interface {
	// Init initializes the component.
	Init() tea.Cmd

	// Update handles messages and returns the updated component.
	Update(msg tea.Msg) (Component, tea.Cmd)

	// View renders the component.
	View() string

	// Title returns the component title.
	Title() string

	// Focused returns true if the component is focused.
	Focused() bool

	// Focus sets the component as focused.
	Focus()

	// Blur removes focus from the component.
	Blur()

	// SetSize sets the component dimensions.
	SetSize(width, height int)

	// Width returns the component width.
	Width() int

	// Height returns the component height.
	Height() int
}

// Messages

// FocusMsg is sent when a component should gain focus.
type FocusMsg struct{}

// BlurMsg is sent when a component should lose focus.
type BlurMsg struct{}

// NoticeMsg asks the host view to show a short status notification.
// Notices starting with "✗" are rendered as errors.
type NoticeMsg struct {
	Text string
}

// CopyMsg asks the host view to put Content on the clipboard.
type CopyMsg struct {
	Content string
}

// Styles

// Styles holds the colors shared by tree rows and panels.
type Styles struct {
	Focused     lipgloss.Style
	Unfocused   lipgloss.Style
	Selected    lipgloss.Style
	SelectedDim lipgloss.Style
	DropTarget  lipgloss.Style
	Dragging    lipgloss.Style
	Muted       lipgloss.Style
	Danger      lipgloss.Style
}

// DefaultStyles returns default styling.
func DefaultStyles() Styles {
	return Styles{
		Focused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")),
		Unfocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("244")),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("229")),
		SelectedDim: lipgloss.NewStyle().
			Background(lipgloss.Color("238")).
			Foreground(lipgloss.Color("252")),
		DropTarget: lipgloss.NewStyle().
			Background(lipgloss.Color("214")).
			Foreground(lipgloss.Color("0")),
		Dragging: lipgloss.NewStyle().
			Foreground(lipgloss.Color("141")).
			Italic(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")),
	}
}

// RenderTitle renders a title bar.
func RenderTitle(title string, width int, focused bool) string {
	style := lipgloss.NewStyle().
		Width(width).
		Bold(true).
		Padding(0, 1)

	if focused {
		style = style.Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("62"))
	} else {
		style = style.Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238"))
	}

	return style.Render(title)
}

// RenderBorder renders content with a rounded border.
func RenderBorder(content string, focused bool) string {
	styles := DefaultStyles()
	if focused {
		return styles.Focused.Render(content)
	}
	return styles.Unfocused.Render(content)
}

// Truncate truncates a string to fit within a width of terminal cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return cut(runes, width)
	}
	return cut(runes, width-3) + "..."
}

func cut(runes []rune, width int) string {
	var b strings.Builder
	used := 0
	for _, r := range runes {
		w := lipgloss.Width(string(r))
		if used+w > width {
			break
		}
		b.WriteRune(r)
		used += w
	}
	return b.String()
}

// PadRight pads a string with spaces to a given width of terminal cells.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}
