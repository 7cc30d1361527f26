package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/artpar/filetree/internal/app"
	"github.com/artpar/filetree/internal/core"
	"github.com/artpar/filetree/internal/tui"
	"github.com/artpar/filetree/internal/tui/components"
	"github.com/artpar/filetree/internal/tui/keys"
)

const notificationTimeout = 2 * time.Second

// MainView is the tree with a help bar and a status bar underneath.
type MainView struct {
	width        int
	height       int
	app          *app.App
	tree         *components.FileTree
	showHelp     bool
	notification string // Temporary notification message

	writeClipboard func(string) error
}

// clearNotificationMsg is sent to clear the notification.
type clearNotificationMsg struct{}

// NewMainView creates a new main view over a.
func NewMainView(a *app.App) *MainView {
	view := &MainView{
		app:            a,
		tree:           components.NewFileTree(a),
		writeClipboard: clipboard.WriteAll,
	}
	view.tree.Focus()
	view.tree.SetOrigin(0, 0)
	return view
}

// Init initializes the view.
func (v *MainView) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (v *MainView) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	// Handle help overlay first
	if v.showHelp {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			if keyMsg.Type == tea.KeyEsc || string(keyMsg.Runes) == "?" {
				v.showHelp = false
			}
			return v, nil
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.tree.SetSize(v.width, v.treeHeight())
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case tui.CopyMsg:
		return v.handleCopy(msg.Content)

	case tui.NoticeMsg:
		return v, v.notify(msg.Text)

	case clearNotificationMsg:
		v.notification = ""
		return v, nil
	}

	return v.forwardToTree(msg)
}

func (v *MainView) handleKeyMsg(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	// Ctrl+C always quits
	if msg.Type == tea.KeyCtrlC {
		return v, tea.Quit
	}

	// Outside NORMAL mode every key belongs to the tree
	if v.tree.Mode() != keys.ModeNormal {
		return v.forwardToTree(msg)
	}

	if msg.Type == tea.KeyRunes {
		switch string(msg.Runes) {
		case "q":
			return v, tea.Quit
		case "?":
			v.showHelp = true
			return v, nil
		}
	}

	return v.forwardToTree(msg)
}

func (v *MainView) forwardToTree(msg tea.Msg) (tui.Component, tea.Cmd) {
	updated, cmd := v.tree.Update(msg)
	v.tree = updated.(*components.FileTree)
	return v, cmd
}

func (v *MainView) handleCopy(content string) (tui.Component, tea.Cmd) {
	if err := v.writeClipboard(content); err != nil {
		return v, v.notify("✗ Copy failed")
	}
	return v, v.notify(fmt.Sprintf("✓ Copied %s", content))
}

func (v *MainView) notify(text string) tea.Cmd {
	v.notification = text
	return tea.Tick(notificationTimeout, func(t time.Time) tea.Msg {
		return clearNotificationMsg{}
	})
}

func (v *MainView) treeHeight() int {
	h := v.height - 2 // help bar + status bar
	if h < 3 {
		h = 3
	}
	return h
}

// View renders the view.
func (v *MainView) View() string {
	if v.width == 0 || v.height == 0 {
		return ""
	}

	if v.showHelp {
		return v.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		v.tree.View(),
		v.renderHelpBar(),
		v.renderStatusBar(),
	)
}

// renderHelpBar renders the bindings of the current mode.
func (v *MainView) renderHelpBar() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))
	sepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	sep := sepStyle.Render(" │ ")

	var hints []string
	mode := v.tree.Mode()
	if mode == keys.ModeInsert {
		hints = []string{
			keyStyle.Render("Enter") + descStyle.Render(" Save"),
			keyStyle.Render("Esc") + descStyle.Render(" Done"),
		}
	} else {
		for _, kb := range v.tree.Bindings(mode) {
			hints = append(hints, keyStyle.Render(kb.Key())+descStyle.Render(" "+kb.Description()))
		}
	}
	if mode == keys.ModeNormal {
		hints = append(hints,
			keyStyle.Render("?")+descStyle.Render(" Help"),
			keyStyle.Render("q")+descStyle.Render(" Quit"),
		)
	}

	barStyle := lipgloss.NewStyle().
		Width(v.width).
		MaxHeight(1).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	return barStyle.Render(strings.Join(hints, sep))
}

func (v *MainView) renderStatusBar() string {
	var items []string

	// Mode indicator
	modeStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)
	switch v.tree.Mode() {
	case keys.ModeInsert:
		modeStyle = modeStyle.
			Background(lipgloss.Color("214")).
			Foreground(lipgloss.Color("0"))
	case keys.ModeMove:
		modeStyle = modeStyle.
			Background(lipgloss.Color("141")).
			Foreground(lipgloss.Color("255"))
	default:
		modeStyle = modeStyle.
			Background(lipgloss.Color("34")).
			Foreground(lipgloss.Color("255"))
	}
	items = append(items, modeStyle.Render(v.tree.Mode().String()))

	countStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Padding(0, 1)
	items = append(items, countStyle.Render(fmt.Sprintf("%d nodes", core.Count(v.app.Tree()))))

	if id, ok := v.tree.Dragging(); ok {
		if n, found := core.Find(v.app.Tree(), id); found {
			dragStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color("141")).
				Padding(0, 1)
			items = append(items, dragStyle.Render("Moving "+n.Label))
		}
	}

	if v.notification != "" {
		notifyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Bold(true).
			Padding(0, 1)
		if strings.HasPrefix(v.notification, "✗") {
			notifyStyle = notifyStyle.Foreground(lipgloss.Color("160"))
		}
		items = append(items, notifyStyle.Render(v.notification))
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("243")).
		Padding(0, 1)
	helpHint := helpStyle.Render("? help  q quit")

	leftContent := strings.Join(items, " ")
	spacerWidth := v.width - lipgloss.Width(leftContent) - lipgloss.Width(helpHint)
	if spacerWidth < 0 {
		spacerWidth = 0
	}

	barStyle := lipgloss.NewStyle().
		Width(v.width).
		MaxHeight(1).
		Background(lipgloss.Color("236"))

	return barStyle.Render(leftContent + strings.Repeat(" ", spacerWidth) + helpHint)
}

func (v *MainView) renderHelp() string {
	helpContent := []string{
		"╭──────────────── File Tree Help ────────────────╮",
		"│                                                │",
		"│  Navigation                                    │",
		"│    j / k              Move down/up             │",
		"│    h / l              Collapse/Expand          │",
		"│    Space              Toggle folder            │",
		"│    gg / G             Go to top/bottom         │",
		"│                                                │",
		"│  Editing                                       │",
		"│    a / A              New file / folder        │",
		"│    e / Enter / F2     Rename                   │",
		"│    dd / x / Del       Delete                   │",
		"│    y                  Copy path                │",
		"│    Enter / Esc        Finish renaming          │",
		"│                                                │",
		"│  Moving                                        │",
		"│    m                  Pick up node             │",
		"│    K / J              Drop above/below         │",
		"│    i                  Drop into folder         │",
		"│    Esc                Cancel move              │",
		"│                                                │",
		"│  Mouse                                         │",
		"│    Drag a row         Move above/below         │",
		"│    Drag onto icon     Move into folder         │",
		"│    Double-click       Rename                   │",
		"│    ✕                  Delete                   │",
		"│                                                │",
		"│  General                                       │",
		"│    ?                  Toggle this help         │",
		"│    q / Ctrl+C         Quit                     │",
		"│                                                │",
		"│          Press ? or Esc to close               │",
		"╰────────────────────────────────────────────────╯",
	}

	helpStyle := lipgloss.NewStyle().
		Width(v.width).
		Height(v.height).
		Align(lipgloss.Center, lipgloss.Center)

	return helpStyle.Render(strings.Join(helpContent, "\n"))
}

// Title returns the view title.
func (v *MainView) Title() string {
	return "File Tree"
}

// Focused returns true (main view is always focused).
func (v *MainView) Focused() bool {
	return true
}

// Focus is a no-op for main view.
func (v *MainView) Focus() {}

// Blur is a no-op for main view.
func (v *MainView) Blur() {}

// SetSize sets the view dimensions.
func (v *MainView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.tree.SetSize(v.width, v.treeHeight())
}

// Width returns the view width.
func (v *MainView) Width() int {
	return v.width
}

// Height returns the view height.
func (v *MainView) Height() int {
	return v.height
}

// FileTree returns the tree component.
func (v *MainView) FileTree() *components.FileTree {
	return v.tree
}

// ShowingHelp returns whether help is showing.
func (v *MainView) ShowingHelp() bool {
	return v.showHelp
}

// Notification returns the current notification message.
func (v *MainView) Notification() string {
	return v.notification
}
