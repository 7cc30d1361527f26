package harness

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/artpar/filetree/internal/app"
	"github.com/artpar/filetree/internal/core"
	"github.com/artpar/filetree/internal/tui/components"
	"github.com/artpar/filetree/internal/tui/views"
)

// cmdTimeout bounds how long a returned command may run. Timers such as
// notification expiry and cursor blink never finish in time and are dropped.
const cmdTimeout = 50 * time.Millisecond

// TUIRunner provides TUI testing capabilities.
type TUIRunner struct {
	harness *E2EHarness
}

// TUISession represents an active TUI test session.
type TUISession struct {
	runner *TUIRunner
	app    *app.App
	model  *views.MainView
	t      *testing.T
	quit   bool
}

// Start starts a new TUI session over tree.
func (r *TUIRunner) Start(t *testing.T, tree core.Tree) *TUISession {
	t.Helper()
	return r.StartWithSize(t, tree, 100, 30)
}

// StartWithSize starts a TUI session with custom dimensions.
func (r *TUIRunner) StartWithSize(t *testing.T, tree core.Tree, width, height int) *TUISession {
	t.Helper()
	return r.StartWithApp(t, app.New(app.WithTree(tree)), width, height)
}

// StartWithApp starts a TUI session over an existing application.
func (r *TUIRunner) StartWithApp(t *testing.T, a *app.App, width, height int) *TUISession {
	t.Helper()

	model := views.NewMainView(a)
	model.SetSize(width, height)

	return &TUISession{
		runner: r,
		app:    a,
		model:  model,
		t:      t,
	}
}

// Send feeds msg through the model and runs the resulting commands.
func (s *TUISession) Send(msg tea.Msg) *TUISession {
	updated, cmd := s.model.Update(msg)
	s.model = updated.(*views.MainView)
	s.executeCmd(cmd)
	return s
}

// SendKey sends a key press.
func (s *TUISession) SendKey(key string) *TUISession {
	return s.Send(parseKeyMsg(key))
}

// SendKeys sends multiple key presses.
func (s *TUISession) SendKeys(keys ...string) *TUISession {
	for _, key := range keys {
		s.SendKey(key)
	}
	return s
}

// Type sends a sequence of rune keys.
func (s *TUISession) Type(text string) *TUISession {
	for _, r := range text {
		if r == ' ' {
			s.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{r}})
			continue
		}
		s.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return s
}

// Press sends a left button press at screen coordinates.
func (s *TUISession) Press(x, y int) *TUISession {
	return s.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

// Release sends a button release at screen coordinates.
func (s *TUISession) Release(x, y int) *TUISession {
	return s.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
}

// ClickLabel clicks on the label of the row showing label.
func (s *TUISession) ClickLabel(label string) *TUISession {
	x, y := s.labelPoint(label)
	return s.Press(x, y).Release(x, y)
}

// DoubleClickLabel double clicks on the label of the row showing label.
func (s *TUISession) DoubleClickLabel(label string) *TUISession {
	x, y := s.labelPoint(label)
	s.Press(x, y).Release(x, y)
	return s.Press(x, y).Release(x, y)
}

// ClickOutside clicks below the tree border.
func (s *TUISession) ClickOutside() *TUISession {
	y := s.model.Height() - 1
	return s.Press(0, y).Release(0, y)
}

// Drag presses on the label of from and releases on the label of to.
func (s *TUISession) Drag(from, to string) *TUISession {
	fx, fy := s.labelPoint(from)
	tx, ty := s.labelPoint(to)
	return s.Press(fx, fy).Release(tx, ty)
}

// DragInto presses on the label of from and releases on the icon of to.
func (s *TUISession) DragInto(from, to string) *TUISession {
	fx, fy := s.labelPoint(from)
	item, row := s.row(to)
	return s.Press(fx, fy).Release(components.IconColumn(item)+1, rowY(row))
}

// ClickDelete clicks the delete affordance on the row showing label.
func (s *TUISession) ClickDelete(label string) *TUISession {
	_, row := s.row(label)
	x := s.model.FileTree().Width() - 3
	return s.Press(x, rowY(row)).Release(x, rowY(row))
}

// rowY is the screen line of visible row i: the tree sits at the origin
// below its top border and header.
func rowY(i int) int { return 2 + i }

func (s *TUISession) labelPoint(label string) (int, int) {
	item, row := s.row(label)
	return components.LabelColumn(item) + 1, rowY(row)
}

func (s *TUISession) row(label string) (components.TreeItem, int) {
	s.t.Helper()
	for i, item := range s.model.FileTree().Items() {
		if item.Label == label {
			return item, i
		}
	}
	s.t.Fatalf("no visible row labelled %q", label)
	return components.TreeItem{}, -1
}

// executeCmd runs cmd and feeds its message back into Update. Batches are
// expanded and commands that outlive cmdTimeout are dropped.
func (s *TUISession) executeCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(cmdTimeout):
		return
	}

	switch msg := msg.(type) {
	case nil:
		return
	case tea.QuitMsg:
		s.quit = true
		return
	case tea.BatchMsg:
		for _, c := range msg {
			s.executeCmd(c)
		}
		return
	}

	s.Send(msg)
}

// Wait pauses for the specified duration.
func (s *TUISession) Wait(d time.Duration) *TUISession {
	time.Sleep(d)
	return s
}

// WaitForOutput waits for specific text in output.
func (s *TUISession) WaitForOutput(text string) error {
	timeout := s.runner.harness.timeout
	deadline := time.Now().Add(timeout)
	pollInterval := 100 * time.Millisecond

	for time.Now().Before(deadline) {
		if strings.Contains(s.Output(), text) {
			return nil
		}
		time.Sleep(pollInterval)
	}

	return &TimeoutError{text: text, timeout: timeout}
}

// Output returns the current TUI output.
func (s *TUISession) Output() string {
	return s.model.View()
}

// Quitted reports whether the model asked the program to quit.
func (s *TUISession) Quitted() bool {
	return s.quit
}

// Model returns the underlying MainView for direct assertions.
func (s *TUISession) Model() *views.MainView {
	return s.model
}

// App returns the application driven by the session.
func (s *TUISession) App() *app.App {
	return s.app
}

// ShowingHelp returns true if help overlay is visible.
func (s *TUISession) ShowingHelp() bool {
	return s.model.ShowingHelp()
}

// TimeoutError represents a timeout waiting for output.
type TimeoutError struct {
	text    string
	timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return "timeout after " + e.timeout.String() + " waiting for: " + e.text
}

// parseKeyMsg converts key string to tea.KeyMsg.
func parseKeyMsg(key string) tea.KeyMsg {
	switch strings.ToLower(key) {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc", "escape":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "delete":
		return tea.KeyMsg{Type: tea.KeyDelete}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "f2":
		return tea.KeyMsg{Type: tea.KeyF2}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
