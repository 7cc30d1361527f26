package harness

import (
	"strings"

	"github.com/artpar/filetree/internal/core"
)

// State represents a snapshot of the entire TUI state for verification.
type State struct {
	MainView *MainViewState
	Tree     *FileTreeState
}

// MainViewState captures the main view state.
type MainViewState struct {
	Mode         string // "NORMAL", "INSERT", "MOVE"
	ShowingHelp  bool
	Notification string
	Quitted      bool
}

// FileTreeState captures the tree state.
type FileTreeState struct {
	Rows          []string // visible rows, indented two spaces per level
	Outline       string   // the whole tree, collapsed folders included
	NodeCount     int
	Cursor        int
	SelectedLabel string
	EditingLabel  string
	EditorValue   string
	EditorFocused bool
	Dragging      string
}

// CaptureState captures the current state of the TUI.
func (s *TUISession) CaptureState() *State {
	return &State{
		MainView: s.captureMainViewState(),
		Tree:     s.captureTreeState(),
	}
}

func (s *TUISession) captureMainViewState() *MainViewState {
	return &MainViewState{
		Mode:         s.model.FileTree().Mode().String(),
		ShowingHelp:  s.model.ShowingHelp(),
		Notification: s.model.Notification(),
		Quitted:      s.quit,
	}
}

func (s *TUISession) captureTreeState() *FileTreeState {
	ft := s.model.FileTree()
	tree := s.app.Tree()

	state := &FileTreeState{
		Outline:       Outline(tree),
		NodeCount:     core.Count(tree),
		Cursor:        ft.Cursor(),
		EditorValue:   ft.EditorValue(),
		EditorFocused: ft.EditorFocused(),
	}

	for _, item := range ft.Items() {
		state.Rows = append(state.Rows, strings.Repeat("  ", item.Level)+item.Label)
	}
	if sel := ft.Selected(); sel != nil {
		state.SelectedLabel = sel.Label
	}
	if id, ok := s.app.EditingID(); ok {
		if n, found := core.Find(tree, id); found {
			state.EditingLabel = n.Label
		}
	}
	if id, ok := ft.Dragging(); ok {
		if n, found := core.Find(tree, id); found {
			state.Dragging = n.Label
		}
	}
	return state
}

// Outline renders t one node per line, folders suffixed with "/" and
// children indented two spaces.
func Outline(t core.Tree) string {
	var b strings.Builder
	var walk func(nodes []*core.Node, depth int)
	walk = func(nodes []*core.Node, depth int) {
		for _, n := range nodes {
			b.WriteString(strings.Repeat("  ", depth))
			b.WriteString(n.Label)
			if n.Kind == core.KindFolder {
				b.WriteString("/")
			}
			b.WriteString("\n")
			walk(n.Children, depth+1)
		}
	}
	walk(t, 0)
	return b.String()
}
