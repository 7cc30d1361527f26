package views

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/filetree/internal/app"
	"github.com/artpar/filetree/internal/core"
	"github.com/artpar/filetree/internal/tui"
	"github.com/artpar/filetree/internal/tui/keys"
)

func newTestView(t *testing.T) (*MainView, *app.App) {
	t.Helper()
	a := app.New(app.WithTree(core.Tree{
		{ID: "src", Label: "src", Kind: core.KindFolder, Children: []*core.Node{
			{ID: "main", Label: "main.go", Kind: core.KindFile},
		}},
		{ID: "readme", Label: "README.md", Kind: core.KindFile},
	}))
	view := NewMainView(a)
	view.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	return view, a
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewMainView(t *testing.T) {
	t.Run("creates main view", func(t *testing.T) {
		view, _ := newTestView(t)
		assert.NotNil(t, view.FileTree())
		assert.Equal(t, "File Tree", view.Title())
		assert.True(t, view.FileTree().Focused())
	})

	t.Run("sizes the tree above the bars", func(t *testing.T) {
		view, _ := newTestView(t)
		assert.Equal(t, 80, view.Width())
		assert.Equal(t, 20, view.Height())
		assert.Equal(t, 80, view.FileTree().Width())
		assert.Equal(t, 18, view.FileTree().Height())
	})
}

func TestMainView_Quit(t *testing.T) {
	t.Run("q quits in normal mode", func(t *testing.T) {
		view, _ := newTestView(t)
		_, cmd := view.Update(key('q'))
		assert.True(t, isQuit(cmd))
	})

	t.Run("q is typed while renaming", func(t *testing.T) {
		view, a := newTestView(t)
		require.True(t, a.BeginEdit("readme"))
		a.Deferred().Drain()

		_, cmd := view.Update(key('q'))
		assert.False(t, isQuit(cmd))
		assert.Equal(t, "q", view.FileTree().EditorValue())
	})

	t.Run("ctrl+c always quits", func(t *testing.T) {
		view, a := newTestView(t)
		a.BeginEdit("readme")
		_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		assert.True(t, isQuit(cmd))
	})
}

func TestMainView_Help(t *testing.T) {
	view, _ := newTestView(t)

	view.Update(key('?'))
	assert.True(t, view.ShowingHelp())
	assert.Contains(t, view.View(), "File Tree Help")

	view.Update(key('j'))
	assert.True(t, view.ShowingHelp(), "keys are swallowed by the overlay")
	assert.Equal(t, 0, view.FileTree().Cursor())

	view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, view.ShowingHelp())
}

func TestMainView_Notifications(t *testing.T) {
	t.Run("copy writes the clipboard", func(t *testing.T) {
		view, _ := newTestView(t)
		var copied string
		view.writeClipboard = func(s string) error {
			copied = s
			return nil
		}

		view.Update(key('j'))
		_, cmd := view.Update(key('y'))
		require.NotNil(t, cmd)
		view.Update(cmd())

		assert.Equal(t, "src/main.go", copied)
		assert.Equal(t, "✓ Copied src/main.go", view.Notification())
	})

	t.Run("copy failure", func(t *testing.T) {
		view, _ := newTestView(t)
		view.writeClipboard = func(string) error { return errors.New("no clipboard") }

		view.Update(tui.CopyMsg{Content: "x"})
		assert.Equal(t, "✗ Copy failed", view.Notification())
	})

	t.Run("notice is shown then cleared", func(t *testing.T) {
		view, _ := newTestView(t)

		_, cmd := view.Update(tui.NoticeMsg{Text: "✗ Cannot drop into a file"})
		assert.NotNil(t, cmd)
		assert.Contains(t, view.View(), "Cannot drop into a file")

		view.Update(clearNotificationMsg{})
		assert.Empty(t, view.Notification())
	})
}

func TestMainView_StatusBar(t *testing.T) {
	t.Run("normal mode", func(t *testing.T) {
		view, _ := newTestView(t)
		out := view.View()
		assert.Contains(t, out, "NORMAL")
		assert.Contains(t, out, "3 nodes")
		assert.Contains(t, out, "New file")
	})

	t.Run("move mode", func(t *testing.T) {
		view, _ := newTestView(t)
		view.Update(key('m'))

		assert.Equal(t, keys.ModeMove, view.FileTree().Mode())
		out := view.View()
		assert.Contains(t, out, "MOVE")
		assert.Contains(t, out, "Moving src")
		assert.Contains(t, out, "Drop into")
	})

	t.Run("insert mode", func(t *testing.T) {
		view, a := newTestView(t)
		a.BeginEdit("readme")
		assert.Contains(t, view.View(), "INSERT")
	})
}

func TestMainView_Flow(t *testing.T) {
	view, a := newTestView(t)

	// add a folder, rename it, move README into it
	view.Update(key('A'))
	view.Update(key('e'))
	a.Deferred().Drain()
	for _, r := range "docs" {
		view.Update(key(r))
	}
	view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	view.Update(key('k'))
	view.Update(key('m'))
	view.Update(key('j'))
	view.Update(key('i'))

	require.Len(t, a.Tree(), 2)
	assert.Equal(t, "docs", a.Tree()[1].Label)
	require.Len(t, a.Tree()[1].Children, 1)
	assert.Equal(t, "README.md", a.Tree()[1].Children[0].Label)
}
