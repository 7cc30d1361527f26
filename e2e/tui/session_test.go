package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/filetree/e2e/harness"
	"github.com/artpar/filetree/internal/app"
	"github.com/artpar/filetree/internal/config"
	"github.com/artpar/filetree/internal/core"
)

func seed() core.Tree {
	return core.Tree{
		{ID: "src", Label: "src", Kind: core.KindFolder, Children: []*core.Node{
			{ID: "main", Label: "main.go", Kind: core.KindFile},
		}},
		{ID: "readme", Label: "README.md", Kind: core.KindFile},
	}
}

func TestTUI_HelpOverlay(t *testing.T) {
	h := harness.New(t, harness.Config{})

	t.Run("? opens help overlay", func(t *testing.T) {
		session := h.TUI().Start(t, seed())
		session.SendKey("?")

		assert := harness.NewAssertions(t)
		assert.HelpVisible(session.Output())
		assert.OutputContains(session.Output(), "Drop into folder", "Double-click")
	})

	t.Run("? again closes help overlay", func(t *testing.T) {
		session := h.TUI().Start(t, seed())
		session.SendKeys("?", "?")
		harness.NewAssertions(t).HelpNotVisible(session.Output())
	})

	t.Run("Escape closes help overlay", func(t *testing.T) {
		session := h.TUI().Start(t, seed())
		session.SendKeys("?", "Escape")
		harness.NewAssertions(t).HelpNotVisible(session.Output())
	})
}

func TestTUI_Layout(t *testing.T) {
	h := harness.New(t, harness.Config{})

	t.Run("rows and bars are drawn", func(t *testing.T) {
		session := h.TUI().Start(t, seed())
		output := session.Output()

		assert := harness.NewAssertions(t)
		assert.RowVisible(output, "src")
		assert.RowVisible(output, "main.go")
		assert.RowVisible(output, "README.md")
		assert.OutputContains(output, "NORMAL", "3 nodes", "New file")
		assert.NoError(output)
	})

	t.Run("empty tree shows a hint", func(t *testing.T) {
		session := h.TUI().Start(t, core.Tree{})
		harness.NewAssertions(t).OutputContains(session.Output(), "Empty.", "0 nodes")
	})

	t.Run("collapsed folders hide their children", func(t *testing.T) {
		session := h.TUI().Start(t, seed())
		session.SendKey("h")

		harness.NewAssertions(t).OutputNotContains(session.Output(), "main.go")
		session.SendKey("space")
		harness.NewAssertions(t).RowVisible(session.Output(), "main.go")
	})

	t.Run("small terminal", func(t *testing.T) {
		session := h.TUI().StartWithSize(t, seed(), 40, 8)
		harness.NewAssertions(t).RowVisible(session.Output(), "src")
	})
}

func TestTUI_Quit(t *testing.T) {
	h := harness.New(t, harness.Config{})

	t.Run("q quits", func(t *testing.T) {
		session := h.TUI().Start(t, seed())
		session.SendKey("q")
		assert.True(t, session.Quitted())
	})

	t.Run("q is a label character while renaming", func(t *testing.T) {
		session := h.TUI().Start(t, seed())
		session.SendKeys("G", "e").Type("q")

		assert.False(t, session.Quitted())
		assert.Equal(t, "q", session.Model().FileTree().EditorValue())
	})

	t.Run("ctrl+c quits while renaming", func(t *testing.T) {
		session := h.TUI().Start(t, seed())
		session.SendKeys("G", "e", "ctrl+c")
		assert.True(t, session.Quitted())
	})
}

func TestTUI_Editing(t *testing.T) {
	h := harness.New(t, harness.Config{})

	t.Run("only one node is edited at a time", func(t *testing.T) {
		session := h.TUI().Start(t, seed())
		session.DoubleClickLabel("README.md").Type("NOTES.md")
		session.DoubleClickLabel("main.go")

		id, ok := session.App().EditingID()
		require.True(t, ok)
		assert.Equal(t, "main", id)

		readme, _ := core.Find(session.App().Tree(), "readme")
		assert.Equal(t, "NOTES.md", readme.Label)
		assert.False(t, readme.Editing)
	})

	t.Run("clicking inside the editor keeps editing", func(t *testing.T) {
		session := h.TUI().Start(t, seed())
		session.DoubleClickLabel("README.md")
		session.ClickLabel("README.md")

		_, ok := session.App().EditingID()
		assert.True(t, ok)
	})

	t.Run("delete while editing commits first", func(t *testing.T) {
		session := h.TUI().Start(t, seed())
		session.DoubleClickLabel("main.go").Type("app.go")
		session.ClickDelete("README.md")

		_, ok := session.App().EditingID()
		assert.False(t, ok)
		main, found := core.Find(session.App().Tree(), "main")
		require.True(t, found)
		assert.Equal(t, "app.go", main.Label)
		assert.Equal(t, 2, core.Count(session.App().Tree()))
	})

	t.Run("touch mode commits on release", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Touch = true
		a := app.New(app.WithConfig(cfg), app.WithTree(seed()))
		session := h.TUI().StartWithApp(t, a, 100, 30)

		session.SendKeys("G", "e").Type("x.md")
		y := session.Model().Height() - 1

		session.Press(0, y)
		_, ok := a.EditingID()
		assert.True(t, ok, "a press alone is not a touch end")

		session.Release(0, y)
		_, ok = a.EditingID()
		assert.False(t, ok)
		readme, _ := core.Find(a.Tree(), "readme")
		assert.Equal(t, "x.md", readme.Label)
	})
}
