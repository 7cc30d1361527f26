package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	t.Run("short string unchanged", func(t *testing.T) {
		assert.Equal(t, "main.go", Truncate("main.go", 10))
	})

	t.Run("long string gets ellipsis", func(t *testing.T) {
		assert.Equal(t, "READ...", Truncate("README.markdown", 7))
	})

	t.Run("tiny width cuts", func(t *testing.T) {
		assert.Equal(t, "RE", Truncate("README", 2))
	})

	t.Run("zero width", func(t *testing.T) {
		assert.Equal(t, "", Truncate("README", 0))
	})

	t.Run("multibyte runes are not split", func(t *testing.T) {
		assert.Equal(t, "文件...", Truncate("文件夹文件夹", 7))
	})
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abcde", PadRight("abcde", 5))
	assert.Equal(t, "ab...", PadRight("abcdefgh", 5))
}

func TestRenderTitle(t *testing.T) {
	assert.Contains(t, RenderTitle("Files", 20, true), "Files")
	assert.Contains(t, RenderTitle("Files", 20, false), "Files")
}

func TestRenderBorder(t *testing.T) {
	out := RenderBorder("x", true)
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "x")
}
