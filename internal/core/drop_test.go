package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelativeDropPosition(t *testing.T) {
	tests := []struct {
		name         string
		dropPosition int
		pos          string
		expected     int
	}{
		{"above first root", -1, "0-0", -1},
		{"below first root", 1, "0-0", 1},
		{"above third sibling", 1, "0-1-2", -1},
		{"below third sibling", 3, "0-1-2", 1},
		{"onto node", 2, "0-2", 0},
		{"single segment", 4, "3", 1},
		{"malformed path", 2, "0-x", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RelativeDropPosition(tt.dropPosition, tt.pos))
		})
	}
}

func TestDrop(t *testing.T) {
	tests := []struct {
		name     string
		tree     func() Tree
		event    DropEvent
		expected string
		ok       bool
	}{
		{
			name:     "reorder above first sibling",
			tree:     func() Tree { return Tree{file("A"), file("B"), file("C")} },
			event:    DropEvent{DragID: "C", DropID: "A", DropToGap: true, RelativePosition: DropAbove},
			expected: "C A B",
			ok:       true,
		},
		{
			name:     "reorder below first sibling",
			tree:     func() Tree { return Tree{file("A"), file("B"), file("C")} },
			event:    DropEvent{DragID: "C", DropID: "A", DropToGap: true, RelativePosition: DropBelow},
			expected: "A C B",
			ok:       true,
		},
		{
			name:     "move down within same list uses post-extraction index",
			tree:     func() Tree { return Tree{file("A"), file("B"), file("C")} },
			event:    DropEvent{DragID: "A", DropID: "C", DropToGap: true, RelativePosition: DropBelow},
			expected: "B C A",
			ok:       true,
		},
		{
			name:     "drop into folder goes to the front",
			tree:     func() Tree { return Tree{folder("A", file("X")), file("Y")} },
			event:    DropEvent{DragID: "Y", DropID: "A"},
			expected: "A[Y X]",
			ok:       true,
		},
		{
			name:     "drop into folder without children creates the list",
			tree:     func() Tree { return Tree{folder("A"), file("Y")} },
			event:    DropEvent{DragID: "Y", DropID: "A"},
			expected: "A[Y]",
			ok:       true,
		},
		{
			name:     "drop into file is rejected",
			tree:     func() Tree { return Tree{folder("A"), file("B")} },
			event:    DropEvent{DragID: "A", DropID: "B"},
			expected: "A B",
			ok:       false,
		},
		{
			name:     "drop next to a file is allowed",
			tree:     func() Tree { return Tree{folder("A"), file("B")} },
			event:    DropEvent{DragID: "A", DropID: "B", DropToGap: true, RelativePosition: DropBelow},
			expected: "B A",
			ok:       true,
		},
		{
			name:     "move out of a folder to root",
			tree:     func() Tree { return Tree{folder("A", file("X"), file("Y")), file("B")} },
			event:    DropEvent{DragID: "X", DropID: "B", DropToGap: true, RelativePosition: DropAbove},
			expected: "A[Y] X B",
			ok:       true,
		},
		{
			name:     "move across subtrees",
			tree:     func() Tree { return Tree{folder("A", file("X")), folder("B", file("Y"))} },
			event:    DropEvent{DragID: "X", DropID: "Y", DropToGap: true, RelativePosition: DropBelow},
			expected: "A[] B[Y X]",
			ok:       true,
		},
		{
			name:     "unknown drag id",
			tree:     func() Tree { return Tree{file("A"), file("B")} },
			event:    DropEvent{DragID: "missing", DropID: "A", DropToGap: true},
			expected: "A B",
			ok:       false,
		},
		{
			name:     "unknown drop id keeps the dragged node",
			tree:     func() Tree { return Tree{file("A"), file("B")} },
			event:    DropEvent{DragID: "A", DropID: "missing", DropToGap: true},
			expected: "A B",
			ok:       false,
		},
		{
			name:     "drop onto itself is rejected",
			tree:     func() Tree { return Tree{folder("A"), file("B")} },
			event:    DropEvent{DragID: "A", DropID: "A"},
			expected: "A B",
			ok:       false,
		},
		{
			name:     "drop onto own descendant is rejected",
			tree:     func() Tree { return Tree{folder("A", folder("B")), file("C")} },
			event:    DropEvent{DragID: "A", DropID: "B"},
			expected: "A[B] C",
			ok:       false,
		},
		{
			name:     "zero relative position in gap inserts below",
			tree:     func() Tree { return Tree{file("A"), file("B"), file("C")} },
			event:    DropEvent{DragID: "C", DropID: "A", DropToGap: true, RelativePosition: DropInto},
			expected: "A C B",
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := tt.tree()
			before := shape(tree)
			count := Count(tree)

			out, ok := Drop(tree, tt.event)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, shape(out))
			assert.Equal(t, count, Count(out), "node count must be preserved")
			assert.Equal(t, before, shape(tree), "input snapshot must not change")
		})
	}
}

func TestDrop_RejectedReturnsOriginalSnapshot(t *testing.T) {
	tree := Tree{folder("A"), file("B")}
	out, ok := Drop(tree, DropEvent{DragID: "A", DropID: "B"})
	assert.False(t, ok)
	assert.Equal(t, tree, out)
}

func TestDrop_SubtreeMovesWithNode(t *testing.T) {
	tree := Tree{folder("A", folder("B", file("X"))), folder("C")}
	out, ok := Drop(tree, DropEvent{DragID: "B", DropID: "C"})
	assert.True(t, ok)
	assert.Equal(t, "A[] C[B[X]]", shape(out))
}
