package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	t.Run("passes node, siblings and index", func(t *testing.T) {
		tree := Tree{folder("A", file("X"), file("Y")), file("B")}

		var gotNode *Node
		var gotIndex int
		var gotLen int
		Locate(tree, "Y", func(n *Node, siblings *[]*Node, i int) {
			gotNode = n
			gotIndex = i
			gotLen = len(*siblings)
		})

		require.NotNil(t, gotNode)
		assert.Equal(t, "Y", gotNode.ID)
		assert.Equal(t, 1, gotIndex)
		assert.Equal(t, 2, gotLen)
	})

	t.Run("root node uses root list", func(t *testing.T) {
		tree := Tree{file("A"), file("B"), file("C")}

		out := Locate(tree, "B", func(_ *Node, siblings *[]*Node, i int) {
			*siblings = removeAt(*siblings, i)
		})

		assert.Equal(t, "A C", shape(out))
	})

	t.Run("no match never calls action", func(t *testing.T) {
		tree := Tree{folder("A", file("X")), file("B")}
		called := false

		out := Locate(tree, "missing", func(*Node, *[]*Node, int) {
			called = true
		})

		assert.False(t, called)
		assert.Equal(t, shape(tree), shape(out))
	})

	t.Run("returns fresh top-level copy", func(t *testing.T) {
		tree := Tree{file("A"), file("B")}
		out := Locate(tree, "missing", nil)

		out[0] = file("Z")
		assert.Equal(t, "A", tree[0].ID)
	})

	t.Run("first pre-order match wins on duplicate ids", func(t *testing.T) {
		first := folder("D", file("D"))
		tree := Tree{first, file("D")}
		calls := 0
		var got *Node

		Locate(tree, "D", func(n *Node, _ *[]*Node, _ int) {
			calls++
			got = n
		})

		assert.Equal(t, 1, calls)
		assert.Same(t, first, got)
	})

	t.Run("mutation through action", func(t *testing.T) {
		tree := Tree{folder("A", folder("B", file("X")))}

		Locate(tree, "X", func(n *Node, _ *[]*Node, _ int) {
			n.Label = "renamed"
		})

		assert.Equal(t, "renamed", tree[0].Children[0].Children[0].Label)
	})
}

func TestFind(t *testing.T) {
	tree := Tree{folder("A", folder("B", file("X"))), file("C")}

	n, ok := Find(tree, "X")
	require.True(t, ok)
	assert.Equal(t, "X", n.ID)

	_, ok = Find(tree, "nope")
	assert.False(t, ok)

	assert.True(t, Contains(tree, "B"))
	assert.False(t, Contains(nil, "B"))
}

func TestWalk(t *testing.T) {
	tree := Tree{folder("A", file("X"), folder("B", file("Y"))), file("C")}

	var order []string
	var depths []int
	Walk(tree, func(n *Node, depth int) bool {
		order = append(order, n.ID)
		depths = append(depths, depth)
		return true
	})

	assert.Equal(t, []string{"A", "X", "B", "Y", "C"}, order)
	assert.Equal(t, []int{0, 1, 1, 2, 0}, depths)

	t.Run("stops early", func(t *testing.T) {
		var seen []string
		Walk(tree, func(n *Node, _ int) bool {
			seen = append(seen, n.ID)
			return n.ID != "B"
		})
		assert.Equal(t, []string{"A", "X", "B"}, seen)
	})
}

func TestCount(t *testing.T) {
	assert.Equal(t, 0, Count(nil))
	assert.Equal(t, 5, Count(Tree{folder("A", file("X"), folder("B", file("Y"))), file("C")}))
}

func TestPath(t *testing.T) {
	tree := Tree{folder("src", folder("pkg", file("main.go"))), file("README")}

	path, ok := Path(tree, "main.go")
	require.True(t, ok)
	assert.Equal(t, []string{"src", "pkg", "main.go"}, path)

	path, ok = Path(tree, "README")
	require.True(t, ok)
	assert.Equal(t, []string{"README"}, path)

	_, ok = Path(tree, "missing")
	assert.False(t, ok)
}
