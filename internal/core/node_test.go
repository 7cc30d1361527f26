package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
		wantErr  bool
	}{
		{"file", KindFile, false},
		{"folder", KindFolder, false},
		{" Folder ", KindFolder, false},
		{"FILE", KindFile, false},
		{"dir", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, err := ParseKind(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestNode_Clone(t *testing.T) {
	t.Run("deep copies subtree", func(t *testing.T) {
		orig := folder("A", file("X"), folder("B", file("Y")))
		clone := orig.Clone()

		clone.Children[1].Children[0].Label = "changed"
		clone.Children = append(clone.Children, file("Z"))

		assert.Equal(t, "Y", orig.Children[1].Children[0].Label)
		assert.Len(t, orig.Children, 2)
	})

	t.Run("preserves nil versus empty children", func(t *testing.T) {
		never := folder("A")
		emptied := &Node{ID: "B", Kind: KindFolder, Children: []*Node{}}

		assert.Nil(t, never.Clone().Children)
		assert.NotNil(t, emptied.Clone().Children)
		assert.Empty(t, emptied.Clone().Children)
	})

	t.Run("copies editing flag", func(t *testing.T) {
		n := file("A")
		n.Editing = true
		assert.True(t, n.Clone().Editing)
	})
}

func TestTree_Clone(t *testing.T) {
	assert.Nil(t, Tree(nil).Clone())

	tree := Tree{folder("A", file("X")), file("B")}
	clone := tree.Clone()
	assert.Equal(t, tree, clone)

	clone[0].Children[0].Label = "other"
	assert.Equal(t, "X", tree[0].Children[0].Label)
}

func TestTree_EditingID(t *testing.T) {
	tree := Tree{folder("A", file("X")), file("B")}
	_, ok := tree.EditingID()
	assert.False(t, ok)

	tree[0].Children[0].Editing = true
	id, ok := tree.EditingID()
	assert.True(t, ok)
	assert.Equal(t, "X", id)
}

func TestTree_Validate(t *testing.T) {
	t.Run("valid tree", func(t *testing.T) {
		tree := Tree{folder("A", file("X"), folder("B")), file("C")}
		assert.NoError(t, tree.Validate())
	})

	t.Run("duplicate ids across levels", func(t *testing.T) {
		tree := Tree{folder("A", file("X")), file("X")}
		assert.ErrorIs(t, tree.Validate(), ErrDuplicateID)
	})

	t.Run("empty id", func(t *testing.T) {
		tree := Tree{{Label: "nameless", Kind: KindFile}}
		assert.ErrorIs(t, tree.Validate(), ErrEmptyID)
	})

	t.Run("invalid kind", func(t *testing.T) {
		tree := Tree{{ID: "A", Kind: "dir"}}
		assert.ErrorIs(t, tree.Validate(), ErrInvalidKind)
	})

	t.Run("file with children", func(t *testing.T) {
		tree := Tree{{ID: "A", Kind: KindFile, Children: []*Node{file("X")}}}
		assert.ErrorIs(t, tree.Validate(), ErrFileWithChildren)
	})
}
