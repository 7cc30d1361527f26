package core

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies whether a node is a file or a folder.
type Kind string

const (
	KindFile   Kind = "file"
	KindFolder Kind = "folder"
)

// Sentinel errors reported by Validate and ParseKind.
var (
	ErrEmptyID          = errors.New("node has empty id")
	ErrDuplicateID      = errors.New("duplicate node id")
	ErrInvalidKind      = errors.New("invalid node kind")
	ErrFileWithChildren = errors.New("file node has children")
)

// ParseKind converts text into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindFile:
		return KindFile, nil
	case KindFolder:
		return KindFolder, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

func (k Kind) String() string { return string(k) }

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindFile || k == KindFolder
}

// Node is a single entry in the tree.
type Node struct {
	ID       string  `json:"id" yaml:"id"`
	Label    string  `json:"label" yaml:"label"`
	Kind     Kind    `json:"kind" yaml:"kind"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`

	// Editing is true while the node's inline editor is active.
	Editing bool `json:"-" yaml:"-"`
}

// IsFolder reports whether the node can hold children.
func (n *Node) IsFolder() bool { return n.Kind == KindFolder }

// HasChildren reports whether the node has at least one child.
func (n *Node) HasChildren() bool { return len(n.Children) > 0 }

// Clone creates a deep copy of the node and its subtree.
func (n *Node) Clone() *Node {
	clone := &Node{
		ID:      n.ID,
		Label:   n.Label,
		Kind:    n.Kind,
		Editing: n.Editing,
	}
	if n.Children != nil {
		clone.Children = make([]*Node, 0, len(n.Children))
		for _, child := range n.Children {
			clone.Children = append(clone.Children, child.Clone())
		}
	}
	return clone
}

// Tree is the ordered list of root-level nodes. A Tree value is a snapshot:
// mutation functions never modify the snapshot they are given.
type Tree []*Node

// Clone creates a deep copy of the tree.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	clone := make(Tree, 0, len(t))
	for _, n := range t {
		clone = append(clone, n.Clone())
	}
	return clone
}

// Len returns the number of nodes in the whole tree.
func (t Tree) Len() int {
	return Count(t)
}

// EditingID returns the id of the node being edited, if any.
func (t Tree) EditingID() (string, bool) {
	var id string
	Walk(t, func(n *Node, depth int) bool {
		if n.Editing {
			id = n.ID
			return false
		}
		return true
	})
	return id, id != ""
}

// Validate checks the structural invariants of a tree built outside the
// mutation functions, such as a loaded seed.
func (t Tree) Validate() error {
	seen := make(map[string]bool)
	var err error
	Walk(t, func(n *Node, depth int) bool {
		switch {
		case n.ID == "":
			err = fmt.Errorf("%w (label %q)", ErrEmptyID, n.Label)
		case seen[n.ID]:
			err = fmt.Errorf("%w: %s", ErrDuplicateID, n.ID)
		case !n.Kind.Valid():
			err = fmt.Errorf("%w: %q on node %s", ErrInvalidKind, n.Kind, n.ID)
		case n.Kind == KindFile && len(n.Children) > 0:
			err = fmt.Errorf("%w: %s", ErrFileWithChildren, n.ID)
		}
		seen[n.ID] = true
		return err == nil
	})
	return err
}

func clearEditing(t Tree) {
	Walk(t, func(n *Node, depth int) bool {
		n.Editing = false
		return true
	})
}
