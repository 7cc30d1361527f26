package core

// Labels holds the default label given to new nodes of each kind.
type Labels struct {
	File   string `yaml:"file"`
	Folder string `yaml:"folder"`
}

// DefaultLabels returns the built-in default labels.
func DefaultLabels() Labels {
	return Labels{File: "File", Folder: "Folder"}
}

// For returns the default label for kind.
func (l Labels) For(kind Kind) string {
	switch kind {
	case KindFolder:
		return l.Folder
	case KindFile:
		return l.File
	}
	return ""
}

// AddNode appends a new node of the given kind to the root list. An invalid
// kind, or a generator that only yields ids already in the tree, leaves t
// unchanged and reports false.
func AddNode(t Tree, kind Kind, ids IDGenerator, labels Labels) (Tree, *Node, bool) {
	if !kind.Valid() {
		return t, nil, false
	}
	id, ok := FreshID(ids, func(id string) bool { return Contains(t, id) })
	if !ok {
		return t, nil, false
	}

	out := t.Clone()
	node := &Node{
		ID:    id,
		Label: labels.For(kind),
		Kind:  kind,
	}
	out = append(out, node)
	return out, node, true
}

// DeleteNode removes the node and its whole subtree. It reports whether the
// node was found; when it was not, the returned tree has the same structure.
func DeleteNode(t Tree, id string) (Tree, bool) {
	found := false
	out := Locate(t.Clone(), id, func(_ *Node, siblings *[]*Node, i int) {
		*siblings = removeAt(*siblings, i)
		found = true
	})
	return out, found
}

// RenameNode sets the label of the node. The label is stored as given; empty
// labels are accepted. Editing flags are cleared whether or not the node
// was found.
func RenameNode(t Tree, id, label string) (Tree, bool) {
	found := false
	out := Locate(t.Clone(), id, func(n *Node, _ *[]*Node, _ int) {
		n.Label = label
		found = true
	})
	clearEditing(out)
	return out, found
}

// SetEditing returns a copy of t where only the node with the given id has
// its editing flag set. An unknown id clears every flag.
func SetEditing(t Tree, id string) (Tree, bool) {
	out := t.Clone()
	clearEditing(out)
	found := false
	out = Locate(out, id, func(n *Node, _ *[]*Node, _ int) {
		n.Editing = true
		found = true
	})
	return out, found
}

// WithoutEditing returns a copy of t with every editing flag cleared.
func WithoutEditing(t Tree) Tree {
	out := t.Clone()
	clearEditing(out)
	return out
}

func removeAt(nodes []*Node, i int) []*Node {
	out := make([]*Node, 0, len(nodes)-1)
	out = append(out, nodes[:i]...)
	return append(out, nodes[i+1:]...)
}

func insertAt(nodes []*Node, i int, n *Node) []*Node {
	if i < 0 {
		i = 0
	}
	if i > len(nodes) {
		i = len(nodes)
	}
	out := make([]*Node, 0, len(nodes)+1)
	out = append(out, nodes[:i]...)
	out = append(out, n)
	return append(out, nodes[i:]...)
}
