package core

import "strings"

func file(id string) *Node {
	return &Node{ID: id, Label: id, Kind: KindFile}
}

func folder(id string, children ...*Node) *Node {
	n := &Node{ID: id, Label: id, Kind: KindFolder}
	if len(children) > 0 {
		n.Children = children
	}
	return n
}

// shape renders the tree structure as "A[X Y] B" for compact assertions.
func shape(t Tree) string {
	parts := make([]string, 0, len(t))
	for _, n := range t {
		s := n.ID
		if n.Children != nil {
			s += "[" + shape(n.Children) + "]"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func fixedIDs(ids ...string) IDGenerator {
	i := 0
	return IDGeneratorFunc(func() string {
		id := ids[i%len(ids)]
		i++
		return id
	})
}
