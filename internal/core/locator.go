package core

// LocateFunc receives the located node, the slice holding it (the root list
// or the parent's Children) and its index within that slice.
type LocateFunc func(n *Node, siblings *[]*Node, index int)

// Locate searches t depth-first in pre-order for the node with the given id
// and calls fn once for the first match. fn may assign fields on the node or
// splice the siblings slice. The returned tree is a fresh top-level copy of
// the (possibly spliced) root list; when nothing matches fn is never called.
//
// Locate works in place on the nodes of t. Callers that must not disturb a
// committed snapshot clone it first.
func Locate(t Tree, id string, fn LocateFunc) Tree {
	roots := []*Node(t)
	locate(&roots, id, fn)
	out := make(Tree, len(roots))
	copy(out, roots)
	return out
}

func locate(siblings *[]*Node, id string, fn LocateFunc) bool {
	for i := 0; i < len(*siblings); i++ {
		n := (*siblings)[i]
		if n.ID == id {
			if fn != nil {
				fn(n, siblings, i)
			}
			return true
		}
		if n.Children != nil && locate(&n.Children, id, fn) {
			return true
		}
	}
	return false
}

// Find returns the node with the given id.
func Find(t Tree, id string) (*Node, bool) {
	var found *Node
	Locate(t, id, func(n *Node, _ *[]*Node, _ int) {
		found = n
	})
	return found, found != nil
}

// Contains reports whether a node with the given id exists in t.
func Contains(t Tree, id string) bool {
	_, ok := Find(t, id)
	return ok
}

// Walk visits every node in pre-order. Returning false from fn stops the walk.
func Walk(t Tree, fn func(n *Node, depth int) bool) {
	walk(t, 0, fn)
}

func walk(nodes []*Node, depth int, fn func(n *Node, depth int) bool) bool {
	for _, n := range nodes {
		if !fn(n, depth) {
			return false
		}
		if !walk(n.Children, depth+1, fn) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes in t, descendants included.
func Count(t Tree) int {
	count := 0
	Walk(t, func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Path returns the labels from the root down to the node with the given id.
func Path(t Tree, id string) ([]string, bool) {
	var path []string
	var search func(nodes []*Node, prefix []string) bool
	search = func(nodes []*Node, prefix []string) bool {
		for _, n := range nodes {
			current := append(append([]string(nil), prefix...), n.Label)
			if n.ID == id {
				path = current
				return true
			}
			if search(n.Children, current) {
				return true
			}
		}
		return false
	}
	found := search(t, nil)
	return path, found
}
