package core

import (
	"strconv"
	"strings"
)

// Placement values for DropEvent.RelativePosition.
const (
	DropAbove = -1
	DropInto  = 0
	DropBelow = 1
)

// DropEvent describes a finished drag gesture.
type DropEvent struct {
	DragID string
	DropID string

	// RelativePosition is negative to insert above the target and positive
	// to insert below it. It only matters when DropToGap is true.
	RelativePosition int

	// DropToGap is false when the node is dropped onto the target itself,
	// which makes it the target's first child.
	DropToGap bool
}

// RelativeDropPosition converts a raw drop position into the value expected
// by DropEvent.RelativePosition by subtracting the last index of the target's
// tree path ("0-2-1").
func RelativeDropPosition(dropPosition int, pos string) int {
	parts := strings.Split(pos, "-")
	last, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return dropPosition
	}
	return dropPosition - last
}

// Drop moves the dragged node relative to the drop target. The whole move is
// computed on one scratch copy; if any step fails the original snapshot is
// returned with false, so a rejected drop never loses or duplicates a node.
//
// Dropping a node onto itself or onto one of its descendants is rejected as
// a side effect of extraction: the target leaves the tree with the dragged
// subtree and can no longer be located.
func Drop(t Tree, ev DropEvent) (Tree, bool) {
	work := t.Clone()

	var dragged *Node
	work = Locate(work, ev.DragID, func(n *Node, siblings *[]*Node, i int) {
		*siblings = removeAt(*siblings, i)
		dragged = n
	})
	if dragged == nil {
		return t, false
	}

	target, ok := Find(work, ev.DropID)
	if !ok {
		return t, false
	}

	if !ev.DropToGap {
		switch target.Kind {
		case KindFile:
			return t, false
		case KindFolder:
			if target.Children == nil {
				target.Children = make([]*Node, 0, 1)
			}
			target.Children = insertAt(target.Children, 0, dragged)
			return work, true
		default:
			return t, false
		}
	}

	work = Locate(work, ev.DropID, func(_ *Node, siblings *[]*Node, i int) {
		if ev.RelativePosition < 0 {
			*siblings = insertAt(*siblings, i, dragged)
		} else {
			*siblings = insertAt(*siblings, i+1, dragged)
		}
	})
	return work, true
}
