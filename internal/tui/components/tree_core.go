package components

import (
	"strconv"

	"github.com/artpar/filetree/internal/core"
)

// This file contains pure functions for tree operations.
// They take values and return values without touching component state.

// TreeItem is one visible row of the flattened tree.
type TreeItem struct {
	ID         string
	Label      string
	Kind       core.Kind
	Level      int
	Index      int    // position among siblings
	Pos        string // tree path such as "0-2-1"
	Expandable bool
	Expanded   bool
	Editing    bool
}

// HitZone identifies the part of a row under the pointer.
type HitZone int

const (
	HitNone HitZone = iota
	HitRow
	HitToggle
	HitIcon
	HitDelete
)

// Row geometry, in terminal cells from the inner left edge of the tree.
const (
	markerWidth    = 1
	indentWidth    = 2
	indicatorWidth = 2
	iconWidth      = 2
	deleteWidth    = 2
)

// FlattenTree lists the visible rows of t in display order. Folders are
// expanded unless their id is collapsed.
func FlattenTree(t core.Tree, collapsed map[string]bool) []TreeItem {
	var items []TreeItem
	var walk func(nodes []*core.Node, level int, pos string)
	walk = func(nodes []*core.Node, level int, pos string) {
		for i, n := range nodes {
			item := TreeItem{
				ID:         n.ID,
				Label:      n.Label,
				Kind:       n.Kind,
				Level:      level,
				Index:      i,
				Pos:        pos + "-" + strconv.Itoa(i),
				Expandable: n.HasChildren(),
				Editing:    n.Editing,
			}
			item.Expanded = item.Expandable && !collapsed[n.ID]
			items = append(items, item)
			if item.Expanded {
				walk(n.Children, level+1, item.Pos)
			}
		}
	}
	walk(t, 0, "0")
	return items
}

// IndexOf returns the row index of id, or -1.
func IndexOf(items []TreeItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// DropEventFor builds the event for dropping drag onto target with the given
// placement (core.DropAbove, core.DropInto or core.DropBelow). The raw drop
// position is expressed the way tree widgets report it: the target's sibling
// index plus the placement.
func DropEventFor(drag string, target TreeItem, placement int) core.DropEvent {
	dropPosition := target.Index + placement
	return core.DropEvent{
		DragID:           drag,
		DropID:           target.ID,
		RelativePosition: core.RelativeDropPosition(dropPosition, target.Pos),
		DropToGap:        placement != core.DropInto,
	}
}

// PlacementFor picks the gap for a pointer drop: moving down lands below the
// target, moving up lands above it.
func PlacementFor(from, to int) int {
	if to > from {
		return core.DropBelow
	}
	return core.DropAbove
}

// ZoneAt returns the part of item's row at column x. innerWidth is the
// row width without borders.
func ZoneAt(item TreeItem, x, innerWidth int) HitZone {
	if x < 0 || x >= innerWidth {
		return HitNone
	}
	if x >= innerWidth-deleteWidth {
		return HitDelete
	}
	toggle := markerWidth + indentWidth*item.Level
	icon := IconColumn(item)
	switch {
	case x >= toggle && x < icon && item.Expandable:
		return HitToggle
	case x >= icon && x < icon+iconWidth:
		return HitIcon
	}
	return HitRow
}

// IconColumn returns the column where item's icon starts.
func IconColumn(item TreeItem) int {
	return markerWidth + indentWidth*item.Level + indicatorWidth
}

// LabelColumn returns the column where item's label starts.
func LabelColumn(item TreeItem) int {
	return markerWidth + indentWidth*item.Level + indicatorWidth + iconWidth + 1
}

// Icon returns the icon drawn for a node kind.
func Icon(kind core.Kind) string {
	switch kind {
	case core.KindFolder:
		return "📁"
	case core.KindFile:
		return "📄"
	}
	return "  "
}

// MoveCursor computes new cursor position within bounds.
func MoveCursor(cursor, delta, itemCount int) int {
	if itemCount == 0 {
		return 0
	}
	newCursor := cursor + delta
	if newCursor < 0 {
		return 0
	}
	if newCursor >= itemCount {
		return itemCount - 1
	}
	return newCursor
}

// AdjustOffset ensures cursor is visible within viewport.
func AdjustOffset(cursor, offset, visibleHeight int) int {
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+visibleHeight {
		return cursor - visibleHeight + 1
	}
	return offset
}

// ToggleExpand returns a new collapsed map with the folder expanded or
// collapsed. It never mutates the input.
func ToggleExpand(collapsed map[string]bool, id string, expand bool) map[string]bool {
	result := make(map[string]bool, len(collapsed)+1)
	for k, v := range collapsed {
		if v {
			result[k] = v
		}
	}
	if expand {
		delete(result, id)
	} else {
		result[id] = true
	}
	return result
}
