package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/artpar/filetree/internal/app"
	"github.com/artpar/filetree/internal/core"
	"github.com/artpar/filetree/internal/tui"
	"github.com/artpar/filetree/internal/tui/keys"
)

const (
	headerHeight        = 1
	doubleClickInterval = 400 * time.Millisecond
)

// flushDeferredMsg is delivered after the render that followed an update
// which scheduled deferred work, such as focusing a freshly shown editor.
type flushDeferredMsg struct{}

func flushDeferred() tea.Msg {
	return flushDeferredMsg{}
}

func notice(text string) tea.Cmd {
	return func() tea.Msg {
		return tui.NoticeMsg{Text: text}
	}
}

// dragState is a node picked up for moving.
type dragState struct {
	id       string
	keyboard bool
	from     int // row index when picked up
}

// FileTree renders the App's tree and turns keys and mouse gestures into
// App commands.
type FileTree struct {
	title     string
	focused   bool
	width     int
	height    int
	originX   int
	originY   int
	cursor    int
	offset    int // For scrolling
	items     []TreeItem
	collapsed map[string]bool

	app     *app.App
	styles  tui.Styles
	keyMap  *keys.KeyMap
	seq     *keys.KeySequenceHandler
	outside *core.OutsideDetector

	input         textinput.Model
	replaceOnType bool // first keystroke replaces the whole label
	focusCmd      tea.Cmd

	drag  *dragState
	hover int

	lastClickID string
	lastClickAt time.Time
	now         func() time.Time
}

// NewFileTree creates a tree bound to a. It subscribes to a's events and
// installs itself as the edit session's focus handler.
func NewFileTree(a *app.App) *FileTree {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 255

	f := &FileTree{
		title:     "Files",
		app:       a,
		collapsed: make(map[string]bool),
		styles:    tui.DefaultStyles(),
		keyMap:    keys.NewKeyMap(),
		seq:       keys.NewKeySequenceHandler(),
		input:     input,
		hover:     -1,
		now:       time.Now,
	}
	f.outside = core.NewOutsideDetector(a.Config().Touch, f.commitOutside)
	a.Session().OnFocus = f.focusEditor
	a.Subscribe(f.onEvent)
	f.registerKeys()
	f.rebuildItems()
	return f
}

func (f *FileTree) registerKeys() {
	km := f.keyMap
	km.Register(keys.ModeNormal, "a", "New file", func() tea.Cmd { return f.addNode(core.KindFile) })
	km.Register(keys.ModeNormal, "A", "New folder", func() tea.Cmd { return f.addNode(core.KindFolder) })
	km.Register(keys.ModeNormal, "e/enter/f2", "Rename", f.beginEditSelected)
	km.Register(keys.ModeNormal, "x/delete", "Delete", f.deleteSelected)
	km.Register(keys.ModeNormal, "m", "Move", f.pickUp)
	km.Register(keys.ModeNormal, "y", "Copy path", f.copyPath)
	km.Register(keys.ModeNormal, "j/down", "Down", func() tea.Cmd { f.moveCursor(1); return nil })
	km.Register(keys.ModeNormal, "k/up", "Up", func() tea.Cmd { f.moveCursor(-1); return nil })
	km.Register(keys.ModeNormal, "l/right", "Expand", func() tea.Cmd { f.setExpanded(true); return nil })
	km.Register(keys.ModeNormal, "h/left", "Collapse", func() tea.Cmd { f.setExpanded(false); return nil })
	km.Register(keys.ModeNormal, "space", "Toggle", func() tea.Cmd { f.toggleCurrent(); return nil })
	km.Register(keys.ModeNormal, "G", "Bottom", func() tea.Cmd { f.moveCursor(len(f.items)); return nil })

	km.Register(keys.ModeMove, "K", "Drop above", func() tea.Cmd { return f.dropSelected(core.DropAbove) })
	km.Register(keys.ModeMove, "J", "Drop below", func() tea.Cmd { return f.dropSelected(core.DropBelow) })
	km.Register(keys.ModeMove, "i", "Drop into", func() tea.Cmd { return f.dropSelected(core.DropInto) })
	km.Register(keys.ModeMove, "esc", "Cancel", func() tea.Cmd { f.drag = nil; return nil })
	km.Register(keys.ModeMove, "j/down", "Down", func() tea.Cmd { f.moveCursor(1); return nil })
	km.Register(keys.ModeMove, "k/up", "Up", func() tea.Cmd { f.moveCursor(-1); return nil })

	f.seq.Register("gg", func() tea.Cmd {
		f.cursor = 0
		f.offset = 0
		return nil
	})
	f.seq.Register("dd", f.deleteSelected)
}

// Init initializes the component.
func (f *FileTree) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (f *FileTree) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.SetSize(msg.Width, msg.Height)

	case tui.FocusMsg:
		f.focused = true

	case tui.BlurMsg:
		f.focused = false

	case flushDeferredMsg:
		f.app.Deferred().Drain()
		cmd, f.focusCmd = f.focusCmd, nil

	case tea.KeyMsg:
		if f.focused {
			cmd = f.handleKeyMsg(msg)
		}

	case tea.MouseMsg:
		cmd = f.handleMouseMsg(msg)
	}

	f.syncEditor()
	if f.app.Deferred().Len() > 0 {
		cmd = tea.Batch(cmd, flushDeferred)
	}
	return f, cmd
}

func (f *FileTree) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	mode := f.Mode()
	if mode == keys.ModeInsert {
		return f.handleEditorKey(msg)
	}

	if mode == keys.ModeNormal && msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		key := string(msg.Runes)
		if f.seq.Buffer() != "" || f.seq.IsPrefix(key) {
			result := f.seq.Handle(key)
			switch result.Status {
			case keys.SequencePending:
				return nil
			case keys.SequenceComplete:
				return result.Execute()
			}
		}
	} else {
		f.seq.Reset()
	}

	if kb, ok := f.keyMap.FindBinding(mode, msg); ok {
		return kb.Execute()
	}
	return nil
}

func (f *FileTree) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeyTab:
		f.app.CommitEdit()
		f.stopEditing()
		return nil
	}

	// Keys typed before the deferred focus ran are dropped.
	if !f.input.Focused() {
		return nil
	}

	if f.replaceOnType {
		f.replaceOnType = false
		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace:
			f.input.SetValue("")
		case tea.KeyBackspace, tea.KeyDelete:
			f.input.SetValue("")
			f.app.SetEditText("")
			return nil
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	f.app.SetEditText(f.input.Value())
	return cmd
}

func (f *FileTree) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		f.moveCursor(-1)
	case msg.Button == tea.MouseButtonWheelDown:
		f.moveCursor(1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return f.handlePress(msg.X, msg.Y)
	case msg.Action == tea.MouseActionRelease:
		return f.handleRelease(msg.X, msg.Y)
	case msg.Action == tea.MouseActionMotion:
		if f.drag != nil && !f.drag.keyboard {
			f.hover, _ = f.hitTest(msg.X, msg.Y)
		}
	}
	return nil
}

func (f *FileTree) handlePress(x, y int) tea.Cmd {
	f.outside.Handle(core.PointerEvent{Kind: core.PointerClick, X: x, Y: y})

	idx, zone := f.hitTest(x, y)
	if idx < 0 {
		return nil
	}
	f.cursor = idx
	f.offset = AdjustOffset(f.cursor, f.offset, f.contentHeight())
	item := f.items[idx]

	switch zone {
	case HitDelete:
		return f.deleteItem(item)
	case HitToggle:
		f.toggleCurrent()
		return nil
	}
	if item.Editing {
		return nil
	}

	now := f.now()
	if f.lastClickID == item.ID && now.Sub(f.lastClickAt) < doubleClickInterval {
		f.lastClickID = ""
		f.drag = nil
		return f.beginEdit(item)
	}
	f.lastClickID, f.lastClickAt = item.ID, now

	f.drag = &dragState{id: item.ID, from: idx}
	f.hover = idx
	return nil
}

func (f *FileTree) handleRelease(x, y int) tea.Cmd {
	f.outside.Handle(core.PointerEvent{Kind: core.PointerTouchEnd, X: x, Y: y})

	drag := f.drag
	if drag == nil || drag.keyboard {
		return nil
	}
	f.drag = nil
	f.hover = -1

	idx, zone := f.hitTest(x, y)
	if idx < 0 {
		return nil
	}
	target := f.items[idx]
	if target.ID == drag.id {
		return nil
	}
	// A drag is not the first half of a double click.
	f.lastClickID = ""

	placement := PlacementFor(drag.from, idx)
	if zone == HitIcon {
		placement = core.DropInto
	}
	return f.dropOn(drag.id, target, placement)
}

// hitTest maps screen coordinates to a row index and zone. It returns -1
// when the point is not on a row.
func (f *FileTree) hitTest(x, y int) (int, HitZone) {
	row := y - f.originY - 1 - headerHeight
	if row < 0 || row >= f.contentHeight() {
		return -1, HitNone
	}
	idx := f.offset + row
	if idx >= len(f.items) {
		return -1, HitNone
	}
	zone := ZoneAt(f.items[idx], x-f.originX-1, f.innerWidth())
	if zone == HitNone {
		return -1, HitNone
	}
	return idx, zone
}

// Commands

func (f *FileTree) addNode(kind core.Kind) tea.Cmd {
	f.app.AddNode(kind)
	return nil
}

func (f *FileTree) beginEditSelected() tea.Cmd {
	item := f.Selected()
	if item == nil {
		return nil
	}
	return f.beginEdit(*item)
}

func (f *FileTree) beginEdit(item TreeItem) tea.Cmd {
	if !f.app.BeginEdit(item.ID) {
		return notice("✗ Cannot rename an unnamed node")
	}
	return nil
}

func (f *FileTree) deleteSelected() tea.Cmd {
	item := f.Selected()
	if item == nil {
		return nil
	}
	return f.deleteItem(*item)
}

func (f *FileTree) deleteItem(item TreeItem) tea.Cmd {
	if !f.app.DeleteNode(item.ID) {
		return nil
	}
	return notice(fmt.Sprintf("✓ Deleted %s", item.Label))
}

func (f *FileTree) pickUp() tea.Cmd {
	item := f.Selected()
	if item == nil {
		return nil
	}
	f.drag = &dragState{id: item.ID, keyboard: true, from: f.cursor}
	return nil
}

func (f *FileTree) dropSelected(placement int) tea.Cmd {
	drag := f.drag
	f.drag = nil
	target := f.Selected()
	if drag == nil || target == nil {
		return nil
	}
	if target.ID == drag.id {
		return notice("✗ Cannot move a node onto itself")
	}
	return f.dropOn(drag.id, *target, placement)
}

func (f *FileTree) dropOn(dragID string, target TreeItem, placement int) tea.Cmd {
	if !f.app.Drop(DropEventFor(dragID, target, placement)) {
		if placement == core.DropInto && target.Kind == core.KindFile {
			return notice("✗ Cannot drop into a file")
		}
		return notice("✗ Cannot move there")
	}
	if placement == core.DropInto {
		f.collapsed = ToggleExpand(f.collapsed, target.ID, true)
		f.rebuildItems()
		f.selectID(dragID)
	}
	return nil
}

func (f *FileTree) copyPath() tea.Cmd {
	item := f.Selected()
	if item == nil {
		return nil
	}
	labels, ok := core.Path(f.app.Tree(), item.ID)
	if !ok {
		return nil
	}
	path := strings.Join(labels, "/")
	return func() tea.Msg {
		return tui.CopyMsg{Content: path}
	}
}

// Editing

// focusEditor runs from the deferred queue once the editor row is on screen.
func (f *FileTree) focusEditor(id, text string) {
	f.input.SetValue(text)
	f.input.CursorEnd()
	f.focusCmd = f.input.Focus()
	f.replaceOnType = true
	f.outside.Attach(editorSurface{tree: f})
	if idx := IndexOf(f.items, id); idx >= 0 {
		f.cursor = idx
		f.offset = AdjustOffset(f.cursor, f.offset, f.contentHeight())
	}
}

func (f *FileTree) commitOutside() {
	f.app.OutsideInteraction()
	f.stopEditing()
}

func (f *FileTree) stopEditing() {
	f.input.Blur()
	f.outside.Detach()
	f.replaceOnType = false
}

// syncEditor drops editor state when the edit ended through another path,
// such as a delete or drop committing it.
func (f *FileTree) syncEditor() {
	if _, editing := f.app.EditingID(); !editing && (f.input.Focused() || f.outside.Attached()) {
		f.stopEditing()
	}
}

// editorSurface is the screen row of the node being edited.
type editorSurface struct {
	tree *FileTree
}

func (s editorSurface) Contains(x, y int) bool {
	f := s.tree
	id, ok := f.app.EditingID()
	if !ok {
		return false
	}
	idx := IndexOf(f.items, id)
	if idx < f.offset || idx >= f.offset+f.contentHeight() {
		return false
	}
	// Border and delete column are not part of the editor.
	row := core.Rect{
		X:      f.originX + 1,
		Y:      f.originY + 1 + headerHeight + idx - f.offset,
		Width:  f.innerWidth() - deleteWidth,
		Height: 1,
	}
	return row.Contains(x, y)
}

// Tree state

func (f *FileTree) onEvent(e app.Event) {
	f.rebuildItems()
	switch e.Type {
	case app.EventNodeAdded, app.EventNodeMoved:
		f.selectID(e.NodeID)
	}
}

func (f *FileTree) rebuildItems() {
	f.items = FlattenTree(f.app.Tree(), f.collapsed)
	f.cursor = MoveCursor(f.cursor, 0, len(f.items))
	f.offset = AdjustOffset(f.cursor, f.offset, f.contentHeight())
	if f.drag != nil && !core.Contains(f.app.Tree(), f.drag.id) {
		f.drag = nil
	}
}

func (f *FileTree) selectID(id string) {
	if idx := IndexOf(f.items, id); idx >= 0 {
		f.cursor = idx
		f.offset = AdjustOffset(f.cursor, f.offset, f.contentHeight())
	}
}

func (f *FileTree) moveCursor(delta int) {
	f.cursor = MoveCursor(f.cursor, delta, len(f.items))
	f.offset = AdjustOffset(f.cursor, f.offset, f.contentHeight())
}

func (f *FileTree) setExpanded(expand bool) {
	item := f.Selected()
	if item == nil || !item.Expandable || item.Expanded == expand {
		return
	}
	f.collapsed = ToggleExpand(f.collapsed, item.ID, expand)
	f.rebuildItems()
}

func (f *FileTree) toggleCurrent() {
	item := f.Selected()
	if item == nil || !item.Expandable {
		return
	}
	f.setExpanded(!item.Expanded)
}

func (f *FileTree) contentHeight() int {
	h := f.height - 2 - headerHeight
	if h < 1 {
		h = 1
	}
	return h
}

func (f *FileTree) innerWidth() int {
	w := f.width - 2
	if w < 1 {
		w = 1
	}
	return w
}

// View renders the component.
func (f *FileTree) View() string {
	if f.width == 0 || f.height == 0 {
		return ""
	}
	innerWidth := f.innerWidth()

	var lines []string
	lines = append(lines, tui.RenderTitle(f.title, innerWidth, f.focused))

	contentHeight := f.contentHeight()
	if len(f.items) == 0 {
		lines = append(lines, f.styles.Muted.Render(tui.PadRight(" Empty. a: new file, A: new folder", innerWidth)))
	}
	for i := f.offset; i < len(f.items) && len(lines) < contentHeight+headerHeight; i++ {
		lines = append(lines, f.renderItem(f.items[i], i))
	}

	emptyLine := strings.Repeat(" ", innerWidth)
	for len(lines) < contentHeight+headerHeight {
		lines = append(lines, emptyLine)
	}

	return tui.RenderBorder(strings.Join(lines, "\n"), f.focused)
}

func (f *FileTree) renderItem(item TreeItem, index int) string {
	width := f.innerWidth()
	selected := index == f.cursor

	// Selection indicator prefix
	marker := " "
	if selected {
		marker = "→"
	}

	indent := strings.Repeat("  ", item.Level)

	indicator := "  "
	if item.Expandable {
		if item.Expanded {
			indicator = "▼ "
		} else {
			indicator = "▶ "
		}
	}

	prefix := marker + indent + indicator + Icon(item.Kind) + " "
	labelWidth := width - LabelColumn(item) - deleteWidth

	var label string
	switch {
	case item.Editing && f.input.Focused():
		f.input.Width = max(labelWidth-1, 1)
		label = f.input.View()
	case item.Editing:
		label = tui.Truncate(f.app.Session().Pending(), labelWidth)
	default:
		label = tui.Truncate(item.Label, labelWidth)
	}

	line := tui.PadRight(prefix+label, width-deleteWidth)
	del := f.styles.Muted.Render(" ✕")
	if selected {
		del = f.styles.Danger.Render(" ✕")
	}

	style := lipgloss.NewStyle()
	switch {
	case f.drag != nil && f.drag.id == item.ID:
		style = f.styles.Dragging
	case f.drag != nil && (index == f.hover || (f.drag.keyboard && selected)):
		style = f.styles.DropTarget
	case selected && f.focused:
		style = f.styles.Selected
	case selected:
		style = f.styles.SelectedDim
	}
	return style.Render(line) + del
}

// Title returns the component title.
func (f *FileTree) Title() string {
	return f.title
}

// Focused returns true if focused.
func (f *FileTree) Focused() bool {
	return f.focused
}

// Focus sets the component as focused.
func (f *FileTree) Focus() {
	f.focused = true
}

// Blur removes focus.
func (f *FileTree) Blur() {
	f.focused = false
}

// SetSize sets dimensions.
func (f *FileTree) SetSize(width, height int) {
	f.width = width
	f.height = height
	f.offset = AdjustOffset(f.cursor, f.offset, f.contentHeight())
}

// SetOrigin sets the screen position of the top-left border cell, used to
// map mouse coordinates onto rows.
func (f *FileTree) SetOrigin(x, y int) {
	f.originX = x
	f.originY = y
}

// Width returns the width.
func (f *FileTree) Width() int {
	return f.width
}

// Height returns the height.
func (f *FileTree) Height() int {
	return f.height
}

// Mode returns the current input mode.
func (f *FileTree) Mode() keys.Mode {
	if _, editing := f.app.EditingID(); editing {
		return keys.ModeInsert
	}
	if f.drag != nil && f.drag.keyboard {
		return keys.ModeMove
	}
	return keys.ModeNormal
}

// Bindings returns the key bindings active in mode.
func (f *FileTree) Bindings(mode keys.Mode) []*keys.KeyBinding {
	return f.keyMap.GetBindings(mode)
}

// Items returns the visible rows.
func (f *FileTree) Items() []TreeItem {
	return f.items
}

// Cursor returns the cursor position.
func (f *FileTree) Cursor() int {
	return f.cursor
}

// SetCursor sets the cursor position.
func (f *FileTree) SetCursor(pos int) {
	f.cursor = MoveCursor(pos, 0, len(f.items))
	f.offset = AdjustOffset(f.cursor, f.offset, f.contentHeight())
}

// Selected returns the item under the cursor.
func (f *FileTree) Selected() *TreeItem {
	if f.cursor < 0 || f.cursor >= len(f.items) {
		return nil
	}
	item := f.items[f.cursor]
	return &item
}

// Dragging returns the id of the node being moved.
func (f *FileTree) Dragging() (string, bool) {
	if f.drag == nil {
		return "", false
	}
	return f.drag.id, true
}

// EditorValue returns the inline editor's text.
func (f *FileTree) EditorValue() string {
	return f.input.Value()
}

// EditorFocused reports whether the inline editor has keyboard focus.
func (f *FileTree) EditorFocused() bool {
	return f.input.Focused()
}

// IsCollapsed reports whether the folder with id is collapsed.
func (f *FileTree) IsCollapsed(id string) bool {
	return f.collapsed[id]
}
