package core

// EditSession tracks which node, if any, is being renamed inline. It is
// either idle or editing exactly one node.
type EditSession struct {
	editingID string
	pending   string
	deferred  *DeferredQueue

	// OnFocus runs once, from the deferred queue, after an edit begins.
	OnFocus func(id, text string)
}

// NewEditSession creates an idle session that schedules focus actions on q.
func NewEditSession(q *DeferredQueue) *EditSession {
	if q == nil {
		q = &DeferredQueue{}
	}
	return &EditSession{deferred: q}
}

// Editing reports whether a node is being edited.
func (s *EditSession) Editing() bool { return s.editingID != "" }

// EditingID returns the id of the node being edited, or "".
func (s *EditSession) EditingID() string { return s.editingID }

// Pending returns the editor's current text.
func (s *EditSession) Pending() string { return s.pending }

// Deferred returns the queue focus actions are scheduled on.
func (s *EditSession) Deferred() *DeferredQueue { return s.deferred }

// SetPending records the editor's current text. Ignored while idle.
func (s *EditSession) SetPending(text string) {
	if s.Editing() {
		s.pending = text
	}
}

// Begin starts editing the node with the given id. A node without an id or
// label cannot be edited. An edit already in progress is committed with its
// pending text first. It reports whether the session entered editing for id.
func (s *EditSession) Begin(t Tree, id string) (Tree, bool) {
	node, ok := Find(t, id)
	if !ok || node.ID == "" || node.Label == "" {
		return t, false
	}
	if s.editingID == id {
		return t, true
	}

	t = s.Commit(t)

	// The previous commit may have renamed the node.
	node, ok = Find(t, id)
	if !ok {
		return t, false
	}
	label := node.Label

	t, _ = SetEditing(t, id)
	s.editingID = id
	s.pending = label

	s.deferred.Schedule(func() {
		if s.editingID != id || s.OnFocus == nil {
			return
		}
		s.OnFocus(id, s.pending)
	})
	return t, true
}

// Commit renames the edited node to the pending text and returns to idle.
// While idle it returns t unchanged.
func (s *EditSession) Commit(t Tree) Tree {
	if !s.Editing() {
		return t
	}
	id, text := s.editingID, s.pending
	s.editingID, s.pending = "", ""
	out, _ := RenameNode(t, id, text)
	return out
}

// OutsideInteraction handles an interaction outside the active editor. The
// pending text is committed, never discarded.
func (s *EditSession) OutsideInteraction(t Tree) Tree {
	return s.Commit(t)
}

// Reset returns to idle without touching the tree. Used when the edited
// node has disappeared.
func (s *EditSession) Reset() {
	s.editingID, s.pending = "", ""
}
