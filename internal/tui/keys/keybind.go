package keys

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding represents a single key binding.
type KeyBinding struct {
	keys        []string
	description string
	action      func() tea.Cmd
}

// NewKeyBinding creates a binding triggered by any of the given keys.
// Keys are separated by "/", e.g. "j/down".
func NewKeyBinding(key, description string) *KeyBinding {
	return &KeyBinding{
		keys:        strings.Split(key, "/"),
		description: description,
	}
}

// Key returns the key string as registered.
func (kb *KeyBinding) Key() string {
	return strings.Join(kb.keys, "/")
}

// Description returns the description.
func (kb *KeyBinding) Description() string {
	return kb.description
}

// Matches returns true if the key message matches this binding.
func (kb *KeyBinding) Matches(msg tea.KeyMsg) bool {
	for _, k := range kb.keys {
		if matchKey(k, msg) {
			return true
		}
	}
	return false
}

// Execute runs the action and returns the command.
func (kb *KeyBinding) Execute() tea.Cmd {
	if kb.action != nil {
		return kb.action()
	}
	return nil
}

// SetAction sets the action for this binding.
func (kb *KeyBinding) SetAction(action func() tea.Cmd) {
	kb.action = action
}

// matchKey checks if a key string matches a tea.KeyMsg. Named keys are
// case-insensitive, single runes are not ("a" and "A" differ).
func matchKey(key string, msg tea.KeyMsg) bool {
	switch strings.ToLower(key) {
	case "enter":
		return msg.Type == tea.KeyEnter
	case "esc", "escape":
		return msg.Type == tea.KeyEsc
	case "space":
		return msg.Type == tea.KeySpace
	case "tab":
		return msg.Type == tea.KeyTab
	case "backspace":
		return msg.Type == tea.KeyBackspace
	case "delete":
		return msg.Type == tea.KeyDelete
	case "up":
		return msg.Type == tea.KeyUp
	case "down":
		return msg.Type == tea.KeyDown
	case "left":
		return msg.Type == tea.KeyLeft
	case "right":
		return msg.Type == tea.KeyRight
	case "f2":
		return msg.Type == tea.KeyF2
	case "ctrl+c":
		return msg.Type == tea.KeyCtrlC
	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
			return string(msg.Runes) == key
		}
		return false
	}
}

// KeyMap holds key bindings organized by mode.
type KeyMap struct {
	bindings map[Mode][]*KeyBinding
}

// NewKeyMap creates a new empty key map.
func NewKeyMap() *KeyMap {
	return &KeyMap{
		bindings: make(map[Mode][]*KeyBinding),
	}
}

// Register adds a key binding for a mode.
func (km *KeyMap) Register(mode Mode, key, description string, action func() tea.Cmd) {
	kb := NewKeyBinding(key, description)
	kb.SetAction(action)
	km.bindings[mode] = append(km.bindings[mode], kb)
}

// GetBindings returns all bindings for a mode.
func (km *KeyMap) GetBindings(mode Mode) []*KeyBinding {
	return km.bindings[mode]
}

// FindBinding finds the first matching binding for the given mode and key.
func (km *KeyMap) FindBinding(mode Mode, msg tea.KeyMsg) (*KeyBinding, bool) {
	for _, kb := range km.bindings[mode] {
		if kb.Matches(msg) {
			return kb, true
		}
	}
	return nil, false
}

// SequenceStatus represents the state of a key sequence.
type SequenceStatus int

const (
	SequenceNone SequenceStatus = iota
	SequencePending
	SequenceComplete
	SequenceInvalid
)

// SequenceResult holds the result of handling a key in a sequence.
type SequenceResult struct {
	Status SequenceStatus
	action func() tea.Cmd
}

// Execute runs the action if the sequence is complete.
func (r *SequenceResult) Execute() tea.Cmd {
	if r.action != nil {
		return r.action()
	}
	return nil
}

// KeySequenceHandler handles multi-key sequences like "gg" and "dd".
type KeySequenceHandler struct {
	sequences map[string]func() tea.Cmd
	buffer    string
}

// NewKeySequenceHandler creates a new sequence handler.
func NewKeySequenceHandler() *KeySequenceHandler {
	return &KeySequenceHandler{
		sequences: make(map[string]func() tea.Cmd),
	}
}

// Register adds a sequence handler.
func (h *KeySequenceHandler) Register(sequence string, action func() tea.Cmd) {
	h.sequences[sequence] = action
}

// IsPrefix reports whether key starts any registered sequence.
func (h *KeySequenceHandler) IsPrefix(key string) bool {
	for seq := range h.sequences {
		if strings.HasPrefix(seq, key) {
			return true
		}
	}
	return false
}

// Handle processes a key and returns the sequence status.
func (h *KeySequenceHandler) Handle(key string) *SequenceResult {
	h.buffer += key

	if action, ok := h.sequences[h.buffer]; ok {
		hasLonger := false
		for seq := range h.sequences {
			if len(seq) > len(h.buffer) && strings.HasPrefix(seq, h.buffer) {
				hasLonger = true
				break
			}
		}
		if !hasLonger {
			h.buffer = ""
			return &SequenceResult{Status: SequenceComplete, action: action}
		}
		return &SequenceResult{Status: SequencePending}
	}

	if h.IsPrefix(h.buffer) {
		return &SequenceResult{Status: SequencePending}
	}

	h.buffer = ""
	return &SequenceResult{Status: SequenceInvalid}
}

// Reset clears the sequence buffer.
func (h *KeySequenceHandler) Reset() {
	h.buffer = ""
}

// Buffer returns the current sequence buffer.
func (h *KeySequenceHandler) Buffer() string {
	return h.buffer
}
