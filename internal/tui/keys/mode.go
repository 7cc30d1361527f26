package keys

// Mode is the interaction mode of the tree.
type Mode int

const (
	// ModeNormal navigates and edits the structure.
	ModeNormal Mode = iota
	// ModeInsert routes keys to the inline rename editor.
	ModeInsert
	// ModeMove carries a picked-up node until it is dropped.
	ModeMove
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeMove:
		return "MOVE"
	default:
		return "UNKNOWN"
	}
}
