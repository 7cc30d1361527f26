package core

// PointerKind classifies pointer events fed to an OutsideDetector.
type PointerKind int

const (
	PointerClick PointerKind = iota
	PointerTouchEnd
)

// PointerEvent is a pointer interaction at a screen position.
type PointerEvent struct {
	Kind PointerKind
	X, Y int
}

// Surface is the area occupied by the active editor.
type Surface interface {
	Contains(x, y int) bool
}

// Rect is a rectangular Surface.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// OutsideDetector calls commit when a pointer interaction lands outside the
// attached surface. On touch-capable platforms it listens to touch-end events
// only, so a tap that also produces a click fires once.
type OutsideDetector struct {
	touch   bool
	surface Surface
	commit  func()
}

// NewOutsideDetector creates a detector. Touch capability is fixed here.
func NewOutsideDetector(touchCapable bool, commit func()) *OutsideDetector {
	return &OutsideDetector{touch: touchCapable, commit: commit}
}

// TouchCapable reports the capability detected at construction.
func (d *OutsideDetector) TouchCapable() bool { return d.touch }

// Attach starts watching s.
func (d *OutsideDetector) Attach(s Surface) { d.surface = s }

// Detach stops watching.
func (d *OutsideDetector) Detach() { d.surface = nil }

// Attached reports whether a surface is being watched.
func (d *OutsideDetector) Attached() bool { return d.surface != nil }

// Handle processes ev and reports whether commit was called.
func (d *OutsideDetector) Handle(ev PointerEvent) bool {
	if d.surface == nil || d.commit == nil {
		return false
	}
	if d.listensTo() != ev.Kind {
		return false
	}
	if d.surface.Contains(ev.X, ev.Y) {
		return false
	}
	d.commit()
	return true
}

func (d *OutsideDetector) listensTo() PointerKind {
	if d.touch {
		return PointerTouchEnd
	}
	return PointerClick
}
