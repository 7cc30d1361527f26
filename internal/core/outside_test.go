package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 10, Height: 1}

	assert.True(t, r.Contains(2, 3))
	assert.True(t, r.Contains(11, 3))
	assert.False(t, r.Contains(12, 3))
	assert.False(t, r.Contains(1, 3))
	assert.False(t, r.Contains(5, 4))
}

func TestOutsideDetector(t *testing.T) {
	surface := Rect{X: 0, Y: 5, Width: 20, Height: 1}

	t.Run("click outside commits once", func(t *testing.T) {
		calls := 0
		d := NewOutsideDetector(false, func() { calls++ })
		d.Attach(surface)

		assert.True(t, d.Handle(PointerEvent{Kind: PointerClick, X: 3, Y: 9}))
		assert.Equal(t, 1, calls)
	})

	t.Run("click inside is ignored", func(t *testing.T) {
		calls := 0
		d := NewOutsideDetector(false, func() { calls++ })
		d.Attach(surface)

		assert.False(t, d.Handle(PointerEvent{Kind: PointerClick, X: 3, Y: 5}))
		assert.Equal(t, 0, calls)
	})

	t.Run("detached detector never commits", func(t *testing.T) {
		calls := 0
		d := NewOutsideDetector(false, func() { calls++ })
		assert.False(t, d.Attached())

		d.Handle(PointerEvent{Kind: PointerClick, X: 3, Y: 9})
		d.Attach(surface)
		d.Detach()
		d.Handle(PointerEvent{Kind: PointerClick, X: 3, Y: 9})

		assert.Equal(t, 0, calls)
	})

	t.Run("touch platform ignores clicks", func(t *testing.T) {
		calls := 0
		d := NewOutsideDetector(true, func() { calls++ })
		d.Attach(surface)
		assert.True(t, d.TouchCapable())

		assert.False(t, d.Handle(PointerEvent{Kind: PointerClick, X: 3, Y: 9}))
		assert.True(t, d.Handle(PointerEvent{Kind: PointerTouchEnd, X: 3, Y: 9}))
		assert.Equal(t, 1, calls)
	})

	t.Run("non-touch platform ignores touch events", func(t *testing.T) {
		calls := 0
		d := NewOutsideDetector(false, func() { calls++ })
		d.Attach(surface)

		assert.False(t, d.Handle(PointerEvent{Kind: PointerTouchEnd, X: 3, Y: 9}))
		assert.Equal(t, 0, calls)
	})
}
