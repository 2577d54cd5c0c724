// Package ui holds the small ebiten widgets of the swarm viewer.
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Pointer is the mouse state widgets react to during one frame.
type Pointer struct {
	X, Y    float64
	Pressed bool    // left button held
	Wheel   float64 // vertical wheel delta
}

// ReadPointer samples ebiten's mouse state. Call it once per Update.
func ReadPointer() Pointer {
	mx, my := ebiten.CursorPosition()
	_, dy := ebiten.Wheel()
	return Pointer{
		X:       float64(mx),
		Y:       float64(my),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Wheel:   dy,
	}
}

// Rect is an axis aligned screen area.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r, borders included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Over reports whether the pointer is inside r.
func (r Rect) Over(p Pointer) bool {
	return r.Contains(p.X, p.Y)
}

// edge turns a held button into a single click: it is true only on the
// first frame the button is pressed while over the widget.
type edge struct {
	held bool
}

func (e *edge) click(over, pressed bool) bool {
	if over && pressed {
		if e.held {
			return false
		}
		e.held = true
		return true
	}
	e.held = false
	return false
}
