package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Checkbox toggles a boolean once per click.
type Checkbox struct {
	Label string
	Value bool
	X, Y  float64
	Size  float64

	press   edge
	changed bool
}

func NewCheckbox(x, y float64, label string, value bool) *Checkbox {
	return &Checkbox{
		Label: label,
		Value: value,
		X:     x,
		Y:     y,
		Size:  16,
	}
}

func (c *Checkbox) box() Rect {
	return Rect{X: c.X, Y: c.Y, W: c.Size, H: c.Size}
}

func (c *Checkbox) Update(p Pointer) {
	if c.press.click(c.box().Over(p), p.Pressed) {
		c.Value = !c.Value
		c.changed = true
	}
}

// Changed reports whether the box was toggled since the last call.
func (c *Checkbox) Changed() bool {
	ch := c.changed
	c.changed = false
	return ch
}

func (c *Checkbox) Height() float64 {
	return c.Size + 6
}

func (c *Checkbox) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen,
		float32(c.X), float32(c.Y),
		float32(c.Size), float32(c.Size),
		2, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)

	if c.Value {
		vector.FillRect(screen,
			float32(c.X+2), float32(c.Y+2),
			float32(c.Size-4), float32(c.Size-4),
			color.RGBA{R: 100, G: 200, B: 100, A: 255}, true)
	}
	ebitenutil.DebugPrintAt(screen, c.Label, int(c.X+c.Size+8), int(c.Y))
}

func (c *Checkbox) place(x, y, _ float64) {
	c.X, c.Y = x, y
}
