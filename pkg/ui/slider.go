package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Slider edits a float in [Min, Max]. A positive Step snaps the value to
// multiples of Step from Min.
type Slider struct {
	Rect
	Label    string
	Value    float64
	Min, Max float64
	Step     float64
	Format   string // printf verb for the value, "%.2f" by default

	changed bool
}

func NewSlider(x, y, w float64, label string, min, max, value float64) *Slider {
	s := &Slider{
		Rect:   Rect{X: x, Y: y, W: w, H: 14},
		Label:  label,
		Min:    min,
		Max:    max,
		Format: "%.2f",
	}
	s.SetValue(value)
	s.changed = false
	return s
}

// SetValue clamps and snaps v.
func (s *Slider) SetValue(v float64) {
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}
	v = min(max(v, s.Min), s.Max)
	if v != s.Value {
		s.Value = v
		s.changed = true
	}
}

// Changed reports whether the value moved since the last call.
func (s *Slider) Changed() bool {
	c := s.changed
	s.changed = false
	return c
}

// Update follows the pointer while the button is held over the bar.
func (s *Slider) Update(p Pointer) {
	if !p.Pressed || !s.Over(p) || s.W <= 0 {
		return
	}
	ratio := (p.X - s.X) / s.W
	s.SetValue(s.Min + ratio*(s.Max-s.Min))
}

func (s *Slider) Height() float64 {
	return s.H + 22
}

func (s *Slider) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s: "+s.Format, s.Label, s.Value), int(s.X), int(s.Y)-16)

	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H),
		color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)

	ratio := 0.0
	if s.Max > s.Min {
		ratio = (s.Value - s.Min) / (s.Max - s.Min)
	}
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W*ratio), float32(s.H),
		color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
}

func (s *Slider) place(x, y, w float64) {
	s.X, s.Y, s.W = x, y+16, w
}
