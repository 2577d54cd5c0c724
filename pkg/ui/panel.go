package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget is anything a Panel can stack.
type Widget interface {
	Update(p Pointer)
	Draw(screen *ebiten.Image)
	Height() float64
	place(x, y, w float64)
}

const (
	panelMargin   = 10.0
	titleHeight   = 30.0
	sectionHeight = 25.0
	scrollSpeed   = 20.0
)

type section struct {
	title   string
	widgets []Widget
}

// Panel is a scrollable column of titled sections. Widgets are laid out
// again on every Update, so they always sit where they are drawn.
type Panel struct {
	Rect
	Title  string
	Scroll float64

	BGColor     color.RGBA
	BorderColor color.RGBA
	SectionBG   color.RGBA

	sections []*section
}

func NewPanel(x, y, width, height float64, title string) *Panel {
	return &Panel{
		Rect:        Rect{X: x, Y: y, W: width, H: height},
		Title:       title,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
		SectionBG:   color.RGBA{R: 60, G: 60, B: 70, A: 255},
	}
}

// AddSection starts a new section; later widgets go into it.
func (p *Panel) AddSection(title string) {
	p.sections = append(p.sections, &section{title: title})
}

func (p *Panel) add(w Widget) {
	if len(p.sections) == 0 {
		p.AddSection("")
	}
	s := p.sections[len(p.sections)-1]
	s.widgets = append(s.widgets, w)
	p.layout()
}

func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(0, 0, 0, label, min, max, value)
	p.add(s)
	return s
}

// AddIntSlider adds a slider snapping to whole numbers.
func (p *Panel) AddIntSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(0, 0, 0, label, min, max, value)
	s.Step = 1
	s.Format = "%.0f"
	s.SetValue(value)
	s.Changed()
	p.add(s)
	return s
}

func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(0, 0, label, value)
	p.add(c)
	return c
}

func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(0, 0, 0, 24, label, onClick)
	p.add(b)
	return b
}

// ContentHeight is the height of everything in the panel, unscrolled.
func (p *Panel) ContentHeight() float64 {
	h := titleHeight
	for _, s := range p.sections {
		h += sectionHeight
		for _, w := range s.widgets {
			h += w.Height()
		}
	}
	return h
}

func (p *Panel) maxScroll() float64 {
	return max(0, p.ContentHeight()-p.H+panelMargin)
}

// layout positions every widget from the current scroll offset.
func (p *Panel) layout() {
	y := p.Y + titleHeight - p.Scroll
	for _, s := range p.sections {
		y += sectionHeight
		for _, w := range s.widgets {
			w.place(p.X+panelMargin, y, p.W-2*panelMargin)
			y += w.Height()
		}
	}
}

// visible reports whether a widget row starting at y is inside the panel.
func (p *Panel) visible(y, h float64) bool {
	return y+h >= p.Y+titleHeight && y <= p.Y+p.H
}

// Update scrolls when the wheel moves over the panel, then feeds the
// pointer to the visible widgets.
func (p *Panel) Update(ptr Pointer) {
	if ptr.Wheel != 0 && p.Over(ptr) {
		p.Scroll = min(max(p.Scroll-ptr.Wheel*scrollSpeed, 0), p.maxScroll())
	}
	p.layout()

	y := p.Y + titleHeight - p.Scroll
	for _, s := range p.sections {
		y += sectionHeight
		for _, w := range s.widgets {
			if p.visible(y, w.Height()) {
				w.Update(ptr)
			}
			y += w.Height()
		}
	}
}

func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), p.BGColor, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), 2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+panelMargin), int(p.Y+5))

	y := p.Y + titleHeight - p.Scroll
	for _, s := range p.sections {
		if p.visible(y, sectionHeight) && s.title != "" {
			vector.FillRect(screen, float32(p.X+5), float32(y), float32(p.W-10), 20, p.SectionBG, true)
			ebitenutil.DebugPrintAt(screen, s.title, int(p.X+panelMargin), int(y+3))
		}
		y += sectionHeight
		for _, w := range s.widgets {
			if p.visible(y, w.Height()) {
				w.Draw(screen)
			}
			y += w.Height()
		}
	}
}
