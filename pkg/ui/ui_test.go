package ui

import (
	"math"
	"testing"
)

func TestSlider_Update(t *testing.T) {
	tests := []struct {
		name    string
		ptr     Pointer
		want    float64
		changed bool
	}{
		{"click in the middle", Pointer{X: 60, Y: 15, Pressed: true}, 50, true},
		{"left edge", Pointer{X: 10, Y: 15, Pressed: true}, 0, true},
		{"right edge", Pointer{X: 110, Y: 15, Pressed: true}, 100, true},
		{"released", Pointer{X: 60, Y: 15}, 25, false},
		{"outside", Pointer{X: 60, Y: 50, Pressed: true}, 25, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSlider(10, 10, 100, "range", 0, 100, 25)
			s.Update(tt.ptr)
			if math.Abs(s.Value-tt.want) > 1e-9 {
				t.Errorf("Value = %v, want %v", s.Value, tt.want)
			}
			if s.Changed() != tt.changed {
				t.Errorf("Changed = %t, want %t", !tt.changed, tt.changed)
			}
		})
	}
}

func TestSlider_SetValue(t *testing.T) {
	s := NewSlider(0, 0, 100, "members", 1, 500, 100)
	s.Step = 1
	s.SetValue(42.4)
	if s.Value != 42 {
		t.Errorf("Value = %v, want 42", s.Value)
	}
	s.SetValue(1000)
	if s.Value != 500 {
		t.Errorf("Value = %v, want the max", s.Value)
	}
	s.SetValue(-3)
	if s.Value != 1 {
		t.Errorf("Value = %v, want the min", s.Value)
	}
}

func TestCheckbox_TogglesOncePerPress(t *testing.T) {
	c := NewCheckbox(0, 0, "square", false)
	over := Pointer{X: 5, Y: 5, Pressed: true}

	c.Update(over)
	c.Update(over)
	if !c.Value || !c.Changed() {
		t.Fatalf("Value = %t after a held press, want true", c.Value)
	}
	if c.Changed() {
		t.Errorf("Changed must reset after being read")
	}

	c.Update(Pointer{X: 5, Y: 5})
	c.Update(over)
	if c.Value {
		t.Errorf("second click should toggle back")
	}
}

func TestButton_ClickOnce(t *testing.T) {
	clicks := 0
	b := NewButton(0, 0, 50, 20, "Restart", func() { clicks++ })

	for i := 0; i < 5; i++ {
		b.Update(Pointer{X: 10, Y: 10, Pressed: true})
	}
	b.Update(Pointer{X: 10, Y: 10})
	b.Update(Pointer{X: 10, Y: 10, Pressed: true})
	b.Update(Pointer{X: 100, Y: 10, Pressed: true})

	if clicks != 2 {
		t.Errorf("clicks = %d, want 2", clicks)
	}
}

func TestPanel_LayoutAndScroll(t *testing.T) {
	p := NewPanel(10, 10, 200, 120, "Configuration")
	p.AddSection("Sensing")
	scent := p.AddSlider("Scent range", 0, 300, 150)
	social := p.AddSlider("Social range", 0, 300, 60)
	p.AddSection("Run")
	members := p.AddIntSlider("Members", 1, 500, 100.4)
	square := p.AddCheckbox("Square", false)

	if members.Value != 100 {
		t.Errorf("int slider value = %v, want 100", members.Value)
	}
	if scent.X != 20 || scent.W != 180 {
		t.Errorf("slider placed at x=%v w=%v", scent.X, scent.W)
	}
	if social.Y != scent.Y+scent.Height() {
		t.Errorf("widgets overlap: %v then %v", scent.Y, social.Y)
	}

	want := titleHeight + 2*sectionHeight + scent.Height() + social.Height() + members.Height() + square.Height()
	if p.ContentHeight() != want {
		t.Errorf("ContentHeight = %v, want %v", p.ContentHeight(), want)
	}

	// scrolling down moves widgets up and stops at the end
	y0 := square.Y
	p.Update(Pointer{X: 50, Y: 50, Wheel: -100})
	if p.Scroll != p.maxScroll() {
		t.Errorf("Scroll = %v, want clamped to %v", p.Scroll, p.maxScroll())
	}
	if square.Y != y0-p.Scroll {
		t.Errorf("checkbox at %v, want %v", square.Y, y0-p.Scroll)
	}

	p.Update(Pointer{X: 50, Y: 50, Wheel: 100})
	if p.Scroll != 0 {
		t.Errorf("Scroll = %v, want 0", p.Scroll)
	}

	// wheel outside the panel is ignored
	p.Update(Pointer{X: 500, Y: 50, Wheel: -1})
	if p.Scroll != 0 {
		t.Errorf("Scroll = %v, want 0", p.Scroll)
	}
}

func TestPanel_ForwardsClicks(t *testing.T) {
	p := NewPanel(0, 0, 200, 400, "Configuration")
	clicked := false
	b := p.AddButton("Restart", func() { clicked = true })

	p.Update(Pointer{X: b.X + 5, Y: b.Y + 5, Pressed: true})
	if !clicked {
		t.Error("button inside the panel did not receive the click")
	}
}
