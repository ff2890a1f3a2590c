package sim

import "testing"

func TestGroundUpdate(t *testing.T) {
	tests := []struct {
		name     string
		width    float64
		speed    float64
		frames   float64
		steps    int
		expected [2]float64
	}{
		{"no movement", 100, 0, 1, 10, [2]float64{0, 100}},
		{"scroll", 100, 3, 1, 10, [2]float64{-30, 70}},
		{"wrap first segment", 100, 10, 1, 10, [2]float64{100, 0}},
		{"wrap past half", 100, 10, 1, 15, [2]float64{50, -50}},
		{"scaled frames", 100, 5, 2, 3, [2]float64{-30, 70}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGround(tt.width)
			for range tt.steps {
				g.Update(tt.speed, tt.frames)
			}
			if got := g.Offsets(); got != tt.expected {
				t.Errorf("Offsets() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestGroundSegmentsStayAdjacent(t *testing.T) {
	g := newGround(120)
	for i := range 500 {
		g.Update(7, 1)
		o := g.Offsets()
		d := o[1] - o[0]
		if d != 120 && d != -120 {
			t.Fatalf("step %d: segments %v not adjacent", i, o)
		}
		if min(o[0], o[1]) > 0 || min(o[0], o[1]) <= -120 {
			t.Fatalf("step %d: segments %v leave a hole at the left edge", i, o)
		}
	}
}

func TestGroundResize(t *testing.T) {
	g := newGround(100)
	g.Update(10, 2)

	g.Resize(200)

	if got, expected := g.Offsets(), [2]float64{-40, 160}; got != expected {
		t.Errorf("Offsets() = %v, expected %v", got, expected)
	}
	if g.SegmentWidth() != 200 {
		t.Errorf("SegmentWidth() = %v, expected 200", g.SegmentWidth())
	}
}
