package driftgrid

import (
	"math"
	"testing"
)

func TestScreenToWorldCenter(t *testing.T) {
	res := Vec2{X: 800, Y: 600}
	w := screenToWorld(Vec2{X: 400, Y: 300}, res, Vec2{}, 1.0, 1.0)
	if !approxEqual(w.X, 0, epsilon) || !approxEqual(w.Y, 0, epsilon) {
		t.Errorf("center maps to (%f, %f), want origin", w.X, w.Y)
	}
}

func TestScreenToWorldOffset(t *testing.T) {
	res := Vec2{X: 800, Y: 600}
	off := Vec2{X: 2.5, Y: -1.5}
	w := screenToWorld(Vec2{X: 400, Y: 300}, res, off, 1.0, 0.0)
	if !approxEqual(w.X, off.X, epsilon) || !approxEqual(w.Y, off.Y, epsilon) {
		t.Errorf("center with offset maps to (%f, %f), want (%f, %f)", w.X, w.Y, off.X, off.Y)
	}
}

func TestScreenToWorldYFlip(t *testing.T) {
	res := Vec2{X: 800, Y: 600}
	top := screenToWorld(Vec2{X: 400, Y: 0}, res, Vec2{}, 1.0, 0.0)
	bottom := screenToWorld(Vec2{X: 400, Y: 600}, res, Vec2{}, 1.0, 0.0)
	if top.Y <= bottom.Y {
		t.Errorf("top.Y = %f, bottom.Y = %f; screen-down must be world-down", top.Y, bottom.Y)
	}
}

func TestScreenToWorldAspect(t *testing.T) {
	// With aspect 2:1 and no distortion, the right edge sits at x = 2*zoom.
	res := Vec2{X: 1200, Y: 600}
	w := screenToWorld(Vec2{X: 1200, Y: 300}, res, Vec2{}, 1.0, 0.0)
	if !approxEqual(w.X, 2, epsilon) {
		t.Errorf("right edge at x = %f, want 2", w.X)
	}
}

func TestDistortionPullsInward(t *testing.T) {
	res := Vec2{X: 800, Y: 600}
	corner := Vec2{X: 0, Y: 0}
	flat := screenToWorld(corner, res, Vec2{}, 1.0, 0.0)
	bent := screenToWorld(corner, res, Vec2{}, 1.0, 1.0)

	// Positive distortion shrinks the sampled NDC radius, so a screen
	// corner maps to a smaller world radius.
	if math.Hypot(bent.X, bent.Y) >= math.Hypot(flat.X, flat.Y) {
		t.Errorf("distorted corner radius %f >= flat radius %f",
			math.Hypot(bent.X, bent.Y), math.Hypot(flat.X, flat.Y))
	}

	// The center is a fixed point regardless of distortion.
	c := screenToWorld(Vec2{X: 400, Y: 300}, res, Vec2{}, 1.0, 2.0)
	if !approxEqual(c.X, 0, epsilon) || !approxEqual(c.Y, 0, epsilon) {
		t.Errorf("distorted center maps to (%f, %f), want origin", c.X, c.Y)
	}
}

func TestCellForWorld(t *testing.T) {
	tests := []struct {
		x, y float64
		want CellID
	}{
		{0.1, 0.1, CellID{0, 0}},
		{0.8, 0.1, CellID{1, 0}},
		{-0.1, -0.1, CellID{-1, -1}},
		{-0.76, 1.6, CellID{-2, 2}},
	}
	for _, tt := range tests {
		got := cellForWorld(Vec2{X: tt.x, Y: tt.y}, 0.75)
		if got != tt.want {
			t.Errorf("cellForWorld(%f, %f) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCellUV(t *testing.T) {
	uv := cellUV(Vec2{X: 0.9, Y: -0.3}, 0.75)
	if !approxEqual(uv.X, 0.2, epsilon) || !approxEqual(uv.Y, 0.6, epsilon) {
		t.Errorf("cellUV = (%f, %f), want (0.2, 0.6)", uv.X, uv.Y)
	}
	// Fractions stay in [0, 1) for negative world positions too.
	uv = cellUV(Vec2{X: -2.1, Y: -0.75}, 0.75)
	if uv.X < 0 || uv.X >= 1 || uv.Y < 0 || uv.Y >= 1 {
		t.Errorf("cellUV out of range: (%f, %f)", uv.X, uv.Y)
	}
}

func TestCellCenter(t *testing.T) {
	c := cellCenter(CellID{X: 2, Y: -1}, 0.75)
	if !approxEqual(c.X, 2.5*0.75, epsilon) || !approxEqual(c.Y, -0.5*0.75, epsilon) {
		t.Errorf("cellCenter = (%f, %f), want (%f, %f)", c.X, c.Y, 2.5*0.75, -0.5*0.75)
	}
}

func TestPanDeltaScalesWithZoomAndAspect(t *testing.T) {
	res := Vec2{X: 1200, Y: 600}
	pan := panDelta(Vec2{X: 120, Y: -60}, res, 0.5)

	// dx/resX * 2 * zoom * aspect = 0.1 * 2 * 0.5 * 2 = 0.2
	if !approxEqual(pan.X, 0.2, epsilon) {
		t.Errorf("pan.X = %f, want 0.2", pan.X)
	}
	// -dy/resY * 2 * zoom = 0.1 * 2 * 0.5 = 0.1
	if !approxEqual(pan.Y, 0.1, epsilon) {
		t.Errorf("pan.Y = %f, want 0.1", pan.Y)
	}
}

func TestScreenToWorldRoundTripNoDistortion(t *testing.T) {
	// At distortion 0 the transform is affine and exactly invertible:
	// applying the closed-form inverse recovers the original pixel.
	res := Vec2{X: 800, Y: 600}
	off := Vec2{X: 0.7, Y: -1.2}
	zoom := 0.8
	aspect := res.X / res.Y

	points := []Vec2{
		{X: 0, Y: 0}, {X: 800, Y: 600}, {X: 123, Y: 456}, {X: 400, Y: 300},
	}
	for _, p := range points {
		w := screenToWorld(p, res, off, zoom, 0.0)
		sx := ((w.X-off.X)/(zoom*aspect) + 1) / 2 * res.X
		sy := (-(w.Y-off.Y)/zoom + 1) / 2 * res.Y
		if !approxEqual(sx, p.X, 1e-9) || !approxEqual(sy, p.Y, 1e-9) {
			t.Errorf("round trip of (%f, %f) gave (%f, %f)", p.X, p.Y, sx, sy)
		}
	}
}

func TestPanDeltaMatchesWorldMotion(t *testing.T) {
	// Without distortion, moving the pointer by a pixel delta and panning
	// by panDelta keeps the same world point under the pointer.
	res := Vec2{X: 800, Y: 600}
	start := Vec2{X: 200, Y: 420}
	end := Vec2{X: 341, Y: 377}
	zoom := 1.3

	before := screenToWorld(start, res, Vec2{}, zoom, 0.0)
	pan := panDelta(Vec2{X: end.X - start.X, Y: end.Y - start.Y}, res, zoom)
	after := screenToWorld(end, res, Vec2{X: -pan.X, Y: -pan.Y}, zoom, 0.0)

	if !approxEqual(before.X, after.X, epsilon) || !approxEqual(before.Y, after.Y, epsilon) {
		t.Errorf("world point drifted: (%f, %f) -> (%f, %f)", before.X, before.Y, after.X, after.Y)
	}
}
