package driftgrid

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at uniform submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a standard library premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(c.R*c.A*255 + 0.5),
		G: uint8(c.G*c.A*255 + 0.5),
		B: uint8(c.B*c.A*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions, offsets, and deltas throughout the
// API. Screen-space vectors are in pixels with Y increasing downward;
// world-space vectors have Y increasing upward.
type Vec2 struct {
	X, Y float64
}

// CellID identifies one tile of the unbounded virtual grid by integer
// coordinates. The grid has no edges; any pair of integers is a valid cell.
type CellID struct {
	X, Y int
}

// CursorStyle is the pointer affordance the host should display.
type CursorStyle uint8

const (
	CursorGrab     CursorStyle = iota // open hand: the grid can be panned
	CursorGrabbing                    // closed hand: a drag is in progress
)

// String returns the CSS cursor keyword for the style.
func (c CursorStyle) String() string {
	if c == CursorGrabbing {
		return "grabbing"
	}
	return "grab"
}

// WheelMode identifies the unit a wheel event's deltas are expressed in.
// Hosts that receive DOM-style wheel events can pass the delta mode through;
// native mice report pixels.
type WheelMode uint8

const (
	WheelModePixel WheelMode = iota // deltas are pixels
	WheelModeLine                   // deltas are text lines
	WheelModePage                   // deltas are viewport pages
)

// lerp returns a + (b-a)*t, the exponential-approach step used for all
// smoothed scalar state (mouse, zoom, distortion, zoom progress).
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
