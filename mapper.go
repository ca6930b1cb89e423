package driftgrid

import "math"

// Coordinate pipeline, CPU side. The scene's fragment shader re-derives the
// identical forward transform per pixel; the two implementations must agree
// on which cell a screen pixel belongs to, because all hit-testing (hover,
// tap targeting) happens here while all drawing happens there. Any change to
// this file must be mirrored in the Kage source in shader.go.

// distortionFactor is the barrel-distortion coefficient shared with the
// shader. The CPU applies it to raw NDC as an approximate inverse of the
// shader's screen-space distortion; the two coincide exactly at zero
// distortion and stay within hit-testing tolerance elsewhere.
const distortionFactor = 0.08

// screenToWorld converts a screen-pixel position to world coordinates.
// Screen Y grows downward, world Y grows upward.
func screenToWorld(screen, resolution, offset Vec2, zoom, distortion float64) Vec2 {
	ndcX := screen.X/resolution.X*2 - 1
	ndcY := -(screen.Y/resolution.Y*2 - 1)

	r2 := ndcX*ndcX + ndcY*ndcY
	f := 1 - distortion*distortionFactor*r2
	ndcX *= f
	ndcY *= f

	aspect := resolution.X / resolution.Y
	return Vec2{
		X: ndcX*aspect*zoom + offset.X,
		Y: ndcY*zoom + offset.Y,
	}
}

// cellForWorld returns the cell containing a world position.
func cellForWorld(world Vec2, cellSize float64) CellID {
	return CellID{
		X: int(math.Floor(world.X / cellSize)),
		Y: int(math.Floor(world.Y / cellSize)),
	}
}

// cellUV returns the position within a cell as fractions in [0, 1).
func cellUV(world Vec2, cellSize float64) Vec2 {
	fx := world.X / cellSize
	fy := world.Y / cellSize
	return Vec2{X: fx - math.Floor(fx), Y: fy - math.Floor(fy)}
}

// cellCenter returns the world-space center of a cell. Used as the camera
// target when navigating to a cell.
func cellCenter(cell CellID, cellSize float64) Vec2 {
	return Vec2{
		X: (float64(cell.X) + 0.5) * cellSize,
		Y: (float64(cell.Y) + 0.5) * cellSize,
	}
}

// panDelta converts a screen-pixel pointer delta into the world-space offset
// shift that keeps the grid under the pointer. The viewport spans 2*zoom
// world units vertically (and 2*zoom*aspect horizontally), hence the factor
// of two; Y flips because screen Y grows downward.
func panDelta(pixelDelta, resolution Vec2, zoom float64) Vec2 {
	aspect := resolution.X / resolution.Y
	return Vec2{
		X: pixelDelta.X / resolution.X * 2 * zoom * aspect,
		Y: -pixelDelta.Y / resolution.Y * 2 * zoom,
	}
}
