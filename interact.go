package driftgrid

import "math"

// Gesture classification thresholds, in screen pixels. Both are exclusive:
// motion of exactly tapThreshold or swipeThreshold classifies as neither a
// tap nor a swipe, and releasing such a drag navigates nowhere.
const (
	tapThreshold   = 10.0
	swipeThreshold = 50.0
)

// wheelLineScale converts line-mode wheel deltas to pixels.
const wheelLineScale = 18.0

// focusLinkDelay is how long after a navigation the host's focus callback
// fires, in seconds. Long enough to outlast the zoom transition so keyboard
// focus lands on a settled layout.
const focusLinkDelay = 0.3

// HandlePointerDown begins a gesture at the given screen-pixel position.
// Enters the dragging state and switches the cursor affordance to grabbing.
func (s *Scene) HandlePointerDown(x, y float64) {
	ptr := &s.pointer
	if ptr.Dragging {
		return
	}
	pos := Vec2{X: x, Y: y}
	ptr.Present = true
	ptr.Dragging = true
	ptr.ClickStart = pos
	ptr.PreviousMouse = pos
	ptr.TargetMouse = pos
	s.cursor = CursorGrabbing
}

// HandlePointerMove updates the raw pointer position. Panning, if any,
// happens in the integrator, not here.
func (s *Scene) HandlePointerMove(x, y float64) {
	s.pointer.Present = true
	s.pointer.TargetMouse = Vec2{X: x, Y: y}
}

// HandlePointerUp ends the active gesture at the given position and
// classifies it as a tap, a swipe, or neither.
func (s *Scene) HandlePointerUp(x, y float64) {
	s.pointer.TargetMouse = Vec2{X: x, Y: y}
	s.finishGesture(Vec2{X: x, Y: y})
}

// HandlePointerLeave marks the pointer as absent. A drag in progress is
// classified as if the pointer were released at its last known position.
func (s *Scene) HandlePointerLeave() {
	if s.pointer.Dragging {
		s.finishGesture(s.pointer.TargetMouse)
	}
	s.pointer.Present = false
}

// finishGesture exits the dragging state, restores the cursor, and routes
// taps and swipes to navigation.
func (s *Scene) finishGesture(end Vec2) {
	ptr := &s.pointer
	if !ptr.Dragging {
		return
	}
	ptr.Dragging = false
	s.cursor = CursorGrab

	dx := end.X - ptr.ClickStart.X
	dy := end.Y - ptr.ClickStart.Y
	dist := math.Hypot(dx, dy)
	tap := dist < tapThreshold
	swipe := dist > swipeThreshold

	cam := &s.camera
	switch {
	case cam.IsZoomed && tap:
		tapped := s.cellAt(end)
		if cam.ZoomedCell != nil && *cam.ZoomedCell == tapped {
			s.unzoom()
		} else {
			s.navigateToCell(tapped, false)
		}
	case cam.IsZoomed && swipe:
		if cam.ZoomedCell == nil {
			return
		}
		next := *cam.ZoomedCell
		if math.Abs(dx) >= math.Abs(dy) {
			// Horizontal swipes carry the grid with the finger, so the
			// focused cell moves against the swipe direction.
			next.X -= sign(dx)
		} else {
			next.Y += sign(dy)
		}
		s.navigateToCell(next, false)
	case !cam.IsZoomed && tap:
		s.navigateToCell(s.cellAt(end), true)
	}
}

// HandleWheel pans the grid by a wheel delta. Suppressed while zoomed.
// Deltas are normalized across unit modes before scaling by scroll speed,
// zoom, and aspect ratio.
func (s *Scene) HandleWheel(dx, dy float64, mode WheelMode) {
	if s.camera.IsZoomed {
		return
	}
	switch mode {
	case WheelModeLine:
		dx *= wheelLineScale
		dy *= wheelLineScale
	case WheelModePage:
		dx *= s.resolution.X
		dy *= s.resolution.Y
	}
	pan := panDelta(Vec2{X: dx, Y: dy}, s.resolution, s.camera.Zoom)
	s.camera.TargetOffset.X += pan.X * s.cfg.ScrollSpeed
	s.camera.TargetOffset.Y += pan.Y * s.cfg.ScrollSpeed
}

// cellAt returns the cell under a screen-pixel position with the current
// camera state.
func (s *Scene) cellAt(screen Vec2) CellID {
	world := screenToWorld(screen, s.resolution,
		s.camera.Offset, s.camera.Zoom, s.camera.Distortion)
	return cellForWorld(world, s.cfg.CellSize)
}

// navigateToCell focuses the camera on a cell, exposes its project to the
// host, and requests hover media for it. When isInitialZoom is set this is
// the initial zoom-in: the pre-zoom camera targets are snapshotted
// for the eventual unzoom.
func (s *Scene) navigateToCell(cell CellID, isInitialZoom bool) {
	project := projectForCell(&cell, s.projects)
	if project == nil {
		// Empty project list: nothing to focus or zoom onto.
		return
	}

	s.focusedProject = project
	s.focusCountdown = focusLinkDelay
	s.setActiveMedia(&cell)

	cam := &s.camera
	if isInitialZoom {
		cam.lastOffset = cam.TargetOffset
		cam.lastZoom = cam.TargetZoom
		cam.TargetZoom = zoomedInLevel
		cam.TargetDistortion = 0
		cam.IsZoomed = true
	}
	cam.TargetOffset = cellCenter(cell, s.cfg.CellSize)
	c := cell
	cam.ZoomedCell = &c
}

// unzoom restores the camera to its snapshotted pre-zoom state and clears
// the focused project and hover media.
func (s *Scene) unzoom() {
	cam := &s.camera
	cam.TargetOffset = cam.lastOffset
	cam.TargetZoom = cam.lastZoom
	cam.TargetDistortion = s.baseDistortion
	cam.IsZoomed = false
	cam.ZoomedCell = nil

	s.setActiveMedia(nil)
	s.focusedProject = nil
	s.focusCountdown = 0
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
