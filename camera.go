package driftgrid

// Physics and smoothing constants. These are tuned for feel and are part of
// the interaction contract: the spring is not frame-rate normalized, and the
// damping multiplies after the force is added. Changing any of them (or the
// order of operations in step) changes how every pan and zoom feels.
const (
	springStiffness = 0.05
	springDamping   = 0.75
	smoothingFactor = 0.1

	// zoomedInLevel is the camera zoom while focused on a single cell.
	zoomedInLevel = 0.3

	// timeStep is the fixed per-frame advance of the shader time uniform.
	// Deliberately not wall-clock delta time; ripple speed tracks frame
	// rate the same way the original interaction does.
	timeStep = 0.016
)

// mouseGone is the sentinel world coordinate pushed to the shader while no
// pointer is present. Far enough out that hover falloff and ripple are zero
// everywhere on screen.
const mouseGone = -1000.0

// Camera is the physical state of the viewport: pan offset with velocity,
// zoom, distortion, and the zoom-transition bookkeeping. Created once per
// Scene and mutated only by the integrator and the interaction handlers.
type Camera struct {
	Offset         Vec2
	TargetOffset   Vec2
	OffsetVelocity Vec2

	Zoom       float64
	TargetZoom float64

	Distortion       float64
	TargetDistortion float64

	// ZoomProgress approaches 1 while zoomed and 0 while not; it drives the
	// transitional shader effects (motion blur, chromatic aberration).
	ZoomProgress float64

	IsZoomed   bool
	ZoomedCell *CellID

	// Snapshot taken at zoom-in, restored at zoom-out. Written exactly once
	// per zoom-in transition and consumed exactly once per zoom-out; only
	// meaningful while IsZoomed is true.
	lastOffset Vec2
	lastZoom   float64
}

// newCamera returns a camera at the origin with the given ambient zoom and
// distortion as both current and target values.
func newCamera(zoom, distortion float64) Camera {
	return Camera{
		Zoom:             zoom,
		TargetZoom:       zoom,
		Distortion:       distortion,
		TargetDistortion: distortion,
	}
}

// Pointer is the smoothed pointer state. Screen-pixel coordinates.
type Pointer struct {
	// Mouse trails TargetMouse by the smoothing lerp; the shader's ripple
	// and hover tint follow Mouse while hit-testing uses TargetMouse.
	Mouse       Vec2
	TargetMouse Vec2
	// PreviousMouse is the position consumed by the last drag-pan step.
	PreviousMouse Vec2
	// ClickStart anchors tap-vs-swipe classification for the active gesture.
	ClickStart Vec2

	// Present is false after the pointer leaves the surface.
	Present bool
	// Dragging is true only between a pointer-down and the matching
	// pointer-up or pointer-leave.
	Dragging bool
}

// step advances the camera and pointer by one frame. Called exactly once per
// Scene.Update. Spring and lerp updates run unconditionally; hover
// recomputation and drag panning are gated on the zoom and drag states.
func (s *Scene) step() {
	cam := &s.camera
	ptr := &s.pointer

	// Spring-damped pan. Damping applies after the force is added.
	fx := (cam.TargetOffset.X - cam.Offset.X) * springStiffness
	fy := (cam.TargetOffset.Y - cam.Offset.Y) * springStiffness
	cam.OffsetVelocity.X = (cam.OffsetVelocity.X + fx) * springDamping
	cam.OffsetVelocity.Y = (cam.OffsetVelocity.Y + fy) * springDamping
	cam.Offset.X += cam.OffsetVelocity.X
	cam.Offset.Y += cam.OffsetVelocity.Y

	// Exponential approach for everything else.
	ptr.Mouse.X = lerp(ptr.Mouse.X, ptr.TargetMouse.X, smoothingFactor)
	ptr.Mouse.Y = lerp(ptr.Mouse.Y, ptr.TargetMouse.Y, smoothingFactor)
	cam.Zoom = lerp(cam.Zoom, cam.TargetZoom, smoothingFactor)
	cam.Distortion = lerp(cam.Distortion, cam.TargetDistortion, smoothingFactor)

	zpTarget := 0.0
	if cam.IsZoomed {
		zpTarget = 1.0
	}
	cam.ZoomProgress = lerp(cam.ZoomProgress, zpTarget, smoothingFactor)

	if !cam.IsZoomed {
		s.updateHover()
	}

	if ptr.Dragging && !cam.IsZoomed {
		delta := Vec2{
			X: ptr.TargetMouse.X - ptr.PreviousMouse.X,
			Y: ptr.TargetMouse.Y - ptr.PreviousMouse.Y,
		}
		pan := panDelta(delta, s.resolution, cam.Zoom)
		cam.TargetOffset.X -= pan.X
		cam.TargetOffset.Y -= pan.Y
		ptr.PreviousMouse = ptr.TargetMouse
	}

	s.time += timeStep
}

// updateHover recomputes the hovered cell from the raw target mouse position
// and notifies the hover media controller on change. Only called while not
// zoomed.
func (s *Scene) updateHover() {
	if !s.pointer.Present {
		if s.hoveredCell != nil {
			s.hoveredCell = nil
			s.setActiveMedia(nil)
		}
		return
	}

	world := screenToWorld(s.pointer.TargetMouse, s.resolution,
		s.camera.Offset, s.camera.Zoom, s.camera.Distortion)
	cell := cellForWorld(world, s.cfg.CellSize)

	if s.hoveredCell != nil && *s.hoveredCell == cell {
		return
	}
	s.hoveredCell = &cell
	s.setActiveMedia(&cell)
}

// setActiveMedia forwards a hover change to the media controller, honoring
// the DisableHover setting.
func (s *Scene) setActiveMedia(cell *CellID) {
	if s.hover == nil {
		return
	}
	if s.cfg.DisableHover {
		cell = nil
	}
	s.hover.setActiveCell(cell, s.projects)
}

// mouseWorld returns the smoothed mouse position in world coordinates, or
// the far-away sentinel when no pointer is present.
func (s *Scene) mouseWorld() Vec2 {
	if !s.pointer.Present {
		return Vec2{X: mouseGone, Y: mouseGone}
	}
	return screenToWorld(s.pointer.Mouse, s.resolution,
		s.camera.Offset, s.camera.Zoom, s.camera.Distortion)
}
