package driftgrid

import "testing"

func flatScene(t *testing.T) *Scene {
	t.Helper()
	s := testScene(t, Config{DistortionStrength: -1}, testProjects(9))
	s.SetResolution(800, 600)
	return s
}

func tapAt(s *Scene, x, y float64) {
	s.HandlePointerDown(x, y)
	s.HandlePointerUp(x, y)
}

func TestTapZoomsIn(t *testing.T) {
	s := flatScene(t)

	tapAt(s, 400, 300)

	if !s.IsZoomed() {
		t.Fatal("tap did not zoom")
	}
	cam := s.CameraState()
	if cam.TargetZoom != zoomedInLevel {
		t.Errorf("TargetZoom = %f, want %f", cam.TargetZoom, zoomedInLevel)
	}
	if cam.TargetDistortion != 0 {
		t.Errorf("TargetDistortion = %f, want 0", cam.TargetDistortion)
	}
	if cell := s.ZoomedCell(); cell == nil || *cell != (CellID{X: 0, Y: 0}) {
		t.Errorf("ZoomedCell = %v, want (0,0)", cell)
	}
	if s.FocusedProject() == nil {
		t.Error("no focused project after zoom")
	}
	want := cellCenter(CellID{}, s.cfg.CellSize)
	if cam.TargetOffset != want {
		t.Errorf("TargetOffset = %v, want %v", cam.TargetOffset, want)
	}
}

func TestTapWithSmallJitterStillTaps(t *testing.T) {
	s := flatScene(t)
	s.HandlePointerDown(400, 300)
	s.HandlePointerMove(403, 304) // 5px, under the tap threshold
	s.HandlePointerUp(403, 304)
	if !s.IsZoomed() {
		t.Error("5px drag should classify as a tap")
	}
}

func TestDeadBandNavigatesNowhere(t *testing.T) {
	for _, d := range []float64{10, 30, 50} {
		s := flatScene(t)
		s.HandlePointerDown(400, 300)
		s.HandlePointerUp(400+d, 300)
		if s.IsZoomed() {
			t.Errorf("%gpx release zoomed; thresholds are exclusive", d)
		}
		if s.FocusedProject() != nil {
			t.Errorf("%gpx release focused a project", d)
		}
	}
}

func TestZoomUnzoomRestoresCamera(t *testing.T) {
	s := flatScene(t)
	s.camera.TargetOffset = Vec2{X: 1.25, Y: -0.5}

	tapAt(s, 400, 300) // zoom in
	tapAt(s, 400, 300) // tap the zoomed cell again: zoom out

	if s.IsZoomed() {
		t.Fatal("second tap did not unzoom")
	}
	cam := s.CameraState()
	if cam.TargetOffset != (Vec2{X: 1.25, Y: -0.5}) {
		t.Errorf("TargetOffset = %v, want pre-zoom value", cam.TargetOffset)
	}
	if cam.TargetZoom != 1.0 {
		t.Errorf("TargetZoom = %f, want 1.0", cam.TargetZoom)
	}
	if cam.TargetDistortion != 0 {
		t.Errorf("TargetDistortion = %f, want ambient 0", cam.TargetDistortion)
	}
	if s.FocusedProject() != nil {
		t.Error("focused project survived unzoom")
	}
}

func TestZoomedTapOnOtherCellNavigates(t *testing.T) {
	s := flatScene(t)
	tapAt(s, 400, 300)

	// Screen x=790 is cell (1,0) while the camera still sits at the origin.
	tapAt(s, 790, 300)

	if !s.IsZoomed() {
		t.Fatal("navigating to a sibling cell dropped the zoom")
	}
	if cell := s.ZoomedCell(); cell == nil || *cell != (CellID{X: 1, Y: 0}) {
		t.Errorf("ZoomedCell = %v, want (1,0)", cell)
	}
	cam := s.CameraState()
	if cam.TargetZoom != zoomedInLevel {
		t.Errorf("TargetZoom = %f, want %f", cam.TargetZoom, zoomedInLevel)
	}
}

func TestZoomedSwipeMovesOneCell(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   CellID
	}{
		{"right swipe goes left", 70, 0, CellID{X: -1, Y: 0}},
		{"left swipe goes right", -70, 0, CellID{X: 1, Y: 0}},
		{"down swipe goes down", 0, 70, CellID{X: 0, Y: 1}},
		{"up swipe goes up", 0, -70, CellID{X: 0, Y: -1}},
		{"dominant axis wins", 70, 30, CellID{X: -1, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := flatScene(t)
			tapAt(s, 400, 300)

			s.HandlePointerDown(400, 300)
			s.HandlePointerUp(400+tt.dx, 300+tt.dy)

			if cell := s.ZoomedCell(); cell == nil || *cell != tt.want {
				t.Errorf("ZoomedCell = %v, want %v", cell, tt.want)
			}
			if !s.IsZoomed() {
				t.Error("swipe dropped the zoom")
			}
		})
	}
}

func TestSwipeUnzoomRestoresOriginalCamera(t *testing.T) {
	// The restore snapshot is taken at zoom-in and survives any number of
	// swipes before the unzoom.
	s := flatScene(t)
	s.camera.TargetOffset = Vec2{X: -2, Y: 3}

	tapAt(s, 400, 300)
	s.HandlePointerDown(400, 300)
	s.HandlePointerUp(330, 300) // swipe to (1,0)

	// Camera.Offset has not integrated yet, so a center tap lands on cell
	// (0,0), not the focused (1,0): it navigates rather than unzooms.
	tapAt(s, 400, 300)
	if !s.IsZoomed() {
		t.Fatal("tap on a non-focused cell should navigate, not unzoom")
	}
	if cell := s.ZoomedCell(); cell == nil || *cell != (CellID{X: 0, Y: 0}) {
		t.Fatalf("ZoomedCell = %v, want (0,0)", cell)
	}

	tapAt(s, 400, 300) // now the focused cell: unzoom
	if s.IsZoomed() {
		t.Fatal("tap on the focused cell did not unzoom")
	}
	if got := s.CameraState().TargetOffset; got != (Vec2{X: -2, Y: 3}) {
		t.Errorf("TargetOffset = %v, want snapshot (-2, 3)", got)
	}
}

func TestPointerLeaveFinishesGesture(t *testing.T) {
	s := flatScene(t)
	s.HandlePointerDown(400, 300)
	s.HandlePointerLeave()

	if s.pointer.Dragging {
		t.Error("leave did not end the drag")
	}
	if s.CursorStyle() != CursorGrab {
		t.Errorf("cursor = %v, want grab", s.CursorStyle())
	}
	// Down at 400,300, left at 400,300: zero motion is a tap.
	if !s.IsZoomed() {
		t.Error("leave at the press position should classify as a tap")
	}
}

func TestCursorAffordance(t *testing.T) {
	s := flatScene(t)
	if s.CursorStyle() != CursorGrab {
		t.Errorf("idle cursor = %v, want grab", s.CursorStyle())
	}
	s.HandlePointerDown(100, 100)
	if s.CursorStyle() != CursorGrabbing {
		t.Errorf("dragging cursor = %v, want grabbing", s.CursorStyle())
	}
	s.HandlePointerUp(200, 130)
	if s.CursorStyle() != CursorGrab {
		t.Errorf("released cursor = %v, want grab", s.CursorStyle())
	}
}

func TestWheelPans(t *testing.T) {
	s := flatScene(t)

	s.HandleWheel(0, 3, WheelModeLine)
	after := s.CameraState().TargetOffset
	if after.Y == 0 {
		t.Error("line wheel did not pan")
	}

	// Pixel mode with the equivalent raw delta pans the same amount.
	s2 := flatScene(t)
	s2.HandleWheel(0, 3*wheelLineScale, WheelModePixel)
	if got := s2.CameraState().TargetOffset; !approxEqual(got.Y, after.Y, epsilon) {
		t.Errorf("pixel pan = %f, line pan = %f; modes must normalize", got.Y, after.Y)
	}

	// Page mode scales by the viewport size.
	s3 := flatScene(t)
	s3.HandleWheel(1, 0, WheelModePage)
	want := panDelta(Vec2{X: 800}, Vec2{X: 800, Y: 600}, 1.0)
	if got := s3.CameraState().TargetOffset; !approxEqual(got.X, want.X, epsilon) {
		t.Errorf("page pan = %f, want %f", got.X, want.X)
	}
}

func TestWheelSuppressedWhileZoomed(t *testing.T) {
	s := flatScene(t)
	tapAt(s, 400, 300)

	before := s.CameraState().TargetOffset
	s.HandleWheel(0, 5, WheelModeLine)
	if got := s.CameraState().TargetOffset; got != before {
		t.Errorf("zoomed wheel moved target: %v -> %v", before, got)
	}
}

func TestScrollSpeedScalesWheel(t *testing.T) {
	s := testScene(t, Config{DistortionStrength: -1, ScrollSpeed: 2}, testProjects(9))
	s.SetResolution(800, 600)
	s.HandleWheel(0, 1, WheelModeLine)

	ref := flatScene(t)
	ref.HandleWheel(0, 1, WheelModeLine)

	if got, want := s.CameraState().TargetOffset.Y, 2*ref.CameraState().TargetOffset.Y; !approxEqual(got, want, epsilon) {
		t.Errorf("scrollSpeed 2 pan = %f, want %f", got, want)
	}
}
