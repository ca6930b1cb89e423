package driftgrid

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DrawDebug overlays frame timing and camera state in the top-left corner.
// Call it after Draw when diagnosing interaction or spring behavior.
func (s *Scene) DrawDebug(screen *ebiten.Image) {
	cam := s.camera
	msg := fmt.Sprintf(
		"FPS: %.1f  TPS: %.1f\noffset: %.3f, %.3f\nzoom: %.3f -> %.3f\ndistortion: %.3f  progress: %.2f\nzoomed: %v",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		cam.Offset.X, cam.Offset.Y,
		cam.Zoom, cam.TargetZoom,
		cam.Distortion, cam.ZoomProgress,
		cam.IsZoomed,
	)
	if c := s.HoveredCell(); c != nil {
		msg += fmt.Sprintf("\nhover: %d, %d", c.X, c.Y)
	}
	ebitenutil.DebugPrint(screen, msg)
}
