package driftgrid

import "github.com/hajimehoshi/ebiten/v2"

// Game adapts a Scene to the ebiten.Game interface, polling real mouse,
// touch, and wheel input and forwarding it through the scene's raw event
// handlers. Hosts embedding the grid in a larger game can skip Game and
// call the handlers themselves.
type Game struct {
	scene *Scene

	wasDown   bool
	hadCursor bool
	touchID   ebiten.TouchID
	touching  bool
	touchIDs  []ebiten.TouchID
}

// NewGame wraps a scene for use with ebiten.RunGame.
func NewGame(scene *Scene) *Game {
	return &Game{scene: scene}
}

// Update polls input, forwards it to the scene, and advances one frame.
func (g *Game) Update() error {
	s := g.scene

	// Pending synthetic events own the pointer; real devices are not
	// polled until the inject queue drains, so scripted gestures never
	// interleave with live input. Otherwise, while a finger owns the
	// pointer the mouse is ignored.
	if len(s.injectQueue) == 0 && !g.pollTouch(s) {
		g.pollMouse(s)
	}

	wx, wy := ebiten.Wheel()
	if wx != 0 || wy != 0 {
		// Ebitengine reports wheel offsets in notch-sized units; DOM sign
		// convention is inverted (positive deltaY scrolls down).
		s.HandleWheel(-wx, -wy, WheelModeLine)
	}

	s.Update()

	if s.CursorStyle() == CursorGrabbing {
		ebiten.SetCursorShape(ebiten.CursorShapeMove)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
	return nil
}

func (g *Game) pollMouse(s *Scene) {
	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	inside := fx >= 0 && fy >= 0 && fx < s.resolution.X && fy < s.resolution.Y
	if !inside && !down {
		if g.hadCursor {
			s.HandlePointerLeave()
			g.hadCursor = false
		}
		g.wasDown = false
		return
	}
	g.hadCursor = true

	switch {
	case down && !g.wasDown:
		s.HandlePointerDown(fx, fy)
	case !down && g.wasDown:
		s.HandlePointerUp(fx, fy)
	default:
		s.HandlePointerMove(fx, fy)
	}
	g.wasDown = down
}

// pollTouch treats the first active touch as the pointer. Returns true
// while a touch interaction is in progress.
func (g *Game) pollTouch(s *Scene) bool {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])

	if g.touching {
		for _, id := range g.touchIDs {
			if id == g.touchID {
				x, y := ebiten.TouchPosition(id)
				s.HandlePointerMove(float64(x), float64(y))
				return true
			}
		}
		// Finger lifted: release at the last known position.
		s.HandlePointerUp(s.pointer.TargetMouse.X, s.pointer.TargetMouse.Y)
		s.HandlePointerLeave()
		g.touching = false
		return false
	}

	if len(g.touchIDs) > 0 {
		g.touchID = g.touchIDs[0]
		g.touching = true
		x, y := ebiten.TouchPosition(g.touchID)
		s.HandlePointerDown(float64(x), float64(y))
		return true
	}
	return false
}

// Draw renders the scene to the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout reports the logical screen size and keeps the scene's resolution
// current.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.SetResolution(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// Run opens a window and drives the scene with a zero-boilerplate game
// loop. Blocks until the window closes.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(NewGame(scene))
}
