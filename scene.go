package driftgrid

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Intro reveal: on scene start the distortion eases down from a boosted
// level to the configured ambient strength.
const (
	introDuration = 1.2
	introBoost    = 2.0
)

// Scene owns the complete state of one media grid: camera and pointer
// physics, interaction state, hover media, atlases, and the compositor
// shader. Create it once with NewScene and keep it for the component's
// lifetime; it is not safe for concurrent use and expects to be driven from
// a single frame loop (Update then Draw, once per frame).
type Scene struct {
	cfg    Config
	colors palette

	projects []Project

	camera  Camera
	pointer Pointer

	hover  *hoverMedia
	atlas  *AtlasSet
	shader *ebiten.Shader

	resolution Vec2
	time       float64

	hoveredCell    *CellID
	focusedProject *Project
	focusCountdown float64

	// OnFocusLink, when set, is called once per navigation, shortly after
	// the focused project changes, so the host can move keyboard focus to
	// the project's link element. The delay outlasts the zoom transition.
	OnFocusLink func(*Project)

	cursor CursorStyle

	// baseDistortion is the ambient distortion restored on unzoom.
	baseDistortion float64
	intro          *gween.Tween

	// Persistent uniform storage. Slices are stored in the map once and
	// point into the backing arrays below so pushing uniforms allocates
	// no slices; scalar float32 boxing per frame is unavoidable with
	// Ebitengine's uniform API.
	uniforms                            map[string]any
	resF32, offF32, mouseF32, activeF32 [2]float32
	bgF32, borderF32, hoverF32, textF32 [4]float32

	injectQueue  []syntheticPointerEvent
	scriptRunner *ScriptRunner

	// ScreenshotDir is where queued screenshots are written. Empty selects
	// "screenshots" in the working directory.
	ScreenshotDir   string
	screenshotQueue []string

	// quad is the reused full-screen vertex set for the compositor draw.
	quad [4]ebiten.Vertex
}

// NewScene builds a scene for the given projects. It compiles the
// compositor shader and bakes the atlases up front; on failure no partial
// state is constructed and the error describes what was unavailable.
func NewScene(cfg Config, projects []Project) (*Scene, error) {
	cfg = cfg.withDefaults()

	shader, err := newCompositorShader()
	if err != nil {
		return nil, err
	}

	builder := &AtlasBuilder{FontData: cfg.FontData, FontSize: cfg.FontSize}
	atlas, err := builder.Build(projects)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		cfg:            cfg,
		colors:         resolvePalette(cfg),
		projects:       projects,
		hover:          newHoverMedia(nil),
		atlas:          atlas,
		shader:         shader,
		resolution:     Vec2{X: 1280, Y: 720},
		cursor:         CursorGrab,
		baseDistortion: cfg.DistortionStrength,
	}
	s.camera = newCamera(1.0, cfg.DistortionStrength)

	if cfg.DistortionStrength > 0 {
		start := cfg.DistortionStrength * introBoost
		if start > 2 {
			start = 2
		}
		s.camera.Distortion = start
		s.camera.TargetDistortion = start
		s.intro = gween.New(float32(start), float32(cfg.DistortionStrength),
			introDuration, ease.OutCubic)
	}

	s.initUniforms()
	return s, nil
}

// SetMediaOpener installs the resolver for project media references.
// Without one, hover previews stay inactive.
func (s *Scene) SetMediaOpener(opener MediaOpener) {
	s.hover.opener = opener
}

// SetProjects replaces the project list wholesale and rebuilds the atlases.
// The previous pages are released only after the new build succeeds.
func (s *Scene) SetProjects(projects []Project) error {
	builder := &AtlasBuilder{FontData: s.cfg.FontData, FontSize: s.cfg.FontSize}
	atlas, err := builder.Build(projects)
	if err != nil {
		return err
	}

	old := s.atlas
	s.atlas = atlas
	s.projects = projects
	old.Release()

	// Transient cell state may point at records that no longer exist.
	s.hoveredCell = nil
	s.focusedProject = nil
	s.focusCountdown = 0
	s.setActiveMedia(nil)
	return nil
}

// SetResolution tells the scene the render surface size in pixels.
// Embedding hosts must call this when the surface resizes; the Game adapter
// does it from Layout.
func (s *Scene) SetResolution(w, h float64) {
	if w > 0 && h > 0 {
		s.resolution = Vec2{X: w, Y: h}
	}
}

// FocusedProject returns the project focused by the last navigation, or nil.
func (s *Scene) FocusedProject() *Project {
	return s.focusedProject
}

// IsZoomed reports whether the camera is focused on a single cell.
func (s *Scene) IsZoomed() bool {
	return s.camera.IsZoomed
}

// CursorStyle returns the pointer affordance the host should display.
func (s *Scene) CursorStyle() CursorStyle {
	return s.cursor
}

// HoveredCell returns a copy of the currently hovered cell, or nil.
func (s *Scene) HoveredCell() *CellID {
	if s.hoveredCell == nil {
		return nil
	}
	c := *s.hoveredCell
	return &c
}

// ZoomedCell returns a copy of the cell the camera is focused on, or nil.
func (s *Scene) ZoomedCell() *CellID {
	if s.camera.ZoomedCell == nil {
		return nil
	}
	c := *s.camera.ZoomedCell
	return &c
}

// CameraState returns a snapshot of the camera for inspection. Mutating the
// returned value has no effect on the scene.
func (s *Scene) CameraState() Camera {
	return s.camera
}

// Update advances the scene by one frame: injected input, completed media
// loads, the intro reveal, the integrator, and the deferred focus callback,
// in that order. Input-derived target mutations always happen before the
// integration step that consumes them.
func (s *Scene) Update() {
	dt := 1.0 / float64(ebiten.TPS())

	if s.scriptRunner != nil {
		s.scriptRunner.step(s)
	}
	s.processInjectedInput()
	s.hover.drain(dt)

	if s.intro != nil {
		v, done := s.intro.Update(float32(dt))
		if !s.camera.IsZoomed {
			s.camera.TargetDistortion = float64(v)
		}
		if done {
			s.intro = nil
		}
	}

	s.step()

	if s.focusCountdown > 0 {
		s.focusCountdown -= dt
		if s.focusCountdown <= 0 {
			s.focusCountdown = 0
			if s.OnFocusLink != nil && s.focusedProject != nil {
				s.OnFocusLink(s.focusedProject)
			}
		}
	}
}

// Draw composites the grid onto the target image. Safe to call before setup
// finished or with no projects; degenerate states render the background
// only.
func (s *Scene) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	if s.shader == nil || s.atlas == nil {
		screen.Fill(s.colors.background.toRGBA())
		return
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return
	}
	s.resolution = Vec2{X: float64(w), Y: float64(h)}

	s.blitActiveMedia()
	s.pushUniforms()

	// A full-screen triangle pair. DrawRectShader would demand the atlas
	// pages match the rect size, which they never do; triangles with a
	// pixel-unit shader carry no such constraint, and the shader samples
	// the pages through their origin/size helpers rather than the vertex
	// source coordinates.
	x0, y0 := float32(bounds.Min.X), float32(bounds.Min.Y)
	x1, y1 := x0+float32(w), y0+float32(h)
	s.quad[0] = ebiten.Vertex{DstX: x0, DstY: y0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1}
	s.quad[1] = ebiten.Vertex{DstX: x1, DstY: y0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1}
	s.quad[2] = ebiten.Vertex{DstX: x0, DstY: y1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1}
	s.quad[3] = ebiten.Vertex{DstX: x1, DstY: y1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1}

	op := &ebiten.DrawTrianglesShaderOptions{}
	op.Images[0] = s.atlas.Images
	op.Images[1] = s.atlas.Text
	op.Images[2] = s.atlas.Media
	op.Uniforms = s.uniforms
	screen.DrawTrianglesShader(s.quad[:], quadIndices[:], s.shader, op)

	s.flushScreenshots(screen)
}

// quadIndices splits the screen quad into two triangles.
var quadIndices = [6]uint16{0, 1, 2, 1, 3, 2}

// blitActiveMedia copies the active preview's current frame into the media
// page slot the shader samples for the active cell. Stale pixels in other
// slots are harmless: the shader only reads the media page for the active
// cell while its fade alpha is nonzero.
func (s *Scene) blitActiveMedia() {
	active := s.hover.current()
	if active == nil || s.atlas.Count == 0 {
		return
	}
	frame := active.source.Frame()
	if frame == nil {
		return
	}
	rect := s.atlas.slotRect(wrapIndex(active.cell.X, active.cell.Y, s.atlas.Count))
	slot := s.atlas.Media.SubImage(rect).(*ebiten.Image)
	slot.Clear()
	drawCover(slot, frame, rect)
}

// initUniforms stores the persistent slices and the colors that never
// change after construction.
func (s *Scene) initUniforms() {
	s.uniforms = make(map[string]any, 20)
	s.uniforms["Resolution"] = s.resF32[:]
	s.uniforms["Offset"] = s.offF32[:]
	s.uniforms["MouseWorld"] = s.mouseF32[:]
	s.uniforms["ActiveCell"] = s.activeF32[:]
	s.uniforms["BackgroundColor"] = s.bgF32[:]
	s.uniforms["BorderColor"] = s.borderF32[:]
	s.uniforms["HoverColor"] = s.hoverF32[:]
	s.uniforms["TextColor"] = s.textF32[:]

	storeColor(&s.bgF32, s.colors.background)
	storeColor(&s.borderF32, s.colors.border)
	storeColor(&s.hoverF32, s.colors.hover)
	storeColor(&s.textF32, s.colors.text)

	s.uniforms["CellSize"] = float32(s.cfg.CellSize)
	s.uniforms["ImageScale"] = float32(s.cfg.ImageScale)
	s.uniforms["HoverEnabled"] = boolUniform(!s.cfg.DisableHover)
	s.uniforms["OptimizeMobile"] = boolUniform(s.cfg.OptimizeMobile)
}

// pushUniforms writes the per-frame camera and pointer snapshot for the
// shader. The shader never sees intermediate state: this runs after the
// integrator, once per frame.
func (s *Scene) pushUniforms() {
	cam := &s.camera

	s.resF32[0] = float32(s.resolution.X)
	s.resF32[1] = float32(s.resolution.Y)
	s.offF32[0] = float32(cam.Offset.X)
	s.offF32[1] = float32(cam.Offset.Y)

	mouse := s.mouseWorld()
	s.mouseF32[0] = float32(mouse.X)
	s.mouseF32[1] = float32(mouse.Y)

	u := s.uniforms
	u["Zoom"] = float32(cam.Zoom)
	u["Distortion"] = float32(cam.Distortion)
	u["Time"] = float32(s.time)
	u["ZoomProgress"] = float32(cam.ZoomProgress)
	u["TexCount"] = float32(s.atlas.Count)
	u["AtlasSide"] = float32(s.atlas.Side)

	alpha := 0.0
	if active := s.hover.current(); active != nil {
		alpha = active.alpha
		s.activeF32[0] = float32(active.cell.X)
		s.activeF32[1] = float32(active.cell.Y)
	}
	u["MediaAlpha"] = float32(alpha)
}

func storeColor(dst *[4]float32, c Color) {
	dst[0] = float32(c.R)
	dst[1] = float32(c.G)
	dst[2] = float32(c.B)
	dst[3] = float32(c.A)
}

func boolUniform(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
