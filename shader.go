package driftgrid

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// The compositor renders the entire grid in a single fragment pass:
// background, grid lines with hover tint, project images with chromatic
// aberration, the text band, vignette, and the zoom-transition motion blur.
//
// screenToWorld here must stay line-for-line equivalent to the CPU version
// in mapper.go (same distortion law, same order of operations); the CPU
// side hit-tests with it while this side draws with it, and the two must
// agree on cell boundaries.
//
// imageSrc0 = image atlas, imageSrc1 = text atlas, imageSrc2 = media page.
// All three share dimensions so slot coordinates carry across pages. The
// scene draws a full-screen triangle pair with DrawTrianglesShader; all
// sampling goes through the imageSrcN origin/size helpers, never the
// vertex source coordinates.
const compositorShaderSrc = `//kage:unit pixels
package main

const Pi = 3.14159265

var Resolution vec2
var Offset vec2
var Zoom float
var Distortion float
var Time float
var MouseWorld vec2
var ZoomProgress float
var CellSize float
var TexCount float
var AtlasSide float
var ImageScale float
var HoverEnabled float
var OptimizeMobile float
var ActiveCell vec2
var MediaAlpha float
var BackgroundColor vec4
var BorderColor vec4
var HoverColor vec4
var TextColor vec4

func screenToWorld(p vec2) vec2 {
	ndc := vec2(p.x/Resolution.x*2.0-1.0, -(p.y/Resolution.y*2.0-1.0))
	r2 := dot(ndc, ndc)
	ndc *= 1.0 - Distortion*0.08*r2
	ndc.x *= Resolution.x / Resolution.y
	return ndc*Zoom + Offset
}

// slotUV maps an intra-cell uv into a slot of an atlas page. Atlas rows
// grow downward while world Y grows upward, so uv.y flips. The clamp keeps
// bilinear filtering from bleeding neighboring slots.
func slotUV(index float, uv vec2) vec2 {
	col := mod(index, AtlasSide)
	row := floor(index / AtlasSide)
	flipped := clamp(vec2(uv.x, 1.0-uv.y), vec2(0.002), vec2(0.998))
	return (vec2(col, row) + flipped) / AtlasSide
}

func imageAt(index float, uv vec2) vec4 {
	return imageSrc0At(imageSrc0Origin() + slotUV(index, uv)*imageSrc0Size())
}

func labelAt(index float, uv vec2) vec4 {
	return imageSrc1At(imageSrc1Origin() + slotUV(index, uv)*imageSrc1Size())
}

func mediaAt(index float, uv vec2) vec4 {
	return imageSrc2At(imageSrc2Origin() + slotUV(index, uv)*imageSrc2Size())
}

func composite(p vec2) vec4 {
	w := screenToWorld(p)

	// Radial ripple around the pointer.
	if OptimizeMobile < 0.5 {
		d := distance(w, MouseWorld)
		if d > 0.0001 {
			falloff := 1.0 - smoothstep(0.0, CellSize*1.5, d)
			w += (w - MouseWorld) / d * sin(d*12.0-Time*3.0) * 0.002 * falloff
		}
	}

	cell := floor(w / CellSize)
	uv := fract(w / CellSize)

	// Hover glow: squared smoothstep falloff from the cell center to the
	// pointer. MouseWorld sits at a far sentinel when no pointer is present.
	hover := 0.0
	if HoverEnabled > 0.5 && MouseWorld.x > -999.0 {
		center := (cell + vec2(0.5)) * CellSize
		t := 1.0 - smoothstep(0.0, CellSize*1.5, distance(center, MouseWorld))
		hover = t * t
	}

	col := BackgroundColor.rgb
	col = mix(col, HoverColor.rgb, hover*HoverColor.a)

	// Grid lines: a thin band at each cell edge.
	lw := 0.005
	bx := smoothstep(0.0, lw, uv.x) * smoothstep(0.0, lw, 1.0-uv.x)
	by := smoothstep(0.0, lw, uv.y) * smoothstep(0.0, lw, 1.0-uv.y)
	col = mix(BorderColor.rgb, col, bx*by)

	if TexCount > 0.5 {
		index := mod(cell.x+cell.y*3.0, TexCount)

		// Project image, centered, occupying ImageScale of the cell.
		local := (uv-vec2(0.5))/ImageScale + vec2(0.5)
		if local.x >= 0.0 && local.x <= 1.0 && local.y >= 0.0 && local.y <= 1.0 {
			var img vec4
			active := cell.x == ActiveCell.x && cell.y == ActiveCell.y
			if active && MediaAlpha > 0.0 {
				img = mix(imageAt(index, local), mediaAt(index, local), MediaAlpha)
			} else {
				shift := 0.0
				if OptimizeMobile < 0.5 {
					shift = 0.004 * sin(ZoomProgress*Pi)
				}
				r := imageAt(index, vec2(local.x+shift, local.y))
				g := imageAt(index, local)
				b := imageAt(index, vec2(local.x-shift, local.y))
				img = vec4(r.r, g.g, b.b, g.a)
			}
			col = mix(col, img.rgb, img.a)
		}

		// Title and year in the bottom band, brightened on hover.
		if uv.y < 0.25 {
			txt := labelAt(index, uv)
			col = mix(col, TextColor.rgb*(1.0+hover*0.6), txt.a*TextColor.a)
		}
	}

	// Vignette.
	ndc := vec2(p.x/Resolution.x*2.0-1.0, p.y/Resolution.y*2.0-1.0)
	col *= 1.0 - smoothstep(1.2, 1.8, length(ndc))

	return vec4(col, 1.0)
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	p := dst.xy
	eff := sin(ZoomProgress * Pi)
	if OptimizeMobile < 0.5 && eff > 0.01 {
		// Supersample along a vector radiating from screen center.
		dir := (p - Resolution*0.5) * 0.02 * eff
		sum := vec4(0.0)
		for i := 0; i < 6; i++ {
			sum += composite(p - dir*(float(i)/5.0))
		}
		return sum / 6.0
	}
	return composite(p)
}
`

// newCompositorShader compiles the scene compositor. Failure means the
// graphics runtime rejected the program; setup aborts cleanly and the
// component stays visually inert rather than crashing the host.
func newCompositorShader() (*ebiten.Shader, error) {
	shader, err := ebiten.NewShader([]byte(compositorShaderSrc))
	if err != nil {
		return nil, fmt.Errorf("driftgrid: compile compositor shader: %w", err)
	}
	return shader, nil
}
