package driftgrid

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// AtlasSet holds the GPU-resident per-project sub-image grids the shader
// samples from. Images and Text pack one slot per project in row-major
// order; Media is a scratch page of identical dimensions that receives the
// active preview's current frame, so one slot rectangle addresses all
// three pages. Slot i belongs to projects[i]; the shader derives i from
// the cell id with the same wrap formula as projectForCell, so the two stay
// index-aligned by construction.
type AtlasSet struct {
	Images *ebiten.Image
	Text   *ebiten.Image
	Media  *ebiten.Image

	// Count is the number of occupied slots. Zero disables the image and
	// text layers entirely; the grid renders background and lines only.
	Count int
	// Side is the page's slot grid dimension, ceil(sqrt(Count)).
	Side int
	// CellPx is the pixel edge length of one slot.
	CellPx int
}

// Release frees the GPU pages. The set must not be used afterwards.
func (a *AtlasSet) Release() {
	if a == nil {
		return
	}
	for _, img := range []*ebiten.Image{a.Images, a.Text, a.Media} {
		if img != nil {
			img.Deallocate()
		}
	}
	a.Images, a.Text, a.Media = nil, nil, nil
}

// slotRect returns the pixel rectangle of slot index within a page.
func (a *AtlasSet) slotRect(index int) image.Rectangle {
	col := index % a.Side
	row := index / a.Side
	x := col * a.CellPx
	y := row * a.CellPx
	return image.Rect(x, y, x+a.CellPx, y+a.CellPx)
}

// defaultAtlasCellPx is the slot resolution used when the builder doesn't
// override it. 256px reads fine down to the zoomed-in level.
const defaultAtlasCellPx = 256

// AtlasBuilder is the default asset provider: it bakes a project list into
// an AtlasSet. Hosts with their own baking pipeline can skip it and hand a
// ready AtlasSet to the scene instead.
type AtlasBuilder struct {
	// FontData is raw TTF/OTF data for titles. Nil selects Go Regular.
	FontData []byte
	// FontSize is the title size in pixels; the year renders at 70%.
	FontSize float64
	// CellPx overrides the slot resolution.
	CellPx int
}

// placeholderShades are the fill colors substituted for projects without
// art (or whose art failed to load upstream). Muted so a missing image
// reads as an empty frame rather than an error.
var placeholderShades = [...]Color{
	{0.16, 0.18, 0.24, 1},
	{0.22, 0.16, 0.22, 1},
	{0.15, 0.22, 0.20, 1},
	{0.24, 0.20, 0.15, 1},
	{0.17, 0.17, 0.26, 1},
	{0.23, 0.17, 0.16, 1},
}

// Build bakes the image and text pages for the given projects. An empty
// list yields a valid set with Count 0 and 1x1 pages. The only error case
// is unparseable font data; individual projects never fail the build.
func (b *AtlasBuilder) Build(projects []Project) (*AtlasSet, error) {
	cellPx := b.CellPx
	if cellPx <= 0 {
		cellPx = defaultAtlasCellPx
	}
	fontSize := b.FontSize
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}

	count := len(projects)
	side := 1
	if count > 0 {
		side = int(math.Ceil(math.Sqrt(float64(count))))
	}

	set := &AtlasSet{
		Count:  count,
		Side:   side,
		CellPx: cellPx,
	}
	if count == 0 {
		set.Images = ebiten.NewImage(1, 1)
		set.Text = ebiten.NewImage(1, 1)
		set.Media = ebiten.NewImage(1, 1)
		return set, nil
	}

	fontData := b.FontData
	if fontData == nil {
		fontData = goregular.TTF
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("driftgrid: parse atlas font: %w", err)
	}
	titleFace := &text.GoTextFace{Source: source, Size: fontSize}
	yearFace := &text.GoTextFace{Source: source, Size: fontSize * 0.7}

	pageSize := side * cellPx
	set.Images = ebiten.NewImage(pageSize, pageSize)
	set.Text = ebiten.NewImage(pageSize, pageSize)
	set.Media = ebiten.NewImage(pageSize, pageSize)

	for i := range projects {
		rect := set.slotRect(i)
		b.bakeImage(set.Images, rect, &projects[i], i)
		bakeLabel(set.Text, rect, &projects[i], titleFace, yearFace)
	}
	return set, nil
}

// bakeImage draws a project's art into its slot, cover-cropped, or a
// placeholder shade when there is no art.
func (b *AtlasBuilder) bakeImage(page *ebiten.Image, rect image.Rectangle, p *Project, index int) {
	slot := page.SubImage(rect).(*ebiten.Image)

	if p.Image == nil {
		debugf("driftgrid: project %q has no image, using placeholder", p.Title)
		slot.Fill(placeholderShades[index%len(placeholderShades)].toRGBA())
		return
	}

	src := ebiten.NewImageFromImage(p.Image)
	defer src.Deallocate()

	drawCover(slot, src, rect)
}

// drawCover draws src into the destination rectangle scaled to cover it,
// cropping the overflow (the SubImage clips).
func drawCover(dst, src *ebiten.Image, rect image.Rectangle) {
	sb := src.Bounds()
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	if sw == 0 || sh == 0 {
		return
	}
	dw, dh := float64(rect.Dx()), float64(rect.Dy())
	scale := math.Max(dw/sw, dh/sh)

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(
		float64(rect.Min.X)+(dw-sw*scale)/2,
		float64(rect.Min.Y)+(dh-sh*scale)/2,
	)
	dst.DrawImage(src, op)
}

// bakeLabel renders "Title  Year" into the bottom band of a slot in white;
// the shader tints it with the configured text color and hover brightening.
func bakeLabel(page *ebiten.Image, rect image.Rectangle, p *Project, titleFace, yearFace *text.GoTextFace) {
	slot := page.SubImage(rect).(*ebiten.Image)
	cellPx := float64(rect.Dx())

	margin := cellPx * 0.08
	// The shader confines text to the bottom quarter of the cell; the label
	// sits inside that band.
	bandTop := float64(rect.Min.Y) + cellPx*0.8

	titleOp := &text.DrawOptions{}
	titleOp.GeoM.Translate(float64(rect.Min.X)+margin, bandTop)
	text.Draw(slot, p.Title, titleFace, titleOp)

	if p.Year == 0 {
		return
	}
	year := fmt.Sprintf("%d", p.Year)
	yw, _ := text.Measure(year, yearFace, 0)
	yearOp := &text.DrawOptions{}
	yearOp.GeoM.Translate(float64(rect.Max.X)-margin-yw, bandTop+titleFace.Size*0.2)
	text.Draw(slot, year, yearFace, yearOp)
}
