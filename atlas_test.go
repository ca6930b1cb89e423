package driftgrid

import (
	"image"
	"image/color"
	"testing"
)

func buildAtlas(t *testing.T, projects []Project) *AtlasSet {
	t.Helper()
	b := &AtlasBuilder{}
	set, err := b.Build(projects)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(set.Release)
	return set
}

func TestAtlasSideIsSquare(t *testing.T) {
	tests := []struct {
		count, side int
	}{
		{1, 1}, {2, 2}, {4, 2}, {5, 3}, {9, 3}, {10, 4}, {16, 4}, {17, 5},
	}
	for _, tt := range tests {
		set := buildAtlas(t, testProjects(tt.count))
		if set.Side != tt.side {
			t.Errorf("count %d: Side = %d, want %d", tt.count, set.Side, tt.side)
		}
		if set.Count != tt.count {
			t.Errorf("count %d: Count = %d", tt.count, set.Count)
		}
	}
}

func TestAtlasSlotRect(t *testing.T) {
	set := buildAtlas(t, testProjects(5)) // side 3

	tests := []struct {
		index    int
		col, row int
	}{
		{0, 0, 0}, {1, 1, 0}, {2, 2, 0}, {3, 0, 1}, {4, 1, 1},
	}
	for _, tt := range tests {
		got := set.slotRect(tt.index)
		want := image.Rect(
			tt.col*set.CellPx, tt.row*set.CellPx,
			(tt.col+1)*set.CellPx, (tt.row+1)*set.CellPx,
		)
		if got != want {
			t.Errorf("slotRect(%d) = %v, want %v", tt.index, got, want)
		}
	}
}

func TestAtlasPagesShareDimensions(t *testing.T) {
	// One slot rectangle must address all three pages interchangeably.
	set := buildAtlas(t, testProjects(7))
	ib, tb, mb := set.Images.Bounds(), set.Text.Bounds(), set.Media.Bounds()
	if ib != tb || ib != mb {
		t.Errorf("page bounds differ: images %v, text %v, media %v", ib, tb, mb)
	}
	want := set.Side * set.CellPx
	if ib.Dx() != want || ib.Dy() != want {
		t.Errorf("page size = %dx%d, want %dx%d", ib.Dx(), ib.Dy(), want, want)
	}
}

func TestAtlasEmptyList(t *testing.T) {
	set := buildAtlas(t, nil)
	if set.Count != 0 {
		t.Errorf("Count = %d, want 0", set.Count)
	}
	if set.Images == nil || set.Text == nil || set.Media == nil {
		t.Error("empty set must still carry valid pages")
	}
}

func TestAtlasAcceptsProjectsWithoutArt(t *testing.T) {
	projects := []Project{
		{Title: "no art", Year: 2020},
		{Title: "with art", Year: 2021, Image: testArt(40, 30)},
	}
	b := &AtlasBuilder{}
	set, err := b.Build(projects)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	set.Release()
}

func TestAtlasRejectsBadFont(t *testing.T) {
	b := &AtlasBuilder{FontData: []byte("this is not a font")}
	if _, err := b.Build(testProjects(1)); err == nil {
		t.Error("garbage font data accepted")
	}
}

func TestAtlasCellPxOverride(t *testing.T) {
	b := &AtlasBuilder{CellPx: 64}
	set, err := b.Build(testProjects(2))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer set.Release()
	if set.CellPx != 64 {
		t.Errorf("CellPx = %d, want 64", set.CellPx)
	}
	if got := set.Images.Bounds().Dx(); got != 128 {
		t.Errorf("page width = %d, want 128", got)
	}
}

func testArt(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 8), B: 90, A: 255})
		}
	}
	return img
}
