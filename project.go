package driftgrid

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Project is one media record shown in the grid. Projects are immutable once
// handed to a Scene; to change the set, replace the whole list with
// Scene.SetProjects.
type Project struct {
	// Title is drawn in the text band at the bottom of the cell.
	Title string
	// Year is drawn next to the title.
	Year int
	// Href is the external link for the project. The core never opens it;
	// it drives the host's "open link" affordance for the focused project.
	Href string
	// Image is the project's still art. Nil produces a generated placeholder.
	Image image.Image
	// MediaRef identifies the hover preview media, resolved through the
	// scene's MediaOpener. Empty means the cell has no preview.
	MediaRef string
}

// MediaSource is a playable hover preview. Implementations own their frame
// production (decoding, animation); the scene only reads the current frame
// and drives play/pause.
type MediaSource interface {
	// Frame returns the current frame, or nil if none is ready yet.
	Frame() *ebiten.Image
	Play()
	Pause()
}

// MediaOpener resolves a project's media reference into a playable source.
// Open may block; it is always called off the frame loop.
type MediaOpener interface {
	Open(ref string) (MediaSource, error)
}

// tilePeriod is the horizontal period of the repeating tiling pattern. The
// flat index advances by this much per grid row, so the visual repeat is
// three cells wide regardless of viewport width. Deliberate; changing it
// changes which project lands in which cell everywhere.
const tilePeriod = 3

// wrapIndex maps unbounded cell coordinates onto [0, n) by Euclidean modulo,
// so negative cells wrap to the end of the project list.
func wrapIndex(x, y, n int) int {
	i := (x + y*tilePeriod) % n
	if i < 0 {
		i += n
	}
	return i
}

// projectForCell returns the project tiled at the given cell, or nil when the
// cell is nil or the list is empty. Callers must treat nil as "no media for
// this cell".
func projectForCell(cell *CellID, projects []Project) *Project {
	if cell == nil || len(projects) == 0 {
		return nil
	}
	return &projects[wrapIndex(cell.X, cell.Y, len(projects))]
}
