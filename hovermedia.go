package driftgrid

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// mediaFadeDuration is the fade-in time for a newly activated preview,
// in seconds.
const mediaFadeDuration = 0.25

// mediaResult is one completed load, delivered from a loader goroutine to
// the frame loop. The nonce identifies the request generation it belongs to.
type mediaResult struct {
	nonce  uint64
	cell   CellID
	source MediaSource
	err    error
}

// activeMedia is the preview currently playing, with its fade-in state.
type activeMedia struct {
	cell   CellID
	source MediaSource
	fade   *gween.Tween
	alpha  float64
}

// hoverMedia decides which preview media is active for the currently
// relevant cell. Loads run on goroutines; activation happens only on the
// frame loop (drain), so the nonce check and the active pointer are never
// touched concurrently.
type hoverMedia struct {
	opener MediaOpener
	// nonce is the current request generation. Any completion carrying an
	// older nonce arrived too late and must not take visible effect.
	nonce   uint64
	active  *activeMedia
	results chan mediaResult
}

func newHoverMedia(opener MediaOpener) *hoverMedia {
	return &hoverMedia{
		opener:  opener,
		results: make(chan mediaResult, 16),
	}
}

// setActiveCell supersedes any in-flight request, pauses and drops the
// current preview, and kicks off a load for the given cell's media. A nil
// cell, a media-less project, or a missing opener just leaves no preview
// active.
func (h *hoverMedia) setActiveCell(cell *CellID, projects []Project) {
	h.nonce++
	nonce := h.nonce

	if h.active != nil {
		h.active.source.Pause()
		h.active = nil
	}
	if cell == nil {
		return
	}
	project := projectForCell(cell, projects)
	if project == nil || project.MediaRef == "" || h.opener == nil {
		return
	}

	target := *cell
	ref := project.MediaRef
	go func() {
		source, err := h.opener.Open(ref)
		// Never block the loader goroutine: if the frame loop stopped
		// draining, the result is dropped and the source stays inactive.
		select {
		case h.results <- mediaResult{nonce: nonce, cell: target, source: source, err: err}:
		default:
			if source != nil {
				source.Pause()
			}
		}
	}()
}

// drain consumes completed loads and advances the active preview's fade-in.
// Called once per frame from Scene.Update.
func (h *hoverMedia) drain(dt float64) {
loop:
	for {
		select {
		case r := <-h.results:
			h.deliver(r)
		default:
			break loop
		}
	}

	if h.active != nil && h.active.fade != nil {
		v, done := h.active.fade.Update(float32(dt))
		h.active.alpha = float64(v)
		if done {
			h.active.fade = nil
		}
	}
}

// deliver applies one completed load. Stale results (superseded nonce) are
// interrupted operations, not failures: they are discarded silently. A
// genuine load failure leaves the cell media-less and is only surfaced as a
// debug diagnostic.
func (h *hoverMedia) deliver(r mediaResult) {
	if r.nonce != h.nonce {
		if r.source != nil {
			r.source.Pause()
		}
		return
	}
	if r.err != nil {
		debugf("driftgrid: hover media load failed: %v", r.err)
		return
	}
	if r.source == nil {
		return
	}

	r.source.Play()
	h.active = &activeMedia{
		cell:   r.cell,
		source: r.source,
		fade:   gween.New(0, 1, mediaFadeDuration, ease.OutQuad),
	}
}

// current returns the active preview, or nil when none is playing.
func (h *hoverMedia) current() *activeMedia {
	return h.active
}
