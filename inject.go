package driftgrid

// syntheticPointerEvent represents a single injected pointer event.
// Screen coordinates are used (matching what a harness sees in
// screenshots) and routed through the same handlers as real mouse input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	phase            injectPhase
}

type injectPhase int

const (
	injectDown injectPhase = iota
	injectMove
	injectUp
)

// InjectPress queues a pointer press event at the given screen coordinates.
// The event is consumed on the next frame's Update call.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
		phase:   injectDown,
	})
}

// InjectMove queues a pointer move event at the given screen coordinates.
// Use this between InjectPress and InjectRelease to simulate a drag, or
// on its own to simulate hover.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
		phase:   injectMove,
	})
}

// InjectRelease queues a pointer release event at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: false,
		phase:   injectUp,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		s.InjectMove(x, y)
	}
	s.InjectRelease(toX, toY)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the pointer handlers. Returns true if an event was consumed.
// The Game adapter suspends device polling while the queue is non-empty.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.phase {
	case injectDown:
		s.HandlePointerDown(evt.screenX, evt.screenY)
	case injectMove:
		s.HandlePointerMove(evt.screenX, evt.screenY)
	case injectUp:
		s.HandlePointerUp(evt.screenX, evt.screenY)
	}
	return true
}
