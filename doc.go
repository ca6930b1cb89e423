// Package driftgrid renders an infinite, pannable grid of project tiles
// for [Ebitengine].
//
// Driftgrid lays a finite project list out on an endlessly tiling plane,
// draws it in a single fragment shader pass with barrel distortion,
// hover glow, and zoom motion blur, and handles the whole interaction
// model: drag to pan, tap to zoom into a cell, swipe between neighbors
// while zoomed, and wheel scrolling.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and
// game loop for you:
//
//	scene, err := driftgrid.NewScene(driftgrid.Config{}, projects)
//	if err != nil {
//		log.Fatal(err)
//	}
//	driftgrid.Run(scene, driftgrid.RunConfig{
//		Title: "My Grid", Width: 1280, Height: 720,
//	})
//
// For full control, implement [ebiten.Game] yourself, feed pointer and
// wheel events to [Scene.HandlePointerDown], [Scene.HandlePointerMove],
// [Scene.HandlePointerUp], and [Scene.HandleWheel], and call
// [Scene.Update] and [Scene.Draw] directly. [Game] shows the reference
// wiring.
//
// # Projects
//
// Each [Project] carries a still image, a title, a year, an optional
// link, and an optional media reference. Images are baked into a texture
// atlas at setup; a [MediaOpener] supplies animated previews on hover.
//
//	projects := []driftgrid.Project{
//		{Title: "Aurora", Year: 2024, Image: img, MediaRef: "aurora.webm"},
//	}
//
// The grid repeats forever in every direction. A cell at grid
// coordinates (x, y) shows project (x + y*3) mod len(projects), so
// horizontal neighbors advance by one project and vertical neighbors by
// three.
//
// # Key features
//
// Driftgrid includes spring-damped camera panning, lens distortion that
// relaxes while zoomed, per-cell hover glow and ripple, chromatic
// aberration and motion blur during zoom transitions, hover media with
// fade-in (via [gween]), synthetic input injection for tests, and a
// debug overlay.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package driftgrid
