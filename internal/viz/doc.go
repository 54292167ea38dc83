// Package viz provides the interactive terminal view of a running
// Monte Carlo experiment.
//
// The view is a Bubble Tea program with two panels:
//
//   - [Projector]: an orthographic sphere projection, one glyph per
//     particle, dimmed on the far hemisphere
//   - a stats panel with a scrolling energy graph and move acceptance
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reshuffle particle positions
//	←/→   - Rotate the projection
//	+/-   - Double/halve steps per frame
//	d/D   - Narrow/widen the displacement step
//	Q     - Quit
package viz
