// Package viz provides the terminal front end for bounce runs.
//
// The package implements a live view using the Bubble Tea framework:
//
//   - [Model]: steps a simulator on every tick and draws it
//   - [Canvas]: Braille-based pixel canvas that also acts as a frame renderer
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to the spawned bodies
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	Q     - Quit after the current frame
//
// # Recording
//
// Recording renders every tick at world resolution and hands the frames to
// the [RecordFunc] installed with [Model.WithRecorder] when recording stops.
package viz
