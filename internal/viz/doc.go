// Package viz renders a running simulation in the terminal.
//
// [Model] is a Bubble Tea program that acts as the frame driver: every frame
// it feeds the elapsed wall time into the simulator's Tick and redraws the
// bodies on a braille [Canvas]. [Picker] offers a scenario menu in front of
// it.
//
// # Key Bindings
//
//	Space - Pause / resume (start when stopped)
//	S     - Stop
//	R     - Restart from the initial state
//	< >   - Halve / double simulation speed
//	+ -   - Zoom
//	X Y   - Rotate the view
//	G     - Toggle GIF recording
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
