// Package viz renders springs in the terminal.
//
// [Live] is a Bubble Tea model that drives its own scheduler from tick
// messages:
//
//	←/→   - Move the trail target
//	j     - Jump the trail to the target
//	g     - Send the group to the next corner
//	p     - Play or pause the keyframes
//	s     - Stop the keyframes
//	t     - Cycle color themes
//	Space - Pause frame delivery
package viz
