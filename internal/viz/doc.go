// Package viz renders a card-selection session in the terminal.
//
// The package implements the rendering side of a session using the Bubble Tea
// framework:
//
//   - [Model]: Bubble Tea model wiring key presses to the sequencer and
//     sequencer timers to tea.Tick commands
//   - [Canvas]: Braille-based pixel canvas the card artwork is drawn on
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	1-4        - Pick a card directly
//	Arrows/hjkl - Move the card cursor, or the menu cursor once the menu is up
//	Enter/Space - Pick the card or menu entry under the cursor
//	T          - Cycle color themes
//	?          - Show help overlay
//	Q          - Quit
//
// The model never decides when a phase ends; it only draws the latest
// snapshot and eases fades over the time spent in the current phase.
package viz
