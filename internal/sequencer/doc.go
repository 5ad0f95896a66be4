// Package sequencer drives the card-selection choreography as an explicit
// finite-state machine.
//
// A session moves forward through a fixed list of phases:
//
//   - [Idle]: all four cards fanned out, waiting for a card pick
//   - [Recoloring]: the picked card changes color
//   - [SiblingsFading]: the other cards fade away
//   - [Centering]: the picked card moves to the center and fades
//   - [TitleBarRevealing]: the title bar slides in
//   - [MenuRevealing]: the menu appears, waiting for an entry pick
//   - [MenuChoiceConfirming]: the chosen entry is marked and shown in the title
//   - [MenuDismissing]: menu and title bar fade out
//   - [Terminal]: nothing else happens
//
// Timed steps are requested from a [Scheduler]. The host decides how time
// passes: [ManualClock] advances virtual time, the runner package uses real
// timers and the viz package turns timers into Bubble Tea ticks.
//
// # Example
//
//	clk := sequencer.NewManualClock()
//	seq := sequencer.New(clk)
//	seq.SelectCard(2)
//	clk.Advance(4500 * time.Millisecond)
//	seq.Snapshot().MenuVisible() // true
//
// # Thread Safety
//
// A Sequencer is NOT safe for concurrent use. All calls, including timer
// callbacks, must happen on one goroutine.
package sequencer
