// Package ui contains the Bubble Tea program that draws the cascading menu.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses are translated into cascade keys (keys.go). Mouse motion and
//     clicks are hit-tested against the current layout (layout.go) and passed
//     to the cascade as pointer events on a level and item.
//   - Transition timers requested by the cascade become tea.Tick commands
//     (scheduler.go). Their messages run the timer callback inside Update, so
//     the cascade is never touched from another goroutine.
//
// State ownership:
//   - The cascade.Cascade owns which submenus are open and where focus is.
//     The model only keeps screen size, status text and the program output.
//   - Layout is recomputed from the cascade on demand. The model is the
//     cascade's Measurer, so the travel triangle always uses what is drawn.
//   - Activated actions run through the internal/ui/command bus; their
//     menu.ActionResult ends the program or reports an error.
//
// Backend interactions:
//   - When a menu definition file is watched, backend.Watcher streams
//     reloaded trees and Update hands them to Cascade.Reload.
package ui
