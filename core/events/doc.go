// Package events defines the simulation events emitted on the event bus.
//
// Available event types:
//   - RunStarted: a simulation request passed parameter validation
//   - RunCompleted: a run produced a result
//   - RunFailed: a run aborted with a validation or infrastructure error
package events
