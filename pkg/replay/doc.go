// Package replay replays scroll traces against a headless workspace.
//
// Each step of a trace is fed to a real [scrolling.Dispatcher]. After every
// event the replayer checks the window invariants of both axes, and that
// settled renders match the controller state. Steps may carry a CEL
// expectation (see package expr), evaluated against the rendered windows.
//
// Debounced renders are queued rather than timed, so that traces are
// deterministic. They are delivered by `flush` steps.
package replay
