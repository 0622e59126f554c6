// Package sim provides the discrete-event simulation engine for a
// food-delivery order-processing center.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - event.go: the event kinds that drive the simulation and their payloads
//   - calendar.go: the time-ordered event calendar with deterministic tie-breaking
//   - simulator.go: the event loop and the per-kind dispatch handlers
//
// # Architecture
//
// Orders arrive from per-restaurant deterministic sources. A newly generated
// order is handed directly to an idle operator when one exists, buffered in a
// fixed-capacity shift-compact buffer otherwise, or rejected when the buffer
// is full. When an operator frees up, the selection dispatcher drains one
// restaurant's buffered backlog at a time (lowest restaurant id first) before
// switching to the next restaurant.
//
// The engine is strictly single-threaded: all state is owned by the Simulator
// and mutated only while processing one popped calendar event. Randomness is
// confined to per-operator exponential service sampling, seeded through the
// partitioned RNG in rng.go so that runs with the same seed produce identical
// event traces.
//
// Presentation (interactive menus, state printing) lives outside this package;
// the Simulator exposes read-only snapshots for it.
package sim
