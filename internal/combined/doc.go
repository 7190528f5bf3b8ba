// Package combined holds benchmarks that run the queue, pool, cancel and tick
// packages together, the way a control loop or job runner would.
//
// Isolated micro-benchmarks miss the cost of components interacting (lock
// handoff between producer and consumer, wakeups, future settlement), so
// these numbers are the ones to compare against channels and the sharded
// lock-free ring.
package combined
