// Package scenario contains the workloads run by the ctrlpool command.
//
// Each Run function drives one component end to end and returns a report:
//   - RunQueue: many producers, one consumer, over an AtomicQueue
//   - RunBuffer: a fixed-rate producer loop feeding a slow consumer through
//     an AtomicBuffer, which drops the oldest samples
//   - RunPool: a batch of jobs through a Pool, optionally terminated early
//
// The reports carry enough counts to check the delivery guarantees of each
// component, and the command prints them.
package scenario
