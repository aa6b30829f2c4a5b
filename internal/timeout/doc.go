// Package timeout brings timed-out words back into rotation.
//
// Sweeper performs one pass: it reads the store clock once, selects every
// word in timeout whose window has passed (or that lost its deadline), and
// reactivates them in bounded batches. Scheduler runs the sweeper once at
// start and then on a fixed interval with gocron, never overlapping two passes.
package timeout
