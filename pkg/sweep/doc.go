// Package sweep tracks which annotation ranges are active as a caller walks
// addresses in ascending order.
//
// A Sweep turns every range into an enter and an exit event and sorts them
// by (address, exits after enters, declaration index). Advance consumes all
// events up to an address exactly once, requesting a boundary and an
// address reset on the Sink for every distinct event address and emitting a
// label for every range entered. Get answers which range wins at the
// current address: the highest declaration index among the active ranges.
// That is not "innermost wins"; callers wanting nesting order must sort the
// ranges so indices grow with depth (sorting by start then size does this
// for properly nested ranges).
package sweep
