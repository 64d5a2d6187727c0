// Package constrain converts a constraint tool plus an ordered entity
// selection into a new constraint, a request for a numeric value with a
// computed default, a request for more selection, or a rejection. It never
// mutates the sketch; the caller commits the returned constraint.
package constrain
