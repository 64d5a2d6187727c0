// Package solver lowers sketch entities and constraints into the
// primitive format expected by an external numeric geometric constraint
// solver, invokes it, and reads solved coordinates back into entities. It
// also derives a degrees-of-freedom count and a constraint state, with an
// approximate fallback when no solver module is loaded.
package solver
