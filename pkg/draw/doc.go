// Package draw implements the click-driven creation state machine. Each
// call consumes the active tool, the new click point and the points
// accumulated so far in the session, and returns either an advanced point
// list, a freshly created entity, or nothing. The accumulator belongs to
// the caller; the package holds no session state.
package draw
