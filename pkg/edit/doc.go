// Package edit implements the topological edit operations: trim, extend,
// offset, mirror, fillet and chamfer. Every operation is a pure function
// over an entity snapshot and returns a replace-delta (entities removed,
// entities added), a request for a missing numeric parameter, a request
// for more selection, or a rejection. The caller commits the delta.
package edit
