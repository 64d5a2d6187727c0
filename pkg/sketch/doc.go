// Package sketch defines the core entity and constraint data model for
// Burin, plus the sketch store that holds them. Entities are tagged
// variants over line, rectangle, circle and arc payloads; constraints are
// tagged variants referencing entities or points structurally. Nothing in
// this package mutates an entity in place: edits replace whole entities
// through a Delta.
package sketch
