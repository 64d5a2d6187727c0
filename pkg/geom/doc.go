// Package geom provides the 2D computational geometry used by the sketch
// core: intersections, circumcenters, angle-range arithmetic and distance
// queries, all in sketch-plane coordinates.
package geom
