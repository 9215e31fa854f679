// Package geo provides the geometric primitives shared by the analytics
// components: great-circle distance, projection of a point onto a finite
// segment, and heading interpolation across the 0/360 wrap boundary.
//
// All functions are pure. Coordinates are decimal degrees, distances are
// kilometers unless a function says otherwise.
package geo
