// Package hexgrid generates the coverage map: a hexagonal grid in axial
// coordinates, its planar projection, clustered cell priorities and a spatial
// index for locating the cell under a point.
//
// The grid uses flat-top hexes. A hex at axial (q, r) with circumradius size is
// centred at x = size·3/2·q, y = size·√3·(r + q/2).
package hexgrid
