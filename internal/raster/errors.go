package raster

import "errors"

var (
	// ErrTooFewVertices is returned for polygons with fewer than three
	// vertices.
	ErrTooFewVertices = errors.New("raster: polygon needs at least 3 vertices")

	// ErrDegenerateEdge is returned in strict mode when two vertices share
	// coordinates.
	ErrDegenerateEdge = errors.New("raster: duplicate vertex")

	// ErrTrapezoidLimit is returned when a sweep needs more open trapezoids
	// than Converter.MaxTrapezoids allows.
	ErrTrapezoidLimit = errors.New("raster: trapezoid limit exceeded")

	// ErrUnbalancedSweep is returned in strict mode when trapezoids are still
	// open after the last vertex, which only happens for polygons that are
	// not simple.
	ErrUnbalancedSweep = errors.New("raster: trapezoids left open after sweep")
)
