// Package geo implements the rectangular proximity window shared by
// duplicate-candidate selection and hospital lookup. It is a per-axis
// bounding box over raw coordinate deltas, not a geodesic radius: at the
// deployment latitude the default window spans roughly 1.1 km either way.
package geo

import (
	"math"

	"github.com/nyangmap/nyangmap/internal/model"
)

const (
	// DefaultLatRange is the default half-height of the window in degrees.
	DefaultLatRange = 0.01
	// DefaultLngRange is the default half-width, widened slightly to keep
	// the box near-square at ~37°N.
	DefaultLngRange = 0.012
)

// Box is a proximity window around a center point. Both ranges are strict
// bounds: a point exactly on the edge is outside.
type Box struct {
	LatRange float64
	LngRange float64
}

// DefaultBox returns the window used across the application.
func DefaultBox() Box {
	return Box{LatRange: DefaultLatRange, LngRange: DefaultLngRange}
}

// Contains reports whether p lies inside the window centered on c.
func (b Box) Contains(c, p model.Location) bool {
	return math.Abs(p.Lat-c.Lat) < b.LatRange && math.Abs(p.Lng-c.Lng) < b.LngRange
}
