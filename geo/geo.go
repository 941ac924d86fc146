// Package geo holds the coordinate value types shared by the map surface,
// the state store and the fixed place data.
package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// Coordinate represents a geographical point
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.5f, %.5f)", c.Latitude, c.Longitude)
}

// Point returns c as an orb point (X is longitude).
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// FromPoint converts an orb point back into a Coordinate.
func FromPoint(p orb.Point) Coordinate {
	return Coordinate{Latitude: p.Lat(), Longitude: p.Lon()}
}

// Region is a viewport: a center plus the span it shows in degrees.
type Region struct {
	Center         Coordinate `json:"center"`
	LatitudeDelta  float64    `json:"latitudeDelta"`
	LongitudeDelta float64    `json:"longitudeDelta"`
}

// Camera is the map surface's view: center, fractional zoom level, heading
// and pitch in degrees.
type Camera struct {
	Center  Coordinate `json:"center"`
	Zoom    float64    `json:"zoom"`
	Heading float64    `json:"heading"`
	Pitch   float64    `json:"pitch"`
}

// Distance returns the great-circle distance in meters.
func Distance(a, b Coordinate) float64 {
	return orbgeo.Distance(a.Point(), b.Point())
}

// PathLength returns the geodesic length of the path in meters.
func PathLength(path []Coordinate) float64 {
	ls := make(orb.LineString, 0, len(path))
	for _, c := range path {
		ls = append(ls, c.Point())
	}
	return orbgeo.Length(ls)
}

// CircleRing approximates a circle of radius meters around center with a
// closed ring of segments+1 coordinates.
func CircleRing(center Coordinate, radius float64, segments int) []Coordinate {
	if segments < 3 {
		segments = 3
	}
	ring := make([]Coordinate, 0, segments+1)
	for i := 0; i < segments; i++ {
		bearing := 360 * float64(i) / float64(segments)
		p := orbgeo.PointAtBearingAndDistance(center.Point(), bearing, radius)
		ring = append(ring, FromPoint(p))
	}
	return append(ring, ring[0])
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b Coordinate, t float64) Coordinate {
	return Coordinate{
		Latitude:  a.Latitude + (b.Latitude-a.Latitude)*t,
		Longitude: a.Longitude + (b.Longitude-a.Longitude)*t,
	}
}

// ParseCoordinate parses "lat,lng".
func ParseCoordinate(s string) (Coordinate, error) {
	var c Coordinate
	if _, err := fmt.Sscanf(s, "%g,%g", &c.Latitude, &c.Longitude); err != nil {
		return Coordinate{}, fmt.Errorf("parse coordinate %q: %w", s, err)
	}
	if math.Abs(c.Latitude) > 90 || math.Abs(c.Longitude) > 180 {
		return Coordinate{}, fmt.Errorf("coordinate %q out of range", s)
	}
	return c, nil
}
