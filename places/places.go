// Package places holds the fixed data the demo screen shows around
// Yatay 240, Buenos Aires. Accessors return copies.
package places

import (
	"github.com/olablt/gio-mapdemo/geo"
	"github.com/olablt/gio-mapdemo/state"
)

// Home is the address the map opens on.
var Home = geo.Coordinate{Latitude: -34.6037, Longitude: -58.4194}

const (
	HomeLabel        = "Yatay 240, Buenos Aires"
	AreaRadiusMeters = 200
)

// InitialRegion is the viewport on startup.
func InitialRegion() geo.Region {
	return geo.Region{Center: Home, LatitudeDelta: 0.01, LongitudeDelta: 0.01}
}

// PointOfInterest is a static pin.
type PointOfInterest struct {
	ID          int
	Coordinate  geo.Coordinate
	Title       string
	Description string
	Color       state.PinColor
}

var pointsOfInterest = [...]PointOfInterest{
	{
		ID:          1,
		Coordinate:  Home,
		Title:       "Yatay 240",
		Description: "Main location",
		Color:       state.Red,
	},
	{
		ID:          2,
		Coordinate:  geo.Coordinate{Latitude: -34.6050, Longitude: -58.4180},
		Title:       "Café",
		Description: "Great place for coffee",
		Color:       state.Blue,
	},
	{
		ID:          3,
		Coordinate:  geo.Coordinate{Latitude: -34.6020, Longitude: -58.4210},
		Title:       "Park",
		Description: "Beautiful green space",
		Color:       state.Green,
	},
}

func PointsOfInterest() []PointOfInterest {
	out := make([]PointOfInterest, len(pointsOfInterest))
	copy(out, pointsOfInterest[:])
	return out
}

var route = [...]geo.Coordinate{
	{Latitude: -34.6037, Longitude: -58.4194},
	{Latitude: -34.6045, Longitude: -58.4185},
	{Latitude: -34.6050, Longitude: -58.4180},
}

// Route is the hardcoded path drawn between home and the café.
func Route() []geo.Coordinate {
	out := make([]geo.Coordinate, len(route))
	copy(out, route[:])
	return out
}

// RouteLength is the geodesic length of Route in meters.
func RouteLength() float64 {
	return geo.PathLength(route[:])
}

// Area is a filled circle overlay.
type Area struct {
	Center       geo.Coordinate
	RadiusMeters float64
}

func AreaOfInterest() Area {
	return Area{Center: Home, RadiusMeters: AreaRadiusMeters}
}
