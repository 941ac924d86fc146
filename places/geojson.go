package places

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/olablt/gio-mapdemo/geo"
	"github.com/olablt/gio-mapdemo/state"
)

const ringSegments = 64

// FeatureCollection describes every overlay on the screen: the static
// points, the given custom pins, the route and the area of interest.
func FeatureCollection(pins []state.CustomPin) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, poi := range pointsOfInterest {
		f := geojson.NewFeature(poi.Coordinate.Point())
		f.ID = poi.ID
		f.Properties["kind"] = "poi"
		f.Properties["title"] = poi.Title
		f.Properties["description"] = poi.Description
		f.Properties["color"] = string(poi.Color)
		fc.Append(f)
	}

	for _, pin := range pins {
		f := geojson.NewFeature(pin.Coordinate.Point())
		f.ID = pin.ID
		f.Properties["kind"] = "custom"
		f.Properties["title"] = pin.Title
		f.Properties["description"] = pin.Description
		f.Properties["color"] = string(pin.Color)
		fc.Append(f)
	}

	line := make(orb.LineString, 0, len(route))
	for _, c := range route {
		line = append(line, c.Point())
	}
	rf := geojson.NewFeature(line)
	rf.Properties["kind"] = "route"
	rf.Properties["length_m"] = RouteLength()
	fc.Append(rf)

	area := AreaOfInterest()
	ring := make(orb.Ring, 0, ringSegments+1)
	for _, c := range geo.CircleRing(area.Center, area.RadiusMeters, ringSegments) {
		ring = append(ring, c.Point())
	}
	af := geojson.NewFeature(orb.Polygon{ring})
	af.Properties["kind"] = "area"
	af.Properties["radius_m"] = area.RadiusMeters
	fc.Append(af)

	return fc
}
