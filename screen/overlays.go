package screen

import (
	"strconv"

	"gioui.org/unit"

	"github.com/olablt/gio-mapdemo/mapview"
	"github.com/olablt/gio-mapdemo/places"
	"github.com/olablt/gio-mapdemo/state"
)

// overlays builds the map's child descriptors: static points first, then
// custom pins in insertion order, the route and the area of interest.
func overlays(st state.State) mapview.Overlays {
	pois := places.PointsOfInterest()
	markers := make([]mapview.Marker, 0, len(pois)+len(st.Pins))
	for _, poi := range pois {
		markers = append(markers, mapview.Marker{
			ID:          "poi-" + strconv.Itoa(poi.ID),
			Coordinate:  poi.Coordinate,
			Color:       pinColor(poi.Color),
			Title:       poi.Title,
			Description: poi.Description,
		})
	}
	for _, pin := range st.Pins {
		markers = append(markers, mapview.Marker{
			ID:          pin.ID,
			Coordinate:  pin.Coordinate,
			Color:       pinColor(pin.Color),
			Title:       pin.Title,
			Description: pin.Description,
		})
	}

	area := places.AreaOfInterest()
	return mapview.Overlays{
		Markers: markers,
		Polylines: []mapview.Polyline{{
			Coordinates: places.Route(),
			Color:       routeColor,
			Width:       routeWidth,
			DashPattern: []unit.Dp{1},
		}},
		Circles: []mapview.Circle{{
			Center:       area.Center,
			RadiusMeters: area.RadiusMeters,
			StrokeColor:  areaStroke,
			FillColor:    areaFill,
			StrokeWidth:  areaStrokeWide,
		}},
	}
}
