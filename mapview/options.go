package mapview

import (
	"image"
	"image/color"

	"gioui.org/unit"

	"github.com/olablt/gio-mapdemo/geo"
	"github.com/olablt/gio-mapdemo/tiles"
)

// Style selects the base tile layers.
type Style int

const (
	StyleStandard Style = iota
	StyleSatellite
	StyleHybrid
)

// TileSource returns the best available image for a tile without blocking.
type TileSource interface {
	Tile(t tiles.Tile) (image.Image, bool)
}

// Layers are the tile sources the view composes per Style. Labels is drawn
// over Satellite in hybrid mode. Nil sources are skipped.
type Layers struct {
	Standard  TileSource
	Satellite TileSource
	Labels    TileSource
	Traffic   TileSource
}

// Options is the declarative configuration applied on every frame.
// InitialRegion is only read on the first frame.
type Options struct {
	InitialRegion geo.Region
	Style         Style

	ShowUserLocation bool
	UserLocation     *geo.Coordinate
	ShowTraffic      bool
	// ShowBuildings and ShowIndoors have no raster data source and are
	// accepted for API parity only.
	ShowBuildings bool
	ShowIndoors   bool
	ShowCompass   bool
	ShowScale     bool
	// RotateEnabled and PitchEnabled are accepted, but this view always
	// keeps heading and pitch at zero.
	RotateEnabled bool
	PitchEnabled  bool

	// OnTap is called with the coordinate of a tap that did not hit a marker.
	OnTap func(geo.Coordinate)
}

// Marker is a pin with an optional callout.
type Marker struct {
	ID          string
	Coordinate  geo.Coordinate
	Color       color.NRGBA
	Title       string
	Description string
}

// Polyline is a stroked path. DashPattern alternates dash and gap lengths;
// an odd-length pattern is repeated, an empty one draws a solid line.
type Polyline struct {
	Coordinates []geo.Coordinate
	Color       color.NRGBA
	Width       unit.Dp
	DashPattern []unit.Dp
}

// Circle is a filled geodesic circle.
type Circle struct {
	Center       geo.Coordinate
	RadiusMeters float64
	StrokeColor  color.NRGBA
	FillColor    color.NRGBA
	StrokeWidth  unit.Dp
}

// Overlays are drawn over the tiles: circles, then polylines, then markers.
type Overlays struct {
	Markers   []Marker
	Polylines []Polyline
	Circles   []Circle
}
