package screen

import (
	"image/color"

	"gioui.org/unit"

	"github.com/olablt/gio-mapdemo/mapview"
	"github.com/olablt/gio-mapdemo/state"
)

var (
	buttonColor   = color.NRGBA{R: 0x00, G: 0x7A, B: 0xFF, A: 0xFF}
	removeColor   = color.NRGBA{R: 0xFF, G: 0x95, B: 0x00, A: 0xFF}
	clearColor    = color.NRGBA{R: 0xFF, G: 0x3B, B: 0x30, A: 0xFF}
	zoomColor     = color.NRGBA{R: 0x34, G: 0xC7, B: 0x59, A: 0xFF}
	panelColor    = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xF2}
	titleColor    = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}
	subtitleColor = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xFF}
	featureColor  = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF}
	countColor    = color.NRGBA{R: 0x00, G: 0x7A, B: 0xFF, A: 0xFF}

	routeColor = color.NRGBA{R: 0xFF, G: 0x6B, B: 0x6B, A: 0xFF}
	areaStroke = color.NRGBA{R: 0x00, G: 0x7A, B: 0xFF, A: 0x80}
	areaFill   = color.NRGBA{R: 0x00, G: 0x7A, B: 0xFF, A: 0x1A}
)

const (
	routeWidth     = unit.Dp(4)
	areaStrokeWide = unit.Dp(2)
)

var pinColors = map[state.PinColor]color.NRGBA{
	state.Red:    {R: 0xFF, G: 0x00, B: 0x00, A: 0xFF},
	state.Blue:   {R: 0x00, G: 0x00, B: 0xFF, A: 0xFF},
	state.Green:  {R: 0x00, G: 0x80, B: 0x00, A: 0xFF},
	state.Orange: {R: 0xFF, G: 0xA5, B: 0x00, A: 0xFF},
}

// pinColor maps a named pin color to its RGB value, defaulting to red.
func pinColor(c state.PinColor) color.NRGBA {
	if col, ok := pinColors[c]; ok {
		return col
	}
	return pinColors[state.Red]
}

func mapStyle(t state.MapType) mapview.Style {
	switch t {
	case state.Satellite:
		return mapview.StyleSatellite
	case state.Hybrid:
		return mapview.StyleHybrid
	default:
		return mapview.StyleStandard
	}
}
