package mapview

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/olablt/gio-mapdemo/geo"
)

const (
	markerRadius = unit.Dp(9)
	calloutWidth = unit.Dp(150)
	ringSegments = 64
)

var (
	backgroundColor = color.NRGBA{R: 0xE5, G: 0xE3, B: 0xDF, A: 0xFF}
	white           = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	calloutColor    = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xF2}
	textColor       = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}
)

func pathOf(ops *op.Ops, pts []f32.Point, closed bool) clip.PathSpec {
	var p clip.Path
	p.Begin(ops)
	p.MoveTo(pts[0])
	for _, pt := range pts[1:] {
		p.LineTo(pt)
	}
	if closed {
		p.Close()
	}
	return p.End()
}

func circleRect(c f32.Point, r float32) image.Rectangle {
	return image.Rect(int(c.X-r), int(c.Y-r), int(c.X+r), int(c.Y+r))
}

func drawCircle(gtx layout.Context, vp Viewport, c Circle) {
	ring := geo.CircleRing(c.Center, c.RadiusMeters, ringSegments)
	pts := make([]f32.Point, len(ring))
	for i, coord := range ring {
		pts[i] = vp.ToScreen(coord)
	}
	paint.FillShape(gtx.Ops, c.FillColor, clip.Outline{Path: pathOf(gtx.Ops, pts, true)}.Op())
	if c.StrokeWidth > 0 {
		paint.FillShape(gtx.Ops, c.StrokeColor, clip.Stroke{
			Path:  pathOf(gtx.Ops, pts, true),
			Width: float32(gtx.Dp(c.StrokeWidth)),
		}.Op())
	}
}

func drawPolyline(gtx layout.Context, vp Viewport, pl Polyline) {
	if len(pl.Coordinates) < 2 {
		return
	}
	pts := make([]f32.Point, len(pl.Coordinates))
	for i, coord := range pl.Coordinates {
		pts[i] = vp.ToScreen(coord)
	}
	pattern := make([]float32, len(pl.DashPattern))
	for i, d := range pl.DashPattern {
		pattern[i] = gtx.Metric.PxPerDp * float32(d)
	}
	width := gtx.Metric.PxPerDp * float32(pl.Width)
	for _, run := range dashRuns(pts, pattern) {
		paint.FillShape(gtx.Ops, pl.Color, clip.Stroke{
			Path:  pathOf(gtx.Ops, run, false),
			Width: width,
		}.Op())
	}
}

// markerHead returns the center and radius of a pin's head for a pin whose
// tip is at p.
func markerHead(gtx layout.Context, p f32.Point) (f32.Point, float32) {
	r := float32(gtx.Dp(markerRadius))
	return f32.Pt(p.X, p.Y-2.2*r), r
}

func drawMarker(gtx layout.Context, p f32.Point, col color.NRGBA) {
	head, r := markerHead(gtx, p)

	var tail clip.Path
	tail.Begin(gtx.Ops)
	tail.MoveTo(f32.Pt(head.X-r*0.7, head.Y+r*0.7))
	tail.LineTo(p)
	tail.LineTo(f32.Pt(head.X+r*0.7, head.Y+r*0.7))
	tail.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: tail.End()}.Op())

	paint.FillShape(gtx.Ops, col, clip.Ellipse(circleRect(head, r)).Op(gtx.Ops))
	paint.FillShape(gtx.Ops, white, clip.Ellipse(circleRect(head, r*0.35)).Op(gtx.Ops))
}

// hitMarker returns the topmost marker whose head is under p.
func hitMarker(gtx layout.Context, vp Viewport, markers []Marker, p f32.Point) (string, bool) {
	for i := len(markers) - 1; i >= 0; i-- {
		head, r := markerHead(gtx, vp.ToScreen(markers[i].Coordinate))
		d := p.Sub(head)
		if d.X*d.X+d.Y*d.Y <= (1.6*r)*(1.6*r) {
			return markers[i].ID, true
		}
	}
	return "", false
}

func drawCallout(gtx layout.Context, th *material.Theme, p f32.Point, m Marker) {
	head, r := markerHead(gtx, p)

	macro := op.Record(gtx.Ops)
	cgtx := gtx
	w := gtx.Dp(calloutWidth)
	cgtx.Constraints = layout.Constraints{Min: image.Pt(w, 0), Max: image.Pt(w, gtx.Constraints.Max.Y)}
	dims := layout.Background{}.Layout(cgtx,
		func(gtx layout.Context) layout.Dimensions {
			defer clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, gtx.Dp(6)).Push(gtx.Ops).Pop()
			paint.Fill(gtx.Ops, calloutColor)
			return layout.Dimensions{Size: gtx.Constraints.Min}
		},
		func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(5)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						title := material.Body2(th, m.Title)
						title.Font.Weight = font.Bold
						title.Color = textColor
						return title.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Height: unit.Dp(3)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						desc := material.Caption(th, m.Description)
						desc.Color = textColor
						return desc.Layout(gtx)
					}),
				)
			})
		},
	)
	call := macro.Stop()

	offset := image.Pt(int(head.X)-dims.Size.X/2, int(head.Y-r)-gtx.Dp(6)-dims.Size.Y)
	defer op.Offset(offset).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}
