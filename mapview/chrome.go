package mapview

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

var (
	locationColor = color.NRGBA{R: 0x1A, G: 0x73, B: 0xE8, A: 0xFF}
	locationHalo  = color.NRGBA{R: 0x1A, G: 0x73, B: 0xE8, A: 0x33}
	compassNorth  = color.NRGBA{R: 0xE5, G: 0x39, B: 0x35, A: 0xFF}
	compassSouth  = color.NRGBA{R: 0x9E, G: 0x9E, B: 0x9E, A: 0xFF}
	scaleColor    = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}
)

const chromeMargin = unit.Dp(12)

func drawUserLocation(gtx layout.Context, p f32.Point) {
	paint.FillShape(gtx.Ops, locationHalo, clip.Ellipse(circleRect(p, float32(gtx.Dp(18)))).Op(gtx.Ops))
	paint.FillShape(gtx.Ops, white, clip.Ellipse(circleRect(p, float32(gtx.Dp(9)))).Op(gtx.Ops))
	paint.FillShape(gtx.Ops, locationColor, clip.Ellipse(circleRect(p, float32(gtx.Dp(7)))).Op(gtx.Ops))
}

// scaleBar picks the longest 1, 2 or 5 times a power of ten meters that
// fits in maxPx, and its length in pixels.
func scaleBar(metersPerPixel float64, maxPx float32) (float64, float32) {
	if metersPerPixel <= 0 || maxPx <= 0 {
		return 0, 0
	}
	maxMeters := metersPerPixel * float64(maxPx)
	exp := math.Pow(10, math.Floor(math.Log10(maxMeters)))
	meters := exp
	for _, m := range []float64{5, 2, 1} {
		if m*exp <= maxMeters {
			meters = m * exp
			break
		}
	}
	return meters, float32(meters / metersPerPixel)
}

func formatDistance(meters float64) string {
	if meters >= 1000 {
		return strconv.FormatFloat(meters/1000, 'f', -1, 64) + " km"
	}
	return strconv.FormatFloat(meters, 'f', -1, 64) + " m"
}

func drawScaleBar(gtx layout.Context, th *material.Theme, metersPerPixel float64) {
	meters, px := scaleBar(metersPerPixel, float32(gtx.Dp(100)))
	if px <= 0 {
		return
	}
	margin := gtx.Dp(chromeMargin)
	thick := max(1, gtx.Dp(2))
	tick := gtx.Dp(6)
	x0 := margin
	y := gtx.Constraints.Max.Y - margin
	x1 := x0 + int(px)

	for _, r := range []image.Rectangle{
		image.Rect(x0, y-thick, x1, y),
		image.Rect(x0, y-tick, x0+thick, y),
		image.Rect(x1-thick, y-tick, x1, y),
	} {
		paint.FillShape(gtx.Ops, scaleColor, clip.Rect(r).Op())
	}

	if th == nil {
		return
	}
	macro := op.Record(gtx.Ops)
	lbl := material.Caption(th, formatDistance(meters))
	lbl.Color = scaleColor
	dims := lbl.Layout(gtx)
	call := macro.Stop()
	defer op.Offset(image.Pt(x0, y-tick-dims.Size.Y)).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}

func drawCompass(gtx layout.Context, heading float64) {
	r := float32(gtx.Dp(16))
	margin := float32(gtx.Dp(chromeMargin))
	c := f32.Pt(float32(gtx.Constraints.Max.X)-margin-r, float32(gtx.Constraints.Max.Y)-margin-r)

	paint.FillShape(gtx.Ops, white, clip.Ellipse(circleRect(c, r)).Op(gtx.Ops))

	defer op.Affine(f32.Affine2D{}.Rotate(c, float32(-heading*math.Pi/180))).Push(gtx.Ops).Pop()
	needle := func(tipY float32, col color.NRGBA) {
		pts := []f32.Point{
			f32.Pt(c.X, tipY),
			f32.Pt(c.X-r*0.3, c.Y),
			f32.Pt(c.X+r*0.3, c.Y),
		}
		paint.FillShape(gtx.Ops, col, clip.Outline{Path: pathOf(gtx.Ops, pts, true)}.Op())
	}
	needle(c.Y-r*0.75, compassNorth)
	needle(c.Y+r*0.75, compassSouth)
}
