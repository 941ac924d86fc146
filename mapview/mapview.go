// Package mapview is a slippy-map widget for Gio. It draws tile layers and
// overlays, handles pan, scroll-zoom and tap gestures, and accepts camera
// commands from other goroutines.
package mapview

import (
	"image"
	"math"
	"sync/atomic"
	"time"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/olablt/gio-mapdemo/geo"
	"github.com/olablt/gio-mapdemo/logging"
	"github.com/olablt/gio-mapdemo/tiles"
)

const touchSlop = unit.Dp(8)

type MapView struct {
	Layers  Layers
	Theme   *material.Theme
	MinZoom int
	MaxZoom int

	log     logging.Logger
	refresh chan<- struct{}
	cmds    chan command
	mounted atomic.Bool
	opCache *tiles.Cache[image.Image, paint.ImageOp]
	style   Style

	camera geo.Camera
	anim   *animation
	size   image.Point

	pressed  bool
	moved    bool
	pressPos f32.Point
	lastPos  f32.Point

	markers  []Marker
	selected string
}

// New returns a view that signals refresh whenever it needs another frame
// outside of input handling.
func New(layers Layers, refresh chan<- struct{}, log logging.Logger) *MapView {
	if log == nil {
		log = logging.Noop()
	}
	return &MapView{
		Layers:  layers,
		MinZoom: 2,
		MaxZoom: 19,
		log:     log.With(logging.String("component", "mapview")),
		refresh: refresh,
		cmds:    make(chan command, 32),
		opCache: tiles.NewCache[image.Image, paint.ImageOp](512),
	}
}

// Selected returns the ID of the marker whose callout is open.
func (mv *MapView) Selected() string { return mv.selected }

func (mv *MapView) Layout(gtx layout.Context, opts Options, ov Overlays) layout.Dimensions {
	tag := mv

	mv.size = gtx.Constraints.Max
	if !mv.mounted.Load() {
		if mv.camera == (geo.Camera{}) {
			mv.camera = mv.clampCamera(RegionCamera(opts.InitialRegion, mv.size))
			mv.log.Debug("mounted", logging.String("center", mv.camera.Center.String()), logging.Float("zoom", mv.camera.Zoom))
		}
		mv.mounted.Store(true)
	}
	mv.markers = ov.Markers

	// Image ops of the previous style's layers are not drawn again.
	if opts.Style != mv.style {
		mv.opCache.Clear()
		mv.style = opts.Style
	}

	mv.drainCommands(gtx.Now)

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  tag,
			Kinds:   pointer.Scroll | pointer.Drag | pointer.Press | pointer.Release | pointer.Cancel,
			ScrollY: pointer.ScrollRange{Min: -10, Max: 10},
		})
		if !ok {
			break
		}
		if x, ok := ev.(pointer.Event); ok {
			mv.handlePointer(gtx, x, opts)
		}
	}

	if mv.anim != nil {
		cam, done := mv.anim.at(gtx.Now)
		mv.camera = cam
		if done {
			mv.anim = nil
		} else {
			gtx.Execute(op.InvalidateCmd{})
		}
	}

	vp := mv.viewport()

	// Confine the area of interest to a gtx Max
	defer clip.Rect{Max: mv.size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, tag)
	paint.Fill(gtx.Ops, backgroundColor)

	for _, src := range mv.tileSources(opts) {
		mv.drawTiles(gtx, vp, src)
	}
	for _, c := range ov.Circles {
		drawCircle(gtx, vp, c)
	}
	for _, pl := range ov.Polylines {
		drawPolyline(gtx, vp, pl)
	}
	if opts.ShowUserLocation && opts.UserLocation != nil {
		drawUserLocation(gtx, vp.ToScreen(*opts.UserLocation))
	}
	for _, m := range ov.Markers {
		drawMarker(gtx, vp.ToScreen(m.Coordinate), m.Color)
	}
	if m, ok := mv.selectedMarker(); ok && mv.Theme != nil {
		drawCallout(gtx, mv.Theme, vp.ToScreen(m.Coordinate), m)
	}
	if opts.ShowScale {
		drawScaleBar(gtx, mv.Theme, vp.MetersPerPixel())
	}
	if opts.ShowCompass {
		drawCompass(gtx, mv.camera.Heading)
	}

	return layout.Dimensions{Size: mv.size}
}

func (mv *MapView) viewport() Viewport {
	return Viewport{Camera: mv.camera, Size: mv.size}
}

func (mv *MapView) drainCommands(now time.Time) {
	for {
		select {
		case cmd := <-mv.cmds:
			mv.apply(cmd, now)
		default:
			return
		}
	}
}

func (mv *MapView) apply(cmd command, now time.Time) {
	switch {
	case cmd.reply != nil:
		cmd.reply <- mv.targetCamera()
	case cmd.region != nil:
		mv.animateTo(RegionCamera(*cmd.region, mv.size), cmd.duration, now)
	case cmd.camera != nil:
		mv.animateTo(*cmd.camera, cmd.duration, now)
	}
}

// animateTo replaces any running animation.
func (mv *MapView) animateTo(target geo.Camera, d time.Duration, now time.Time) {
	target = mv.clampCamera(target)
	if d <= 0 {
		mv.camera = target
		mv.anim = nil
		return
	}
	mv.anim = &animation{from: mv.camera, to: target, start: now, duration: d}
}

func (mv *MapView) targetCamera() geo.Camera {
	if mv.anim != nil {
		return mv.anim.to
	}
	return mv.camera
}

func (mv *MapView) clampCamera(c geo.Camera) geo.Camera {
	if math.IsInf(c.Zoom, 0) || math.IsNaN(c.Zoom) {
		c.Zoom = float64(mv.MaxZoom)
	}
	c.Zoom = math.Max(float64(mv.MinZoom), math.Min(c.Zoom, float64(mv.MaxZoom)))
	c.Heading, c.Pitch = 0, 0
	return c
}

func (mv *MapView) handlePointer(gtx layout.Context, x pointer.Event, opts Options) {
	switch x.Kind {
	case pointer.Press:
		mv.pressed = true
		mv.moved = false
		mv.pressPos = x.Position
		mv.lastPos = x.Position
	case pointer.Drag:
		if !mv.pressed {
			return
		}
		if d := x.Position.Sub(mv.pressPos); math.Hypot(float64(d.X), float64(d.Y)) > float64(gtx.Dp(touchSlop)) {
			if !mv.moved {
				mv.anim = nil
			}
			mv.moved = true
		}
		if mv.moved {
			mv.camera = mv.viewport().Pan(x.Position.Sub(mv.lastPos))
		}
		mv.lastPos = x.Position
	case pointer.Release:
		if mv.pressed && !mv.moved {
			mv.tap(gtx, x.Position, opts)
		}
		mv.pressed = false
	case pointer.Cancel:
		mv.pressed = false
	case pointer.Scroll:
		zoom := mv.camera.Zoom
		if x.Scroll.Y < 0 {
			zoom++
		} else if x.Scroll.Y > 0 {
			zoom--
		}
		mv.anim = nil
		cam := mv.viewport().ZoomAbout(x.Position, mv.clampCamera(geo.Camera{Zoom: zoom}).Zoom)
		mv.camera = mv.clampCamera(cam)
	}
}

// tap selects the marker under p or, failing that, reports the coordinate.
func (mv *MapView) tap(gtx layout.Context, p f32.Point, opts Options) {
	vp := mv.viewport()
	if id, ok := hitMarker(gtx, vp, mv.markers, p); ok {
		mv.selected = id
		return
	}
	mv.selected = ""
	if opts.OnTap != nil {
		opts.OnTap(vp.ToCoordinate(p))
	}
}

func (mv *MapView) selectedMarker() (Marker, bool) {
	if mv.selected == "" {
		return Marker{}, false
	}
	for _, m := range mv.markers {
		if m.ID == mv.selected {
			return m, true
		}
	}
	return Marker{}, false
}

func (mv *MapView) tileSources(opts Options) []TileSource {
	var srcs []TileSource
	switch opts.Style {
	case StyleSatellite:
		srcs = append(srcs, mv.Layers.Satellite)
	case StyleHybrid:
		srcs = append(srcs, mv.Layers.Satellite, mv.Layers.Labels)
	default:
		srcs = append(srcs, mv.Layers.Standard)
	}
	if opts.ShowTraffic {
		srcs = append(srcs, mv.Layers.Traffic)
	}
	out := srcs[:0]
	for _, s := range srcs {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (mv *MapView) drawTiles(gtx layout.Context, vp Viewport, src TileSource) {
	tileZoom := int(math.Round(vp.Camera.Zoom))
	scale := math.Pow(2, vp.Camera.Zoom-float64(tileZoom))
	centerWorldPx, centerWorldPy := tiles.CalculateWorldCoordinates(vp.Camera.Center, float64(tileZoom))
	span := image.Pt(int(float64(vp.Size.X)/scale)+1, int(float64(vp.Size.Y)/scale)+1)

	for _, tile := range tiles.CalculateVisibleTiles(vp.Camera.Center, tileZoom, span) {
		img, ok := src.Tile(tile)
		if !ok {
			continue
		}
		imageOp, ok := mv.opCache.Get(img)
		if !ok {
			imageOp = paint.NewImageOp(img)
			mv.opCache.Set(img, imageOp)
		}

		// Calculate final screen position
		finalX := float64(vp.Size.X)/2 + (float64(tile.X*tiles.TileSize)-centerWorldPx)*scale
		finalY := float64(vp.Size.Y)/2 + (float64(tile.Y*tiles.TileSize)-centerWorldPy)*scale

		s := float32(scale)
		transform := op.Affine(f32.Affine2D{}.
			Scale(f32.Point{}, f32.Pt(s, s)).
			Offset(f32.Pt(float32(finalX), float32(finalY)))).Push(gtx.Ops)
		area := clip.Rect{Max: image.Pt(tiles.TileSize, tiles.TileSize)}.Push(gtx.Ops)
		imageOp.Add(gtx.Ops)
		paint.PaintOp{}.Add(gtx.Ops)
		area.Pop()
		transform.Pop()
	}
}
