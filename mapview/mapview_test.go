package mapview

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
	"time"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"github.com/stretchr/testify/require"

	"github.com/olablt/gio-mapdemo/geo"
	"github.com/olablt/gio-mapdemo/logging"
	"github.com/olablt/gio-mapdemo/tiles"
)

var home = geo.Coordinate{Latitude: -34.6037, Longitude: -58.4194}

func testContext(now time.Time) layout.Context {
	return layout.Context{
		Ops:         new(op.Ops),
		Constraints: layout.Exact(image.Pt(400, 800)),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Now:         now,
	}
}

func testOptions() Options {
	return Options{
		InitialRegion: geo.Region{Center: home, LatitudeDelta: 0.01, LongitudeDelta: 0.01},
		ShowCompass:   true,
		ShowScale:     true,
	}
}

type solidSource struct{}

func (solidSource) Tile(tiles.Tile) (image.Image, bool) {
	return image.NewUniform(color.White), true
}

type namedSource string

func (namedSource) Tile(tiles.Tile) (image.Image, bool) { return nil, false }

func TestViewportRoundTrip(t *testing.T) {
	t.Parallel()

	vp := Viewport{Camera: geo.Camera{Center: home, Zoom: 16}, Size: image.Pt(400, 800)}
	require.InDelta(t, 200, vp.ToScreen(home).X, 1e-3)
	require.InDelta(t, 400, vp.ToScreen(home).Y, 1e-3)

	p := f32.Pt(37, 512)
	back := vp.ToScreen(vp.ToCoordinate(p))
	require.InDelta(t, p.X, back.X, 1e-2)
	require.InDelta(t, p.Y, back.Y, 1e-2)
}

func TestViewportPanAndZoomAbout(t *testing.T) {
	t.Parallel()

	vp := Viewport{Camera: geo.Camera{Center: home, Zoom: 15}, Size: image.Pt(400, 800)}
	panned := Viewport{Camera: vp.Pan(f32.Pt(50, -20)), Size: vp.Size}
	moved := panned.ToScreen(home)
	require.InDelta(t, 250, moved.X, 1e-2)
	require.InDelta(t, 380, moved.Y, 1e-2)

	anchor := f32.Pt(100, 100)
	under := vp.ToCoordinate(anchor)
	zoomed := Viewport{Camera: vp.ZoomAbout(anchor, 16), Size: vp.Size}
	require.Equal(t, 16.0, zoomed.Camera.Zoom)
	p := zoomed.ToScreen(under)
	require.InDelta(t, anchor.X, p.X, 1e-2)
	require.InDelta(t, anchor.Y, p.Y, 1e-2)
}

func TestRegionZoomFits(t *testing.T) {
	t.Parallel()

	size := image.Pt(400, 800)
	r := geo.Region{Center: home, LatitudeDelta: 0.01, LongitudeDelta: 0.01}
	zoom := RegionZoom(r, size)
	require.InDelta(t, 15.78, zoom, 0.01)

	vp := Viewport{Camera: geo.Camera{Center: home, Zoom: zoom}, Size: size}
	west := vp.ToScreen(geo.Coordinate{Latitude: home.Latitude, Longitude: home.Longitude - 0.005})
	east := vp.ToScreen(geo.Coordinate{Latitude: home.Latitude, Longitude: home.Longitude + 0.005})
	require.InDelta(t, 400, east.X-west.X, 0.5)

	tighter := RegionZoom(geo.Region{Center: home, LatitudeDelta: 0.005, LongitudeDelta: 0.005}, size)
	require.InDelta(t, zoom+1, tighter, 1e-9)

	require.True(t, math.IsInf(RegionZoom(geo.Region{Center: home}, size), 1))
}

func TestAnimationEasesToTarget(t *testing.T) {
	t.Parallel()

	start := time.Unix(100, 0)
	a := animation{
		from:     geo.Camera{Center: home, Zoom: 15},
		to:       geo.Camera{Center: geo.Coordinate{Latitude: -34.6050, Longitude: -58.4180}, Zoom: 16},
		start:    start,
		duration: time.Second,
	}
	cam, done := a.at(start)
	require.False(t, done)
	require.Equal(t, 15.0, cam.Zoom)

	cam, done = a.at(start.Add(500 * time.Millisecond))
	require.False(t, done)
	require.InDelta(t, 15.875, cam.Zoom, 1e-9)

	cam, done = a.at(start.Add(2 * time.Second))
	require.True(t, done)
	require.Equal(t, a.to, cam)
}

func TestDashRuns(t *testing.T) {
	t.Parallel()

	line := []f32.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	runs := dashRuns(line, []float32{2})
	require.Len(t, runs, 3)
	require.Equal(t, []f32.Point{{X: 0, Y: 0}, {X: 2, Y: 0}}, runs[0])
	require.Equal(t, []f32.Point{{X: 4, Y: 0}, {X: 6, Y: 0}}, runs[1])
	require.Equal(t, []f32.Point{{X: 8, Y: 0}, {X: 10, Y: 0}}, runs[2])

	// Dashes carry across vertices.
	bent := []f32.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 3}}
	runs = dashRuns(bent, []float32{4, 1})
	require.Len(t, runs, 2)
	require.Equal(t, []f32.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 1}}, runs[0])
	require.Equal(t, []f32.Point{{X: 3, Y: 2}, {X: 3, Y: 3}}, runs[1])

	require.Equal(t, [][]f32.Point{line}, dashRuns(line, nil))
	require.Nil(t, dashRuns(line[:1], []float32{1}))
}

func TestScaleBar(t *testing.T) {
	t.Parallel()

	meters, px := scaleBar(2.3, 100)
	require.Equal(t, 200.0, meters)
	require.InDelta(t, 86.96, px, 0.01)

	meters, _ = scaleBar(60, 100)
	require.Equal(t, 5000.0, meters)
	require.Equal(t, "5 km", formatDistance(meters))
	require.Equal(t, "200 m", formatDistance(200))

	meters, _ = scaleBar(0.011, 100)
	require.Equal(t, 1.0, meters)

	meters, px = scaleBar(0, 100)
	require.Zero(t, meters)
	require.Zero(t, px)
}

func TestCommandsBeforeMountAreDropped(t *testing.T) {
	t.Parallel()

	mv := New(Layers{}, nil, logging.Noop())
	mv.AnimateToRegion(geo.Region{Center: home, LatitudeDelta: 1, LongitudeDelta: 1}, time.Second)
	mv.AnimateCamera(geo.Camera{Center: home, Zoom: 3}, 0)

	_, err := mv.Camera(context.Background())
	require.True(t, errors.Is(err, ErrNotMounted))
	require.Empty(t, mv.cmds)
}

func TestMountAppliesInitialRegion(t *testing.T) {
	t.Parallel()

	mv := New(Layers{Standard: solidSource{}}, nil, nil)
	gtx := testContext(time.Unix(0, 0))
	dims := mv.Layout(gtx, testOptions(), Overlays{})
	require.Equal(t, image.Pt(400, 800), dims.Size)
	require.Equal(t, home, mv.camera.Center)
	require.InDelta(t, 15.78, mv.camera.Zoom, 0.01)
}

func TestCameraReadAfterAnimateReturnsTarget(t *testing.T) {
	t.Parallel()

	mv := New(Layers{}, nil, nil)
	now := time.Unix(0, 0)
	mv.Layout(testContext(now), testOptions(), Overlays{})

	cafe := geo.Coordinate{Latitude: -34.6050, Longitude: -58.4180}
	mv.AnimateToRegion(geo.Region{Center: cafe, LatitudeDelta: 0.005, LongitudeDelta: 0.005}, time.Second)
	mv.AnimateCamera(geo.Camera{Center: cafe, Zoom: 40}, 300*time.Millisecond)

	type result struct {
		cam geo.Camera
		err error
	}
	out := make(chan result, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cam, err := mv.Camera(ctx)
		out <- result{cam, err}
	}()

	var got result
	require.Eventually(t, func() bool {
		now = now.Add(10 * time.Millisecond)
		mv.Layout(testContext(now), testOptions(), Overlays{})
		select {
		case got = <-out:
			return true
		default:
			return false
		}
	}, 5*time.Second, time.Millisecond)

	require.NoError(t, got.err)
	require.Equal(t, cafe, got.cam.Center)
	require.Equal(t, 19.0, got.cam.Zoom, "zoom is clamped to MaxZoom")

	// The animation finishes on the target.
	mv.Layout(testContext(now.Add(time.Second)), testOptions(), Overlays{})
	require.Nil(t, mv.anim)
	require.Equal(t, cafe, mv.camera.Center)
}

func TestTapSelectsMarkerOrReportsCoordinate(t *testing.T) {
	t.Parallel()

	mv := New(Layers{}, nil, nil)
	gtx := testContext(time.Unix(0, 0))
	markers := []Marker{{ID: "poi-1", Coordinate: home, Title: "Yatay 240"}}
	var tapped []geo.Coordinate
	opts := testOptions()
	opts.OnTap = func(c geo.Coordinate) { tapped = append(tapped, c) }
	mv.Layout(gtx, opts, Overlays{Markers: markers})

	head, _ := markerHead(gtx, mv.viewport().ToScreen(home))
	mv.tap(gtx, head, opts)
	require.Equal(t, "poi-1", mv.Selected())
	require.Empty(t, tapped)

	p := f32.Pt(50, 700)
	mv.tap(gtx, p, opts)
	require.Empty(t, mv.Selected())
	require.Len(t, tapped, 1)
	want := mv.viewport().ToCoordinate(p)
	require.InDelta(t, want.Latitude, tapped[0].Latitude, 1e-9)
	require.InDelta(t, want.Longitude, tapped[0].Longitude, 1e-9)
}

func TestTileSourcesPerStyle(t *testing.T) {
	t.Parallel()

	std, sat, labels, traffic := namedSource("standard"), namedSource("satellite"), namedSource("labels"), namedSource("traffic")
	mv := New(Layers{Standard: std, Satellite: sat, Labels: labels, Traffic: traffic}, nil, nil)

	require.Equal(t, []TileSource{std}, mv.tileSources(Options{Style: StyleStandard}))
	require.Equal(t, []TileSource{sat}, mv.tileSources(Options{Style: StyleSatellite}))
	require.Equal(t, []TileSource{sat, labels, traffic}, mv.tileSources(Options{Style: StyleHybrid, ShowTraffic: true}))

	mv.Layers.Traffic = nil
	require.Equal(t, []TileSource{std}, mv.tileSources(Options{ShowTraffic: true}))
}

func TestStyleSwitchDropsImageOps(t *testing.T) {
	t.Parallel()

	mv := New(Layers{Standard: solidSource{}, Satellite: namedSource("satellite")}, nil, nil)
	opts := testOptions()
	mv.Layout(testContext(time.Unix(0, 0)), opts, Overlays{})
	require.Positive(t, mv.opCache.Len())

	mv.Layout(testContext(time.Unix(0, 0)), opts, Overlays{})
	require.Positive(t, mv.opCache.Len())

	opts.Style = StyleSatellite
	mv.Layout(testContext(time.Unix(1, 0)), opts, Overlays{})
	require.Zero(t, mv.opCache.Len())
}
