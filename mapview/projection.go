package mapview

import (
	"image"
	"math"

	"gioui.org/f32"

	"github.com/olablt/gio-mapdemo/geo"
	"github.com/olablt/gio-mapdemo/tiles"
)

// Viewport maps between coordinates and screen pixels for a camera.
type Viewport struct {
	Camera geo.Camera
	Size   image.Point
}

func (v Viewport) worldCenter() (float64, float64) {
	return tiles.CalculateWorldCoordinates(v.Camera.Center, v.Camera.Zoom)
}

// ToScreen returns the pixel position of c.
func (v Viewport) ToScreen(c geo.Coordinate) f32.Point {
	cx, cy := v.worldCenter()
	x, y := tiles.CalculateWorldCoordinates(c, v.Camera.Zoom)
	return f32.Pt(
		float32(float64(v.Size.X)/2+x-cx),
		float32(float64(v.Size.Y)/2+y-cy),
	)
}

// ToCoordinate returns the coordinate under pixel p.
func (v Viewport) ToCoordinate(p f32.Point) geo.Coordinate {
	cx, cy := v.worldCenter()
	return tiles.WorldToLatLng(
		cx+float64(p.X)-float64(v.Size.X)/2,
		cy+float64(p.Y)-float64(v.Size.Y)/2,
		v.Camera.Zoom,
	)
}

// Pan returns the camera after the content moved by delta pixels.
func (v Viewport) Pan(delta f32.Point) geo.Camera {
	cx, cy := v.worldCenter()
	cam := v.Camera
	cam.Center = tiles.WorldToLatLng(cx-float64(delta.X), cy-float64(delta.Y), cam.Zoom)
	return cam
}

// ZoomAbout returns the camera at zoom with the coordinate under p kept
// under p.
func (v Viewport) ZoomAbout(p f32.Point, zoom float64) geo.Camera {
	anchor := v.ToCoordinate(p)
	ax, ay := tiles.CalculateWorldCoordinates(anchor, zoom)
	cam := v.Camera
	cam.Zoom = zoom
	cam.Center = tiles.WorldToLatLng(
		ax-(float64(p.X)-float64(v.Size.X)/2),
		ay-(float64(p.Y)-float64(v.Size.Y)/2),
		zoom,
	)
	return cam
}

// MetersPerPixel at the camera center.
func (v Viewport) MetersPerPixel() float64 {
	return tiles.CalculateMetersPerPixel(v.Camera.Center.Latitude, v.Camera.Zoom)
}

// RegionZoom returns the largest zoom at which the region fits in size.
func RegionZoom(r geo.Region, size image.Point) float64 {
	w, h := float64(size.X), float64(size.Y)
	if w <= 0 || h <= 0 {
		w, h = tiles.TileSize, tiles.TileSize
	}

	zoom := math.Inf(1)
	if r.LongitudeDelta > 0 {
		zoom = math.Log2(360 * w / (tiles.TileSize * r.LongitudeDelta))
	}
	if r.LatitudeDelta > 0 {
		north := geo.Coordinate{Latitude: r.Center.Latitude + r.LatitudeDelta/2}
		south := geo.Coordinate{Latitude: r.Center.Latitude - r.LatitudeDelta/2}
		_, yn := tiles.CalculateWorldCoordinates(north, 0)
		_, ys := tiles.CalculateWorldCoordinates(south, 0)
		if span := ys - yn; span > 0 {
			zoom = math.Min(zoom, math.Log2(h/span))
		}
	}
	return zoom
}

// RegionCamera returns a camera centered on r that shows all of it.
func RegionCamera(r geo.Region, size image.Point) geo.Camera {
	return geo.Camera{Center: r.Center, Zoom: RegionZoom(r, size)}
}
