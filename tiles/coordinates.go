package tiles

import (
	"fmt"
	"image"
	"math"

	"github.com/olablt/gio-mapdemo/geo"
)

const (
	TileSize           = 256
	earthCircumference = 40075016.686 // meters at equator
	maxLatitude        = 85.05112878
)

// Tile represents a map tile coordinates
type Tile struct {
	X, Y, Zoom int
}

// Key returns a unique string key for a tile
func (t Tile) Key() string {
	return fmt.Sprintf("%d/%d/%d", t.Zoom, t.X, t.Y)
}

// LatLngToTile converts geographical coordinates to tile coordinates
func LatLngToTile(ll geo.Coordinate, zoom int) Tile {
	x, y := CalculateWorldCoordinates(ll, float64(zoom))
	return Tile{X: int(x / TileSize), Y: int(y / TileSize), Zoom: zoom}
}

// TileToLatLng converts tile coordinates to geographical coordinates (returns the north-west corner)
func TileToLatLng(tile Tile) geo.Coordinate {
	return WorldToLatLng(float64(tile.X*TileSize), float64(tile.Y*TileSize), float64(tile.Zoom))
}

// CalculateWorldCoordinates converts geographical coordinates to world pixel coordinates at given zoom level
func CalculateWorldCoordinates(ll geo.Coordinate, zoom float64) (float64, float64) {
	n := math.Pow(2, zoom)
	lat := math.Max(-maxLatitude, math.Min(maxLatitude, ll.Latitude))
	latRad := lat * math.Pi / 180.0
	worldX := float64(TileSize) * n * (ll.Longitude + 180) / 360
	worldY := float64(TileSize) * n * (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2
	return worldX, worldY
}

// WorldToLatLng converts world pixel coordinates back to geographical coordinates
func WorldToLatLng(worldX, worldY float64, zoom float64) geo.Coordinate {
	n := math.Pow(2, zoom)
	lng := (worldX/(float64(TileSize)*n))*360 - 180
	latRad := math.Pi * (1 - 2*worldY/(float64(TileSize)*n))
	lat := 180 / math.Pi * math.Atan(math.Sinh(latRad))
	return geo.Coordinate{Latitude: lat, Longitude: lng}
}

// CalculateMetersPerPixel calculates the meters per pixel at a given latitude and zoom level
func CalculateMetersPerPixel(latitude float64, zoom float64) float64 {
	return earthCircumference * math.Cos(latitude*math.Pi/180) / (math.Pow(2, zoom) * TileSize)
}

// ConstrainTile ensures tile coordinates are within valid bounds for the zoom level
func ConstrainTile(tile Tile) Tile {
	maxTile := (1 << tile.Zoom) - 1
	tile.X = max(0, min(tile.X, maxTile))
	tile.Y = max(0, min(tile.Y, maxTile))
	return tile
}

// CalculateVisibleTiles calculates which tiles cover a screen of the given
// size (in pixels at zoom) centered on center.
func CalculateVisibleTiles(center geo.Coordinate, zoom int, screenSize image.Point) []Tile {
	centerTile := LatLngToTile(center, zoom)
	tilesX := (screenSize.X / TileSize) + 2 // Add buffer tiles
	tilesY := (screenSize.Y / TileSize) + 2

	startX := centerTile.X - tilesX/2
	startY := centerTile.Y - tilesY/2

	seen := make(map[Tile]bool, tilesX*tilesY)
	visibleTiles := make([]Tile, 0, tilesX*tilesY)
	for x := startX; x <= startX+tilesX; x++ {
		for y := startY; y <= startY+tilesY; y++ {
			tile := ConstrainTile(Tile{
				X:    x,
				Y:    y,
				Zoom: zoom,
			})
			if seen[tile] {
				continue
			}
			seen[tile] = true
			visibleTiles = append(visibleTiles, tile)
		}
	}
	return visibleTiles
}
