package tiles

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olablt/gio-mapdemo/geo"
)

var yatay240 = geo.Coordinate{Latitude: -34.6037, Longitude: -58.4194}

func TestWorldRoundTrip(t *testing.T) {
	t.Parallel()

	for _, zoom := range []float64{0, 3.5, 12, 16.25, 19} {
		x, y := CalculateWorldCoordinates(yatay240, zoom)
		back := WorldToLatLng(x, y, zoom)
		require.InDelta(t, yatay240.Latitude, back.Latitude, 1e-9)
		require.InDelta(t, yatay240.Longitude, back.Longitude, 1e-9)
	}
}

func TestLatLngToTile(t *testing.T) {
	t.Parallel()

	require.Equal(t, Tile{X: 0, Y: 0, Zoom: 0}, LatLngToTile(yatay240, 0))

	tile := LatLngToTile(yatay240, 16)
	require.Equal(t, 16, tile.Zoom)
	nw := TileToLatLng(tile)
	se := TileToLatLng(Tile{X: tile.X + 1, Y: tile.Y + 1, Zoom: 16})
	require.LessOrEqual(t, nw.Longitude, yatay240.Longitude)
	require.GreaterOrEqual(t, se.Longitude, yatay240.Longitude)
	require.GreaterOrEqual(t, nw.Latitude, yatay240.Latitude)
	require.LessOrEqual(t, se.Latitude, yatay240.Latitude)
	require.Equal(t, "16/22133/39489", tile.Key())
}

func TestMetersPerPixel(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 156543.03, CalculateMetersPerPixel(0, 0), 0.01)
	require.InDelta(t, CalculateMetersPerPixel(0, 10)/2, CalculateMetersPerPixel(0, 11), 1e-9)
}

func TestVisibleTilesAreUniqueAndBounded(t *testing.T) {
	t.Parallel()

	tiles := CalculateVisibleTiles(yatay240, 1, image.Pt(800, 600))
	require.Len(t, tiles, 4)

	tiles = CalculateVisibleTiles(yatay240, 16, image.Pt(512, 512))
	seen := map[Tile]bool{}
	for _, tile := range tiles {
		require.False(t, seen[tile])
		seen[tile] = true
	}
	require.Contains(t, tiles, LatLngToTile(yatay240, 16))
}

func TestCacheEvictsOldest(t *testing.T) {
	t.Parallel()

	c := NewCache[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)
	c.Set("c", 3)

	_, ok := c.Get("a")
	require.False(t, ok)
	v, ok := c.Get("b")
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.Equal(t, 2, c.Len())

	c.Clear()
	require.Zero(t, c.Len())
}
