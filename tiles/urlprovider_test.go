package tiles

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestURLProviderTemplate(t *testing.T) {
	t.Parallel()

	p := NewURLProvider("https://tiles.example/{z}/{y}/{x}.png", "test", time.Second)
	require.Equal(t, "https://tiles.example/16/39489/22133.png", p.GetTileURL(Tile{X: 22133, Y: 39489, Zoom: 16}))
}

func TestURLProviderFetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "mapdemo-test" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if r.URL.Path == "/missing/1/1/1.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
		img.Set(0, 0, color.RGBA{R: 255, A: 255})
		w.Header().Set("Content-Type", "image/png")
		_ = png.Encode(w, img)
	}))
	defer srv.Close()

	ctx := context.Background()
	p := NewURLProvider(srv.URL+"/{z}/{x}/{y}.png", "mapdemo-test", time.Second)
	img, err := p.GetTile(ctx, Tile{X: 1, Y: 2, Zoom: 3})
	require.NoError(t, err)
	require.Equal(t, TileSize, img.Bounds().Dx())

	missing := NewURLProvider(srv.URL+"/missing/{z}/{x}/{y}.png", "mapdemo-test", time.Second)
	_, err = missing.GetTile(ctx, Tile{X: 1, Y: 1, Zoom: 1})
	require.ErrorContains(t, err, "unexpected status code: 404")

	anonymous := NewURLProvider(srv.URL+"/{z}/{x}/{y}.png", "", time.Second)
	_, err = anonymous.GetTile(ctx, Tile{X: 1, Y: 1, Zoom: 1})
	require.ErrorContains(t, err, "403")
}

func TestLocalProvider(t *testing.T) {
	t.Parallel()

	img, err := NewLocalProvider(StreetPalette).GetTile(context.Background(), Tile{X: 1, Y: 1, Zoom: 1})
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, TileSize, TileSize), img.Bounds())
	require.Equal(t, color.RGBAModel.Convert(StreetPalette.Border), img.At(0, 0))
}
