package tiles

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Provider loads a single tile image. Implementations may block.
type Provider interface {
	GetTile(ctx context.Context, tile Tile) (image.Image, error)
}

// URLProvider fetches raster tiles over HTTP from a template such as
// https://tile.openstreetmap.org/{z}/{x}/{y}.png.
type URLProvider struct {
	template  string
	userAgent string
	client    *http.Client
}

func NewURLProvider(template, userAgent string, timeout time.Duration) *URLProvider {
	return &URLProvider{
		template:  template,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

func (p *URLProvider) GetTile(ctx context.Context, tile Tile) (image.Image, error) {
	url := p.GetTileURL(tile)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request for tile %s: %w", tile.Key(), err)
	}
	// Tile servers reject anonymous clients.
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "image/png,image/jpeg,image/*;q=0.8")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch tile %s: %w", tile.Key(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch tile %s: unexpected status code: %d", tile.Key(), resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode tile %s: %w", tile.Key(), err)
	}
	return img, nil
}

// GetTileURL returns the URL for downloading the map tile
func (p *URLProvider) GetTileURL(tile Tile) string {
	return strings.NewReplacer(
		"{z}", strconv.Itoa(tile.Zoom),
		"{x}", strconv.Itoa(tile.X),
		"{y}", strconv.Itoa(tile.Y),
	).Replace(p.template)
}
