package tiles

import (
	"context"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Palette colors a generated placeholder tile.
type Palette struct {
	Background color.RGBA
	Border     color.RGBA
	Label      color.RGBA
}

var (
	StreetPalette = Palette{
		Background: color.RGBA{232, 228, 218, 255},
		Border:     color.RGBA{200, 196, 186, 255},
		Label:      color.RGBA{120, 120, 120, 255},
	}
	ImageryPalette = Palette{
		Background: color.RGBA{58, 74, 52, 255},
		Border:     color.RGBA{44, 58, 40, 255},
		Label:      color.RGBA{210, 220, 200, 255},
	}
)

// LocalProvider generates placeholder tiles labelled with their z/x/y key.
// It never fails and never blocks.
type LocalProvider struct {
	palette Palette
}

func NewLocalProvider(palette Palette) *LocalProvider {
	return &LocalProvider{palette: palette}
}

func (p *LocalProvider) GetTile(_ context.Context, tile Tile) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{p.palette.Background}, image.Point{}, draw.Src)

	drawLabel(img, tile.Key(), p.palette.Label)

	borders := []image.Rectangle{
		image.Rect(0, 0, TileSize, 1),
		image.Rect(0, TileSize-1, TileSize, TileSize),
		image.Rect(0, 0, 1, TileSize),
		image.Rect(TileSize-1, 0, TileSize, TileSize),
	}
	for _, rect := range borders {
		draw.Draw(img, rect, &image.Uniform{p.palette.Border}, image.Point{}, draw.Src)
	}
	return img, nil
}

func drawLabel(img *image.RGBA, text string, c color.RGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
	}
	textWidth := d.MeasureString(text).Round()
	textHeight := face.Metrics().Height.Round()
	d.Dot = fixed.Point26_6{
		X: fixed.I((TileSize - textWidth) / 2),
		Y: fixed.I((TileSize + textHeight) / 2),
	}
	d.DrawString(text)
}
