package effects

import (
	"github.com/sketchify/sketchify/pkg/blend"
	"github.com/sketchify/sketchify/pkg/params"
	"github.com/sketchify/sketchify/pkg/raster"
	"github.com/sketchify/sketchify/pkg/rng"
)

// TileSize is the edge length of a texture tile.
const TileSize = 64

// Tile generates the gray tile for texture t from seed. The same seed and
// texture always yield the same tile. It returns nil for none.
func Tile(t params.Texture, seed uint32) []uint8 {
	if t == params.TextureNone || !t.Valid() {
		return nil
	}
	r := rng.New(seed)
	tile := make([]uint8, TileSize*TileSize)
	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			var v float64
			switch t {
			case params.TexturePaper:
				v = 255 - r.Float64()*20
			case params.TextureRough:
				v = 255 - r.Float64()*60
			case params.TextureFilm:
				if r.Chance(0.15) {
					v = 175 - r.Float64()*60
				} else {
					v = 255 - r.Float64()*10
				}
			case params.TextureWeave:
				v = 255 - r.Float64()*15
				if (x/4+y/4)%2 == 1 {
					v -= 20
				}
			}
			tile[y*TileSize+x] = raster.Clamp(v)
		}
	}
	return tile
}

// Texture multiplies a tiled procedural texture onto bm at opacity/10.
// Multiply never brightens, and opacity 0 or texture none is a no-op.
func Texture(bm *raster.Bitmap, t params.Texture, opacity int, seed uint32) {
	if opacity <= 0 {
		return
	}
	tile := Tile(t, seed)
	if tile == nil {
		return
	}
	alpha := float64(min(opacity, 10)) / 10
	for y := 0; y < bm.Height; y++ {
		row := (y % TileSize) * TileSize
		for x := 0; x < bm.Width; x++ {
			v := tile[row+x%TileSize]
			o := bm.Offset(x, y)
			blend.Multiply.Pixel(bm.Pix[o:o+4], v, v, v, alpha)
		}
	}
}
