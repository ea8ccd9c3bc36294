package raster

// GrayMap holds one luminance byte per pixel.
type GrayMap []uint8

// EdgeMap holds one gradient magnitude byte per pixel.
type EdgeMap []uint8

// RGBBuffer holds three bytes per pixel with no alpha.
type RGBBuffer []uint8

// SnapshotRGB copies the color channels of b.
func SnapshotRGB(b *Bitmap) RGBBuffer {
	out := make(RGBBuffer, b.Len()*3)
	for i, j := 0, 0; i < len(b.Pix); i, j = i+4, j+3 {
		out[j], out[j+1], out[j+2] = b.Pix[i], b.Pix[i+1], b.Pix[i+2]
	}
	return out
}

// At returns the value at (x,y) of a w-wide map, or 0 outside it.
func (m EdgeMap) At(x, y, w int) uint8 {
	if x < 0 || y < 0 || x >= w {
		return 0
	}
	i := y*w + x
	if i >= len(m) {
		return 0
	}
	return m[i]
}

// At returns the value at (x,y) of a w-wide map, or paper white outside it.
func (m GrayMap) At(x, y, w int) uint8 {
	if x < 0 || y < 0 || x >= w {
		return Paper
	}
	i := y*w + x
	if i >= len(m) {
		return Paper
	}
	return m[i]
}
