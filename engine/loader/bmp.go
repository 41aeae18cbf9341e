package loader

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// LoadBMP reads a BMP file into an RGBA8 texture buffer, rows top to bottom.
//
// Parameters:
//   - path: the .bmp file to read
//
// Returns:
//   - *common.TextureBuffer: the decoded pixels, owned by the caller until released
//   - error: I/O or decode errors
func LoadBMP(path string) (*common.TextureBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	tex, err := DecodeBMP(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tex, nil
}

// DecodeBMP decodes a BMP stream into an RGBA8 texture buffer.
func DecodeBMP(r io.Reader) (*common.TextureBuffer, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode BMP: %w", err)
	}
	return toTextureBuffer(img), nil
}

func toTextureBuffer(img image.Image) *common.TextureBuffer {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*b.Dx() || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return &common.TextureBuffer{
		Pixels: rgba.Pix,
		Width:  uint32(b.Dx()),
		Height: uint32(b.Dy()),
	}
}
