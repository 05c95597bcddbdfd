// Package imaging provides the in-memory raster image model used by
// dispatch nodes: RGB channels as normalized float32 values in [0,1],
// encoded to PNG at the wire boundary.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	_ "image/jpeg" // register JPEG for Decode
)

// Image is an in-memory raster image with normalized float32 RGB channels.
// Pix holds Width*Height*3 values in row-major order, each in [0,1].
// Values outside that range are tolerated and clamped at encode time.
type Image struct {
	Width  int
	Height int
	Pix    []float32
}

// New allocates a zero-filled image of the given dimensions.
func New(width, height int) Image {
	return Image{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*3),
	}
}

// Set assigns the normalized RGB value at (x, y).
func (m Image) Set(x, y int, r, g, b float32) {
	i := (y*m.Width + x) * 3
	m.Pix[i], m.Pix[i+1], m.Pix[i+2] = r, g, b
}

// At returns the normalized RGB value at (x, y).
func (m Image) At(x, y int) (r, g, b float32) {
	i := (y*m.Width + x) * 3
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
}

// EncodePNG encodes the image as a lossless PNG. Channel values are scaled
// by 255 and then clamped to [0,255]; the scale-then-clamp order means an
// out-of-range value like 2.0 saturates at 255 rather than wrapping.
func (m Image) EncodePNG() ([]byte, error) {
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("imaging: invalid dimensions %dx%d", m.Width, m.Height)
	}
	if len(m.Pix) != m.Width*m.Height*3 {
		return nil, fmt.Errorf("imaging: pixel buffer has %d values, want %d", len(m.Pix), m.Width*m.Height*3)
	}

	out := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			i := (y*m.Width + x) * 3
			o := out.PixOffset(x, y)
			out.Pix[o] = quantize(m.Pix[i])
			out.Pix[o+1] = quantize(m.Pix[i+1])
			out.Pix[o+2] = quantize(m.Pix[i+2])
			out.Pix[o+3] = 0xff
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("imaging: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// quantize maps a normalized channel value to an 8-bit value,
// scaling by 255 before clamping.
func quantize(v float32) uint8 {
	scaled := float64(v) * 255.0
	if math.IsNaN(scaled) || scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

// Decode parses PNG or JPEG bytes into an Image with normalized channels.
// Malformed input returns an error without partial results.
func Decode(data []byte) (Image, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("imaging: decode: %w", err)
	}

	bounds := src.Bounds()
	m := New(bounds.Dx(), bounds.Dy())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA returns 16-bit channels.
			m.Set(x, y, float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff)
		}
	}
	return m, nil
}
