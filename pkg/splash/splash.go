// Package splash implements the splash progressive image codec.
//
// The codec reconstructs a frame by repeatedly picking the column or
// row that currently looks most wrong, transmitting true pixel samples
// where that line crosses lines that are already exact, and blending
// each sample into a disk-shaped neighborhood of the shared canvas.
// Encoder and decoder run the same canvas-evolution step, so given the
// same packet bytes both sides converge to the same canvas
// byte-for-byte. The canvas persists across frames within one Codec,
// which is what makes later frames cheap: they only pay for what
// changed.
package splash

import (
	"image"
	"image/draw"
)

// Codec is a per-stream codec context. It owns the running canvas and
// the two error rulers shared by encode and decode. A Codec is either
// an encoding or a decoding context for its lifetime; the zero canvas
// state is solid mid gray on both sides.
//
// A Codec is not safe for concurrent use.
type Codec struct {
	width  int
	height int
	opts   Options

	canvas []uint8  // 3 bytes per pixel, row-major
	xError []uint32 // per-column residual error, zero marks an exact column
	yError []uint32 // per-row residual error, zero marks an exact row

	data []byte // payload region of the packet being read or written
	pos  int    // cursor within data
	size int    // usable bytes in data

	numPixels int  // samples emitted for the current frame
	frame     int  // frames encoded so far
	truncated bool // decode ran out of sample bytes mid scan line
}

// New creates a codec context for width x height frames. opts may be
// nil for defaults.
func New(width, height int, opts *Options) (*Codec, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrDimensions
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	c := &Codec{
		width:  width,
		height: height,
		opts:   o,
		canvas: make([]uint8, width*height*3),
		xError: make([]uint32, width),
		yError: make([]uint32, height),
	}

	// initial image, solid gray50
	for i := range c.canvas {
		c.canvas[i] = 0x7f
	}

	return c, nil
}

// Width returns the frame width.
func (c *Codec) Width() int { return c.width }

// Height returns the frame height.
func (c *Codec) Height() int { return c.height }

// Options returns the parameter set the codec was created with.
func (c *Codec) Options() Options { return c.opts }

// Frame returns a snapshot of the current canvas. On the encode side
// this is the reconstruction the decoder will arrive at after the last
// emitted packet, which makes it a cheap progressive preview.
func (c *Codec) Frame() *image.RGBA {
	return c.exportFrame()
}

// Close releases the canvas and rulers. The codec must not be used
// afterwards.
func (c *Codec) Close() {
	c.canvas = nil
	c.xError = nil
	c.yError = nil
	c.data = nil
}

// exportFrame widens the 3-byte canvas to RGBA, writing 255 into each
// padding byte.
func (c *Codec) exportFrame() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	src := c.canvas
	dst := out.Pix
	for p := 0; p < c.width*c.height; p++ {
		dst[p*4+0] = src[p*3+0]
		dst[p*4+1] = src[p*3+1]
		dst[p*4+2] = src[p*3+2]
		dst[p*4+3] = 255
	}
	return out
}

// toRGBA normalizes an input frame to an RGBA raster anchored at (0,0).
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == image.Pt(0, 0) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
