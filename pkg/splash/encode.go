package splash

import (
	"fmt"
	"image"
	"log/slog"
	"math"
)

// Encode compresses one frame against the running canvas and returns
// the packet. The first frame of a context is budgeted by PPK, later
// frames by PPF; every packet is self-contained enough to be flagged a
// key frame by the host. The frame must match the codec dimensions.
func (c *Codec) Encode(img image.Image) ([]byte, error) {
	if c.canvas == nil {
		return nil, ErrClosed
	}
	b := img.Bounds()
	if b.Dx() != c.width || b.Dy() != c.height {
		return nil, fmt.Errorf("%w: frame %dx%d, codec %dx%d",
			ErrDimensions, b.Dx(), b.Dy(), c.width, c.height)
	}
	target := toRGBA(img)

	width, height := c.width, c.height

	// worst case: every ruler entry plus every pixel sampled
	pkt := make([]byte, headerLength+(width+height+width*height)*3)
	writeHeader(pkt, c.opts.Radius)

	c.data = pkt[headerLength:]
	c.size = len(pkt) - headerLength
	c.pos = 0

	// create and output the initial rulers against the evolving canvas
	pos := 0
	for i := 0; i < width; i++ {
		e := c.columnError(target, i)
		c.xError[i] = e
		c.data[pos+0] = uint8(e)
		c.data[pos+1] = uint8(e >> 8)
		c.data[pos+2] = uint8(e >> 16)
		pos += 3
	}
	for j := 0; j < height; j++ {
		e := c.rowError(target, j)
		c.yError[j] = e
		c.data[pos+0] = uint8(e)
		c.data[pos+1] = uint8(e >> 8)
		c.data[pos+2] = uint8(e >> 16)
		pos += 3
	}
	c.pos = pos
	c.numPixels = 0

	// number of pixels for this frame
	var maxPixels int
	if c.frame == 0 {
		maxPixels = int(math.Round(float64(width*height) / float64(c.opts.PPK)))
	} else {
		maxPixels = int(math.Round(float64(width*height) / float64(c.opts.PPF)))
	}

	for {
		if !c.updateLines(target, c.opts.Radius, true) {
			break // short frame
		}
		if c.numPixels >= maxPixels {
			break
		}
	}

	// lossless mode promises an exact reconstruction
	if c.opts.PPF == 1 {
		if miss := c.countMisses(target); miss > 0 {
			slog.Warn("inaccurate final pixels", "count", miss, "frame", c.frame)
		}
	}

	pkt = pkt[:headerLength+c.pos]
	c.frame++
	c.data = nil
	c.size = 0
	return pkt, nil
}

// columnError sums |canvas - target| over R, G and B down column i,
// clamped to what three wire bytes can carry.
func (c *Codec) columnError(target *image.RGBA, i int) uint32 {
	e := 0
	for j := 0; j < c.height; j++ {
		k := (j*c.width + i) * 3
		o := target.PixOffset(i, j)
		e += abs(int(c.canvas[k+0]) - int(target.Pix[o+0]))
		e += abs(int(c.canvas[k+1]) - int(target.Pix[o+1]))
		e += abs(int(c.canvas[k+2]) - int(target.Pix[o+2]))
	}
	if e > maxLineError {
		e = maxLineError
	}
	return uint32(e)
}

// rowError is the row dual of columnError.
func (c *Codec) rowError(target *image.RGBA, j int) uint32 {
	e := 0
	for i := 0; i < c.width; i++ {
		k := (j*c.width + i) * 3
		o := target.PixOffset(i, j)
		e += abs(int(c.canvas[k+0]) - int(target.Pix[o+0]))
		e += abs(int(c.canvas[k+1]) - int(target.Pix[o+1]))
		e += abs(int(c.canvas[k+2]) - int(target.Pix[o+2]))
	}
	if e > maxLineError {
		e = maxLineError
	}
	return uint32(e)
}

// countMisses compares the canvas to the target channel by channel.
func (c *Codec) countMisses(target *image.RGBA) int {
	miss := 0
	for j := 0; j < c.height; j++ {
		for i := 0; i < c.width; i++ {
			k := (j*c.width + i) * 3
			o := target.PixOffset(i, j)
			for ch := 0; ch < 3; ch++ {
				if c.canvas[k+ch] != target.Pix[o+ch] {
					miss++
				}
			}
		}
	}
	return miss
}
