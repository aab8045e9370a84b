package splash

import (
	"fmt"
	"image"
	"log/slog"
)

// Decode replays one packet into the running canvas and returns the
// reconstructed frame as RGBA with the padding byte set to 255. The
// packet is validated before the canvas is touched; a malformed packet
// leaves the context unchanged. A truncated sample stream is not an
// error: the partially converged canvas is still returned and a
// warning is logged.
func (c *Codec) Decode(pkt []byte) (*image.RGBA, error) {
	if c.canvas == nil {
		return nil, ErrClosed
	}
	hdr, err := ParseHeader(pkt)
	if err != nil {
		return nil, err
	}
	width, height := c.width, c.height
	if len(pkt) < headerLength+(width+height)*3 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrPacketShort, len(pkt), width, height)
	}

	c.data = pkt[hdr.Length:]
	c.size = len(pkt) - headerLength
	c.pos = 0
	c.truncated = false

	// load the initial rulers
	pos := 0
	for i := 0; i < width; i++ {
		c.xError[i] = uint32(c.data[pos+0]) | uint32(c.data[pos+1])<<8 | uint32(c.data[pos+2])<<16
		pos += 3
	}
	for j := 0; j < height; j++ {
		c.yError[j] = uint32(c.data[pos+0]) | uint32(c.data[pos+1])<<8 | uint32(c.data[pos+2])<<16
		pos += 3
	}
	c.pos = pos

	for c.pos < c.size {
		if !c.updateLines(nil, hdr.Radius, false) {
			break // short frame
		}
	}
	if c.truncated || c.pos != c.size {
		slog.Warn("incomplete scan line", "pos", c.pos, "size", c.size)
	}

	out := c.exportFrame()
	c.data = nil
	c.size = 0
	return out, nil
}
