package splash

import (
	"image"
	"math"
)

// updateLines runs one refinement iteration: pick the worst column or
// row, rebalance its ruler, and splash a sample at every cross point
// with an exact perpendicular line. In encode mode samples are read
// from target and appended to the packet; in decode mode they are
// consumed from the packet and target is ignored.
//
// Returns false when both rulers are entirely zero and there is
// nothing left to refine.
func (c *Codec) updateLines(target *image.RGBA, radius int, encode bool) bool {
	width, height := c.width, c.height
	xError, yError := c.xError, c.yError

	// which tabstops have the worst error
	worstXerr := xError[0]
	worstXi := 0
	for i := 1; i < width; i++ {
		if xError[i] > worstXerr {
			worstXi = i
			worstXerr = xError[i]
		}
	}
	worstYerr := yError[0]
	worstYj := 0
	for j := 1; j < height; j++ {
		if yError[j] > worstYerr {
			worstYj = j
			worstYerr = yError[j]
		}
	}

	if worstXerr+worstYerr == 0 {
		return false // nothing to do
	}

	// On a tie the row wins. The choice is arbitrary but both sides
	// must make the same one.
	if worstXerr > worstYerr {
		i := worstXi
		minI, maxI := splashRange(xError, i, width, radius)

		maxError := xError[i]
		rebalance(xError, i, minI, maxI, radius)

		// scan the column for cross points with exact rows
		for j := 0; j < height; j++ {
			if yError[j] != 0 {
				continue
			}
			srcR, srcG, srcB, ok := c.sample(target, i, j, encode)
			if !ok {
				break
			}
			minJ, maxJ := splashRange(yError, j, height, radius)
			c.splat(i, j, minI, maxI, minJ, maxJ, radius, maxError, srcR, srcG, srcB)
		}
	} else {
		j := worstYj
		minJ, maxJ := splashRange(yError, j, height, radius)

		maxError := yError[j]
		rebalance(yError, j, minJ, maxJ, radius)

		// scan the row for cross points with exact columns
		for i := 0; i < width; i++ {
			if xError[i] != 0 {
				continue
			}
			srcR, srcG, srcB, ok := c.sample(target, i, j, encode)
			if !ok {
				break
			}
			minI, maxI := splashRange(xError, i, width, radius)
			c.splat(i, j, minI, maxI, minJ, maxJ, radius, maxError, srcR, srcG, srcB)
		}
	}

	return true
}

// splashRange expands [at..at] along a ruler, stopping at the brush
// radius, the canvas edge, or the nearest exact line.
func splashRange(ruler []uint32, at, limit, radius int) (lo, hi int) {
	lo, hi = at, at
	for r := 1; r < radius; r++ {
		if lo == 0 || ruler[lo-1] == 0 {
			break
		}
		lo--
	}
	for r := 1; r < radius; r++ {
		if hi >= limit-1 || ruler[hi+1] == 0 {
			break
		}
		hi++
	}
	return lo, hi
}

// rebalance scales the pivot's neighborhood by distance so the two
// rulers stay in step, then marks the pivot exact. A neighbor that
// scales to zero is held at 1: only the pivot may become exact here.
// An entry that was already zero stays zero.
func rebalance(ruler []uint32, at, lo, hi, radius int) {
	for k := lo; k <= hi; k++ {
		was := ruler[k]
		alpha := float32(abs(k-at)) / float32(radius)
		ruler[k] = uint32(math.Round(float64(float32(ruler[k]) * alpha)))
		if k != at && was != 0 && ruler[k] == 0 {
			ruler[k] = 1
		}
	}
	ruler[at] = 0
}

// sample obtains the RGB triple for cross point (i, j). Encode reads
// the target frame and appends the bytes to the packet; decode
// consumes them from the packet. A decode-side shortfall marks the
// stream truncated, drains the cursor, and reports !ok so the scan
// stops.
func (c *Codec) sample(target *image.RGBA, i, j int, encode bool) (srcR, srcG, srcB int, ok bool) {
	if encode {
		o := target.PixOffset(i, j)
		srcR = int(target.Pix[o+0])
		srcG = int(target.Pix[o+1])
		srcB = int(target.Pix[o+2])

		c.data[c.pos+0] = uint8(srcR)
		c.data[c.pos+1] = uint8(srcG)
		c.data[c.pos+2] = uint8(srcB)
		c.pos += 3
		c.numPixels++
		return srcR, srcG, srcB, true
	}

	if c.pos+3 > c.size {
		c.truncated = true
		c.pos = c.size
		return 0, 0, 0, false
	}
	srcR = int(c.data[c.pos+0])
	srcG = int(c.data[c.pos+1])
	srcB = int(c.data[c.pos+2])
	c.pos += 3
	return srcR, srcG, srcB, true
}

// splat blends one sample into the canvas around cross point (i, j).
// The fill weight falls off linearly with Euclidean distance from the
// cross point and is further attenuated by the local ruler confidence:
// the more accurate a pixel already is, the less the fill may disturb
// it. Neighbouring pixels tend to have neighbouring errors, which is
// what keeps delicate detail like lines and letters intact.
func (c *Codec) splat(i, j, minI, maxI, minJ, maxJ, radius int, maxError uint32, srcR, srcG, srcB int) {
	xError, yError := c.xError, c.yError
	pixels := c.canvas

	for jj := minJ; jj <= maxJ; jj++ {
		for ii := minI; ii <= maxI; ii++ {
			di, dj := ii-i, jj-j
			fillAlpha := float32(1 - math.Sqrt(float64(di*di+dj*dj))/float64(radius))
			if fillAlpha <= 0 {
				continue
			}

			xerr := float32(xError[ii]) / float32(maxError)
			yerr := float32(yError[jj]) / float32(maxError)
			xyerr := (xerr + yerr) / 2

			// both rulers are zero at the cross point itself, so the
			// transmitted sample lands exactly
			alpha := 256 - int(math.Round(float64(256*xyerr)))

			k := (jj*c.width + ii) * 3
			oldR := int(pixels[k+0])
			oldG := int(pixels[k+1])
			oldB := int(pixels[k+2])

			pixels[k+0] = uint8((srcR*alpha + oldR*(256-alpha)) >> 8)
			pixels[k+1] = uint8((srcG*alpha + oldG*(256-alpha)) >> 8)
			pixels[k+2] = uint8((srcB*alpha + oldB*(256-alpha)) >> 8)
		}
	}
}
