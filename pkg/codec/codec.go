// Package codec defines the codec-neutral interface and registry the
// CLI and host integrations work against.
package codec

import (
	"image"
	"io"
)

// Codec defines the interface for pixel data compression
type Codec interface {
	// Encode compresses an image to the writer
	Encode(w io.Writer, img image.Image) error
	// Decode decompresses data to an image
	// width/height provided for codecs whose packets carry no dimensions
	Decode(data []byte, width, height int) (image.Image, error)
	// Name returns the codec identifier (e.g., "splash")
	Name() string
}
