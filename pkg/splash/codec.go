package splash

import (
	"image"
	"io"

	"github.com/rockingship/splash.go/pkg/codec"
)

var _ codec.Codec = (*imageCodec)(nil)

// imageCodec adapts the stateful splash core to the registry interface
// for single-image use. Each call runs a fresh context with ppf=ppk=1
// so the one packet fully converges.
type imageCodec struct{}

func (imageCodec) Encode(w io.Writer, img image.Image) error {
	b := img.Bounds()
	c, err := New(b.Dx(), b.Dy(), &Options{Radius: DefaultOptions().Radius, PPF: 1, PPK: 1})
	if err != nil {
		return err
	}
	defer c.Close()

	pkt, err := c.Encode(img)
	if err != nil {
		return err
	}
	_, err = w.Write(pkt)
	return err
}

func (imageCodec) Decode(data []byte, width, height int) (image.Image, error) {
	c, err := New(width, height, nil)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.Decode(data)
}

func (imageCodec) Name() string {
	return "splash"
}

func init() {
	codec.Register(imageCodec{})
}
