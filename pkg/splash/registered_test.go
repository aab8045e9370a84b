package splash_test

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rockingship/splash.go/pkg/codec"
	_ "github.com/rockingship/splash.go/pkg/splash"
)

func TestRegisteredCodecRoundTrip(t *testing.T) {
	c, err := codec.Get("splash")
	require.NoError(t, err)
	assert.Equal(t, "splash", c.Name())

	const w, h = 12, 10
	src := makeTestImage(w, h)

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, src))

	img, err := c.Decode(buf.Bytes(), w, h)
	require.NoError(t, err)

	// single-image mode runs lossless, so the decode is exact
	out, ok := img.(*image.RGBA)
	require.True(t, ok)
	rgbEqual(t, src, out, w, h)
}
