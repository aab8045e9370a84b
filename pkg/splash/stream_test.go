package splash_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rockingship/splash.go/pkg/splash"
)

func TestStreamRoundTrip(t *testing.T) {
	const w, h, frames = 24, 16, 3
	opts := &splash.Options{Radius: 3, PPF: 1, PPK: 1}

	var buf bytes.Buffer
	sw, err := splash.NewStreamWriter(&buf, w, h, opts)
	require.NoError(t, err)

	for f := 0; f < frames; f++ {
		target := makeTestImage(w, h)
		// shift each frame so the canvas has to follow
		for i := range target.Pix {
			target.Pix[i] += uint8(f * 3)
		}
		for p := 3; p < len(target.Pix); p += 4 {
			target.Pix[p] = 255
		}
		require.NoError(t, sw.WriteFrame(target))
	}
	require.NoError(t, sw.Close())
	assert.Equal(t, frames, sw.Frames())
	t.Logf("container: %d bytes for %d frames", buf.Len(), frames)

	sr, err := splash.NewStreamReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer sr.Close()

	assert.Equal(t, w, sr.Width())
	assert.Equal(t, h, sr.Height())
	assert.Equal(t, sw.ID(), sr.ID())
	assert.Equal(t, *opts, sr.Options())

	decoded := 0
	for {
		img, err := sr.ReadFrame()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.NotNil(t, img)
		decoded++
	}
	assert.Equal(t, frames, decoded)
}

func TestStreamFinalFrameMatchesEncoder(t *testing.T) {
	const w, h = 16, 16
	opts := &splash.Options{Radius: 2, PPF: 1, PPK: 1}

	var buf bytes.Buffer
	sw, err := splash.NewStreamWriter(&buf, w, h, opts)
	require.NoError(t, err)

	enc, err := splash.New(w, h, opts)
	require.NoError(t, err)
	defer enc.Close()

	target := makeTestImage(w, h)
	require.NoError(t, sw.WriteFrame(target))
	_, err = enc.Encode(target)
	require.NoError(t, err)
	require.NoError(t, sw.Close())

	sr, err := splash.NewStreamReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer sr.Close()

	img, err := sr.ReadFrame()
	require.NoError(t, err)
	rgbEqual(t, enc.Frame(), img, w, h)
}

func TestStreamReadPacket(t *testing.T) {
	const w, h = 8, 8

	var buf bytes.Buffer
	sw, err := splash.NewStreamWriter(&buf, w, h, nil)
	require.NoError(t, err)
	require.NoError(t, sw.WriteFrame(makeTestImage(w, h)))
	require.NoError(t, sw.Close())

	sr, err := splash.NewStreamReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer sr.Close()

	pkt, err := sr.ReadPacket()
	require.NoError(t, err)
	hdr, err := splash.ParseHeader(pkt)
	require.NoError(t, err)
	assert.Equal(t, splash.DefaultOptions().Radius, hdr.Radius)

	_, err = sr.ReadPacket()
	assert.Equal(t, io.EOF, err)
}

func TestStreamBadHeader(t *testing.T) {
	_, err := splash.NewStreamReader(bytes.NewReader([]byte("not a splash stream at all, not even close")))
	assert.ErrorIs(t, err, splash.ErrStreamMagic)

	_, err = splash.NewStreamReader(bytes.NewReader([]byte("SPLS")))
	assert.Error(t, err) // truncated header
}
