package splash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rockingship/splash.go/pkg/splash"
)

// validPacket encodes a small frame to get a well-formed packet.
func validPacket(t *testing.T, w, h int) []byte {
	t.Helper()
	enc, err := splash.New(w, h, &splash.Options{Radius: 2, PPF: 1, PPK: 1})
	require.NoError(t, err)
	defer enc.Close()
	pkt, err := enc.Encode(makeTestImage(w, h))
	require.NoError(t, err)
	return pkt
}

func TestParseHeader(t *testing.T) {
	pkt := validPacket(t, 4, 4)
	hdr, err := splash.ParseHeader(pkt)
	require.NoError(t, err)
	assert.Equal(t, 12, hdr.Length)
	assert.Equal(t, 1, hdr.Version)
	assert.Equal(t, 2, hdr.Radius)
}

func TestDecodeMalformedPacket(t *testing.T) {
	const w, h = 4, 4

	mutate := func(ofs int, v byte) []byte {
		pkt := validPacket(t, w, h)
		pkt[ofs] = v
		return pkt
	}

	for _, tc := range []struct {
		name string
		pkt  []byte
		want error
	}{
		{name: "empty", pkt: nil, want: splash.ErrPacketShort},
		{name: "header_only_prefix", pkt: validPacket(t, w, h)[:8], want: splash.ErrPacketShort},
		{name: "missing_rulers", pkt: validPacket(t, w, h)[:12+5], want: splash.ErrPacketShort},
		{name: "bad_header_length", pkt: mutate(0, 13), want: splash.ErrPacketHeader},
		{name: "bad_magic", pkt: mutate(3, 'x'), want: splash.ErrPacketMagic},
		{name: "future_version", pkt: mutate(9, 2), want: splash.ErrVersion},
		{name: "zero_radius", pkt: mutate(10, 0), want: splash.ErrPacketHeader},
		{name: "compression_tag", pkt: mutate(11, 1), want: splash.ErrPacketHeader},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dec, err := splash.New(w, h, nil)
			require.NoError(t, err)
			defer dec.Close()

			out, err := dec.Decode(tc.pkt)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, out, "malformed packet must not export the canvas")
		})
	}
}

func TestDecodeVersionZeroAccepted(t *testing.T) {
	// version 0 predates the current format but is not newer than it
	pkt := validPacket(t, 4, 4)
	pkt[9] = 0

	dec, err := splash.New(4, 4, nil)
	require.NoError(t, err)
	defer dec.Close()

	_, err = dec.Decode(pkt)
	assert.NoError(t, err)
}
