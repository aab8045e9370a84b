package codec

import (
	"image"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCodec struct {
	name string
}

func (f *fakeCodec) Encode(w io.Writer, img image.Image) error { return nil }

func (f *fakeCodec) Decode(data []byte, width, height int) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

func (f *fakeCodec) Name() string { return f.name }

func TestRegistryRegisterGet(t *testing.T) {
	r := &Registry{codecs: make(map[string]Codec)}

	c := &fakeCodec{name: "fake"}
	r.Register(c)

	got, err := r.Get("fake")
	require.NoError(t, err)
	assert.Same(t, Codec(c), got)
}

func TestRegistryNotFound(t *testing.T) {
	r := &Registry{codecs: make(map[string]Codec)}

	_, err := r.Get("missing")
	assert.ErrorIs(t, err, ErrCodecNotFound)
}

func TestRegistryList(t *testing.T) {
	r := &Registry{codecs: make(map[string]Codec)}
	r.Register(&fakeCodec{name: "a"})
	r.Register(&fakeCodec{name: "b"})
	r.Register(&fakeCodec{name: "b"}) // re-register replaces

	assert.Len(t, r.List(), 2)
}

func TestDefaultRegistry(t *testing.T) {
	c := &fakeCodec{name: "default-registry-probe"}
	Register(c)

	got, err := Get("default-registry-probe")
	require.NoError(t, err)
	assert.Same(t, Codec(c), got)
}
