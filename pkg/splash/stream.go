package splash

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

/*
 * Stream container
 * +0  "SPLS"
 * +4  version
 * +5  flags (bit 0: zstd body)
 * +6  width, uint16 little endian
 * +8  height, uint16 little endian
 * +10 brush radius
 * +11 ppf, float32 little endian
 * +15 ppk, float32 little endian
 * +19 stream id, 16 bytes
 * +35 body: sequence of uint32-length-prefixed packets
 */
const (
	streamHeaderLength = 35
	streamVersion      = 1
	streamFlagZstd     = 1 << 0
)

var streamMagic = []byte("SPLS")

var (
	// ErrStreamMagic is returned when a container does not start with
	// the stream magic
	ErrStreamMagic = errors.New("splash: bad stream magic")

	// ErrStreamVersion is returned when the container version is newer
	// than this implementation
	ErrStreamVersion = errors.New("splash: unsupported stream version")
)

// StreamWriter writes a multi-frame .splash container. Frames share
// one codec context, so the canvas carries over from frame to frame
// exactly as the decoder will replay it.
type StreamWriter struct {
	codec  *Codec
	zw     *zstd.Encoder
	id     uuid.UUID
	frames int
}

// NewStreamWriter writes the container header to w and returns a
// writer for width x height frames. opts may be nil for defaults.
func NewStreamWriter(w io.Writer, width, height int, opts *Options) (*StreamWriter, error) {
	c, err := New(width, height, opts)
	if err != nil {
		return nil, err
	}
	if width > math.MaxUint16 || height > math.MaxUint16 {
		c.Close()
		return nil, fmt.Errorf("%w: %dx%d exceeds container limits", ErrDimensions, width, height)
	}

	id := uuid.New()
	hdr := make([]byte, streamHeaderLength)
	copy(hdr[0:4], streamMagic)
	hdr[4] = streamVersion
	hdr[5] = streamFlagZstd
	binary.LittleEndian.PutUint16(hdr[6:8], uint16(width))
	binary.LittleEndian.PutUint16(hdr[8:10], uint16(height))
	o := c.Options()
	hdr[10] = byte(o.Radius)
	binary.LittleEndian.PutUint32(hdr[11:15], math.Float32bits(o.PPF))
	binary.LittleEndian.PutUint32(hdr[15:19], math.Float32bits(o.PPK))
	copy(hdr[19:35], id[:])
	if _, err := w.Write(hdr); err != nil {
		c.Close()
		return nil, err
	}

	zw, err := zstd.NewWriter(w,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
	)
	if err != nil {
		c.Close()
		return nil, err
	}

	return &StreamWriter{codec: c, zw: zw, id: id}, nil
}

// ID returns the stream id stamped into the container header.
func (sw *StreamWriter) ID() uuid.UUID { return sw.id }

// Frames returns the number of frames written so far.
func (sw *StreamWriter) Frames() int { return sw.frames }

// WriteFrame encodes one frame and appends its packet to the body.
func (sw *StreamWriter) WriteFrame(img image.Image) error {
	pkt, err := sw.codec.Encode(img)
	if err != nil {
		return err
	}
	var length [4]byte
	binary.LittleEndian.PutUint32(length[:], uint32(len(pkt)))
	if _, err := sw.zw.Write(length[:]); err != nil {
		return err
	}
	if _, err := sw.zw.Write(pkt); err != nil {
		return err
	}
	sw.frames++
	return nil
}

// Close flushes the compressed body and releases the codec context.
func (sw *StreamWriter) Close() error {
	err := sw.zw.Close()
	sw.codec.Close()
	return err
}

// StreamReader reads a .splash container written by StreamWriter.
type StreamReader struct {
	codec *Codec
	body  io.Reader
	zr    *zstd.Decoder
	id    uuid.UUID
	opts  Options
}

// NewStreamReader parses the container header from r and prepares a
// reader that replays the stream frame by frame.
func NewStreamReader(r io.Reader) (*StreamReader, error) {
	hdr := make([]byte, streamHeaderLength)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, fmt.Errorf("splash: reading stream header: %w", err)
	}
	if !bytes.Equal(hdr[0:4], streamMagic) {
		return nil, ErrStreamMagic
	}
	if hdr[4] > streamVersion {
		return nil, fmt.Errorf("%w: version %d", ErrStreamVersion, hdr[4])
	}

	width := int(binary.LittleEndian.Uint16(hdr[6:8]))
	height := int(binary.LittleEndian.Uint16(hdr[8:10]))
	opts := Options{
		Radius: int(hdr[10]),
		PPF:    math.Float32frombits(binary.LittleEndian.Uint32(hdr[11:15])),
		PPK:    math.Float32frombits(binary.LittleEndian.Uint32(hdr[15:19])),
	}
	var id uuid.UUID
	copy(id[:], hdr[19:35])

	c, err := New(width, height, &opts)
	if err != nil {
		return nil, err
	}

	sr := &StreamReader{codec: c, body: r, id: id, opts: opts}
	if hdr[5]&streamFlagZstd != 0 {
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			c.Close()
			return nil, err
		}
		sr.zr = zr
		sr.body = zr
	}
	return sr, nil
}

// Width returns the frame width declared by the container.
func (sr *StreamReader) Width() int { return sr.codec.Width() }

// Height returns the frame height declared by the container.
func (sr *StreamReader) Height() int { return sr.codec.Height() }

// ID returns the stream id from the container header.
func (sr *StreamReader) ID() uuid.UUID { return sr.id }

// Options returns the encoder parameters recorded in the header.
func (sr *StreamReader) Options() Options { return sr.opts }

// ReadPacket returns the next raw packet, or io.EOF at a clean end of
// stream.
func (sr *StreamReader) ReadPacket() ([]byte, error) {
	var length [4]byte
	if _, err := io.ReadFull(sr.body, length[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("splash: reading packet length: %w", err)
	}
	pkt := make([]byte, binary.LittleEndian.Uint32(length[:]))
	if _, err := io.ReadFull(sr.body, pkt); err != nil {
		return nil, fmt.Errorf("splash: reading packet: %w", err)
	}
	return pkt, nil
}

// ReadFrame decodes the next frame, or returns io.EOF at the end of
// the stream.
func (sr *StreamReader) ReadFrame() (*image.RGBA, error) {
	pkt, err := sr.ReadPacket()
	if err != nil {
		return nil, err
	}
	return sr.codec.Decode(pkt)
}

// Close releases the codec context and the decompressor.
func (sr *StreamReader) Close() {
	if sr.zr != nil {
		sr.zr.Close()
	}
	sr.codec.Close()
}
