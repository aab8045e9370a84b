package splash

import "errors"

var (
	// ErrDimensions is returned when width or height is not positive,
	// or a frame does not match the codec dimensions
	ErrDimensions = errors.New("splash: invalid dimensions")

	// ErrRadiusRange is returned when the brush radius is outside 1..255
	// (the wire format stores the radius in a single byte)
	ErrRadiusRange = errors.New("splash: radius out of range")

	// ErrDivisorRange is returned when a pixel divisor (ppf/ppk) is below 1
	ErrDivisorRange = errors.New("splash: pixel divisor must be >= 1")

	// ErrClosed is returned when a codec is used after Close
	ErrClosed = errors.New("splash: codec closed")

	// ErrPacketShort is returned when a packet cannot hold the header
	// and both rulers
	ErrPacketShort = errors.New("splash: packet too short")

	// ErrPacketMagic is returned on a magic mismatch
	ErrPacketMagic = errors.New("splash: bad packet magic")

	// ErrPacketHeader is returned on an otherwise malformed header
	ErrPacketHeader = errors.New("splash: bad packet header")

	// ErrVersion is returned when the packet version is newer than this
	// implementation
	ErrVersion = errors.New("splash: unsupported packet version")
)
