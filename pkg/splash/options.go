package splash

// maxWireRadius is the largest radius the one-byte header field can carry.
const maxWireRadius = 255

// Options holds the encoder-side codec parameters.
type Options struct {
	// Radius is the brush radius in pixels (1..255).
	Radius int

	// PPF is the pixels-per-frame divisor: frames after the first stop
	// refining once width*height/PPF samples have been emitted. The
	// iteration that reaches that count runs to the end, so a frame can
	// carry a few samples more. PPF == 1 is lossless mode.
	PPF float32

	// PPK is the pixels-per-key-frame divisor, applied to the first
	// frame of a stream instead of PPF.
	PPK float32
}

// DefaultOptions returns the default parameter set.
func DefaultOptions() Options {
	return Options{Radius: 5, PPF: 1, PPK: 2}
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Radius < 1 || o.Radius > maxWireRadius {
		return ErrRadiusRange
	}
	if o.PPF < 1 || o.PPK < 1 {
		return ErrDivisorRange
	}
	return nil
}
