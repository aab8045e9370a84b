package codec

import "sync"

// Registry manages the available codecs
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
}

var defaultRegistry = &Registry{
	codecs: make(map[string]Codec),
}

// Register registers a codec under its name
func Register(codec Codec) {
	defaultRegistry.Register(codec)
}

// Get retrieves a codec by name
func Get(name string) (Codec, error) {
	return defaultRegistry.Get(name)
}

// List returns all registered codecs
func List() []Codec {
	return defaultRegistry.List()
}

// Register registers a codec under its name
func (r *Registry) Register(codec Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[codec.Name()] = codec
}

// Get retrieves a codec by name
func (r *Registry) Get(name string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codec, ok := r.codecs[name]
	if !ok {
		return nil, ErrCodecNotFound
	}
	return codec, nil
}

// List returns all registered codecs
func (r *Registry) List() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codecs := make([]Codec, 0, len(r.codecs))
	for _, codec := range r.codecs {
		codecs = append(codecs, codec)
	}
	return codecs
}
