package encoder

import (
	"fmt"
	"strings"

	"github.com/AnyUserName/imgpress/internal/format"
)

// Registry holds one configured encoder per supported format.
type Registry struct {
	params   Params
	encoders map[format.Format]Encoder
}

// NewRegistry creates encoders for every format in format.All, all sharing
// the (clamped) parameters p.
func NewRegistry(p Params) *Registry {
	r := &Registry{
		params:   p.Clamped(),
		encoders: make(map[format.Format]Encoder),
	}
	for _, f := range format.All() {
		if enc, err := For(f, r.params); err == nil {
			r.encoders[f] = enc
		}
	}
	return r
}

// Params returns the clamped parameters the encoders were built with.
func (r *Registry) Params() Params {
	return r.params
}

// Get returns the encoder for f.
func (r *Registry) Get(f format.Format) (Encoder, error) {
	enc, ok := r.encoders[f]
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrUnsupportedFormat, f)
	}
	return enc, nil
}

// Available returns the registered formats in listing order.
func (r *Registry) Available() []format.Format {
	var result []format.Format
	for _, f := range format.All() {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// Describe returns a one-line summary of the encoder for f and the
// parameters it honours.
func (r *Registry) Describe(f format.Format) string {
	exts := strings.Join(f.Extensions(), ", ")
	switch f {
	case format.PNG:
		return fmt.Sprintf("%-5s %-12s lossless, best compression, adaptive row filters", f, exts)
	case format.JPEG:
		return fmt.Sprintf("%-5s %-12s lossy, quality %d-%d", f, exts, MinQuality, MaxQuality)
	case format.BMP:
		return fmt.Sprintf("%-5s %-12s uncompressed", f, exts)
	case format.GIF:
		return fmt.Sprintf("%-5s %-12s 256-colour palette + LZW, speed %d-%d", f, exts, MinSpeed, MaxSpeed)
	}
	return f.String()
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	names := make([]string, len(avail))
	for i, f := range avail {
		names[i] = f.String()
	}
	return fmt.Sprintf("encoders: %s (quality=%d, speed=%d)",
		strings.Join(names, ", "), r.params.Quality, r.params.Speed)
}
