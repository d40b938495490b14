package encoder

import (
	"errors"
	"fmt"
	"image"

	"github.com/AnyUserName/imgpress/internal/format"
)

// ErrUnsupportedFormat is returned when no encoder exists for a format.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Encoder serializes an image into one file format. Each implementation
// carries the parameters that apply to its format.
type Encoder interface {
	// Format returns the format this encoder produces.
	Format() format.Format

	// Encode serializes img into a new buffer.
	Encode(img image.Image) ([]byte, error)

	// Extension returns the canonical file extension without dot.
	Extension() string
}

// For returns the encoder for f configured from p. Quality and speed are
// clamped before use, so any Params value is accepted.
func For(f format.Format, p Params) (Encoder, error) {
	p = p.Clamped()
	switch f {
	case format.PNG:
		return &PNGEncoder{}, nil
	case format.JPEG:
		return &JPEGEncoder{Quality: p.Quality}, nil
	case format.BMP:
		return &BMPEncoder{}, nil
	case format.GIF:
		return &GIFEncoder{Speed: p.Speed}, nil
	}
	return nil, fmt.Errorf("%w %s", ErrUnsupportedFormat, f)
}
