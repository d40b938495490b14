package encoder

import (
	"bytes"
	"image"
	"image/png"

	"github.com/AnyUserName/imgpress/internal/format"
	"github.com/disintegration/imaging"
)

// PNGEncoder encodes lossless PNG at the best compression level.
// The PNG writer picks the filter for every row individually.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() format.Format { return format.PNG }
func (e *PNGEncoder) Extension() string     { return "png" }

func (e *PNGEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(512 * 1024)

	err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
