package encoder

import (
	"bytes"
	"image"

	"github.com/AnyUserName/imgpress/internal/format"
	"github.com/disintegration/imaging"
)

// JPEGEncoder encodes baseline JPEG at a fixed quality.
type JPEGEncoder struct {
	Quality int
}

func (e *JPEGEncoder) Format() format.Format { return format.JPEG }
func (e *JPEGEncoder) Extension() string     { return "jpg" }

func (e *JPEGEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(256 * 1024)

	err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(ClampQuality(e.Quality)))
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
