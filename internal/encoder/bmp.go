package encoder

import (
	"bytes"
	"image"

	"github.com/AnyUserName/imgpress/internal/format"
	"golang.org/x/image/bmp"
)

// BMPEncoder writes an uncompressed bitmap: 24-bit for opaque images,
// 32-bit when the image has transparency, 8-bit for paletted input.
type BMPEncoder struct{}

func (e *BMPEncoder) Format() format.Format { return format.BMP }
func (e *BMPEncoder) Extension() string     { return "bmp" }

func (e *BMPEncoder) Encode(img image.Image) ([]byte, error) {
	b := img.Bounds()
	var buf bytes.Buffer
	buf.Grow(54 + b.Dx()*b.Dy()*4)

	if err := bmp.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
