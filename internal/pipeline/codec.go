package pipeline

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/AnyUserName/imgpress/internal/encoder"
	"github.com/AnyUserName/imgpress/internal/format"
	"golang.org/x/image/bmp"
)

// Codec decodes source images and encodes them into a target format.
type Codec interface {
	// Decode reads an image that must be in format f and reports the name
	// of the format it was decoded as.
	Decode(r io.Reader, f format.Format) (image.Image, string, error)

	// Encode serializes img as f using p.
	Encode(img image.Image, f format.Format, p encoder.Params) ([]byte, error)
}

// ImageCodec picks the decoder from the format named by the file extension,
// never from the content, and encodes through package encoder. Content that
// does not match its extension fails to decode.
type ImageCodec struct{}

func (ImageCodec) Decode(r io.Reader, f format.Format) (image.Image, string, error) {
	var (
		img image.Image
		err error
	)
	switch f {
	case format.PNG:
		img, err = png.Decode(r)
	case format.JPEG:
		img, err = jpeg.Decode(r)
	case format.GIF:
		img, err = gif.Decode(r)
	case format.BMP:
		img, err = bmp.Decode(r)
	default:
		return nil, "", fmt.Errorf("no decoder for %s", f)
	}
	if err != nil {
		return nil, "", err
	}
	return img, f.String(), nil
}

func (ImageCodec) Encode(img image.Image, f format.Format, p encoder.Params) ([]byte, error) {
	enc, err := encoder.For(f, p)
	if err != nil {
		return nil, err
	}
	return enc.Encode(img)
}
