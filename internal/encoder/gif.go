package encoder

import (
	"bytes"
	"image"
	"image/draw"

	"github.com/AnyUserName/imgpress/internal/format"
	"github.com/disintegration/imaging"
)

// ditherMaxSpeed is the highest speed that still uses error diffusion.
const ditherMaxSpeed = 10

// GIFEncoder encodes a single-frame GIF with a 256-colour palette.
// Speed is the quantizer's pixel sampling stride: 1 looks at every pixel,
// 30 at every thirtieth. Above ditherMaxSpeed pixels are mapped to the
// nearest palette entry without dithering.
//
// Paletted input (e.g. a decoded GIF) keeps its palette.
type GIFEncoder struct {
	Speed int
}

func (e *GIFEncoder) Format() format.Format { return format.GIF }
func (e *GIFEncoder) Extension() string     { return "gif" }

func (e *GIFEncoder) Encode(img image.Image) ([]byte, error) {
	speed := ClampSpeed(e.Speed)

	var drawer draw.Drawer = draw.FloydSteinberg
	if speed > ditherMaxSpeed {
		drawer = draw.Src
	}

	var buf bytes.Buffer
	err := imaging.Encode(&buf, img, imaging.GIF,
		imaging.GIFNumColors(256),
		imaging.GIFQuantizer(popularityQuantizer{stride: speed}),
		imaging.GIFDrawer(drawer),
	)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
