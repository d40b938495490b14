package encoder

import (
	"image"
	"image/color"
	"sort"

	"github.com/disintegration/imaging"
)

// alphaThreshold is the alpha below which a pixel counts as transparent.
const alphaThreshold = 128

// popularityQuantizer implements draw.Quantizer. Colours are grouped into
// 5-bit-per-channel buckets and the most populated buckets become the
// palette, each represented by the mean of its members.
type popularityQuantizer struct {
	stride int // sample every stride-th pixel of each row
}

type colorBucket struct {
	key     uint16
	r, g, b uint64
	n       uint64
}

func (q popularityQuantizer) Quantize(p color.Palette, m image.Image) color.Palette {
	room := cap(p) - len(p)
	if room <= 0 {
		return p
	}
	stride := q.stride
	if stride < 1 {
		stride = 1
	}

	src := imaging.Clone(m)
	buckets := make(map[uint16]*colorBucket)
	transparent := false

	// Each row starts one pixel further along so every column is visited
	// even when the width is a multiple of stride.
	w, h := src.Rect.Dx(), src.Rect.Dy()
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := y % stride; x < w; x += stride {
			px := row[x*4 : x*4+4 : x*4+4]
			if px[3] < alphaThreshold {
				transparent = true
				continue
			}
			key := uint16(px[0]>>3)<<10 | uint16(px[1]>>3)<<5 | uint16(px[2]>>3)
			bk, ok := buckets[key]
			if !ok {
				bk = &colorBucket{key: key}
				buckets[key] = bk
			}
			bk.r += uint64(px[0])
			bk.g += uint64(px[1])
			bk.b += uint64(px[2])
			bk.n++
		}
	}

	if transparent {
		p = append(p, color.NRGBA{})
		room--
	}

	ranked := make([]*colorBucket, 0, len(buckets))
	for _, bk := range buckets {
		ranked = append(ranked, bk)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].n != ranked[j].n {
			return ranked[i].n > ranked[j].n
		}
		return ranked[i].key < ranked[j].key
	})
	if len(ranked) > room {
		ranked = ranked[:room]
	}

	for _, bk := range ranked {
		p = append(p, color.NRGBA{
			R: uint8(bk.r / bk.n),
			G: uint8(bk.g / bk.n),
			B: uint8(bk.b / bk.n),
			A: 0xff,
		})
	}

	if len(p) == 0 {
		p = append(p, color.NRGBA{A: 0xff})
	}
	return p
}
