package roidata

import (
	"image"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

var (
	ErrInvalidRLE = errors.New("invalid run-length encoded mask")
)

// RLE is a run-length encoded binary mask of Height x Width pixels.
// Pixels are traversed column by column and Counts alternate between runs of zeros and ones,
// always starting with zeros (possibly an empty run).
type RLE struct {
	Height int
	Width  int
	Counts []uint32
}

// NewRLEFromBitmap encodes every non-zero pixel of the bitmap as foreground.
func NewRLEFromBitmap(bitmap *image.Gray) RLE {
	bounds := bitmap.Bounds()
	h, w := bounds.Dy(), bounds.Dx()
	counts := make([]uint32, 0, 8)
	var current uint8
	var run uint32
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			v := uint8(0)
			if bitmap.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y > 0 {
				v = 1
			}
			if v != current {
				counts = append(counts, run)
				run = 0
				current = v
			}
			run++
		}
	}
	counts = append(counts, run)
	return RLE{Height: h, Width: w, Counts: counts}
}

// DecodeRLEString parses COCO compressed counts string.
func DecodeRLEString(height, width int, s string) (RLE, error) {
	counts := make([]uint32, 0, len(s)/2)
	deltas := make([]int64, 0, len(s)/2)
	p := 0
	for p < len(s) {
		var x int64
		k := 0
		more := true
		for more {
			if p >= len(s) {
				return RLE{}, errors.Wrapf(ErrInvalidRLE, "truncated counts string at byte %d", p)
			}
			c := int64(s[p]) - 48
			if c < 0 || c > 63 {
				return RLE{}, errors.Wrapf(ErrInvalidRLE, "unexpected character %q", s[p])
			}
			x |= (c & 0x1f) << (5 * k)
			more = c&0x20 != 0
			p++
			k++
			if !more && c&0x10 != 0 {
				x |= -1 << (5 * k)
			}
		}
		m := len(deltas)
		if m > 2 {
			x += deltas[m-2]
		}
		if x < 0 {
			return RLE{}, errors.Wrapf(ErrInvalidRLE, "negative run length %d", x)
		}
		deltas = append(deltas, x)
		counts = append(counts, uint32(x))
	}
	rle := RLE{Height: height, Width: width, Counts: counts}
	if err := rle.validate(); err != nil {
		return RLE{}, err
	}
	return rle, nil
}

// String returns COCO compressed counts string
func (rle RLE) String() string {
	var sb strings.Builder
	for i, cnt := range rle.Counts {
		x := int64(cnt)
		if i > 2 {
			x -= int64(rle.Counts[i-2])
		}
		more := true
		for more {
			c := x & 0x1f
			x >>= 5
			if c&0x10 != 0 {
				more = x != -1
			} else {
				more = x != 0
			}
			if more {
				c |= 0x20
			}
			sb.WriteByte(byte(c + 48))
		}
	}
	return sb.String()
}

func (rle RLE) validate() error {
	if rle.Height < 0 || rle.Width < 0 {
		return errors.Wrapf(ErrInvalidRLE, "negative size %dx%d", rle.Width, rle.Height)
	}
	var total uint64
	for _, cnt := range rle.Counts {
		total += uint64(cnt)
	}
	if total != uint64(rle.Height)*uint64(rle.Width) {
		return errors.Wrapf(ErrInvalidRLE, "counts sum to %d, expected %d", total, rle.Height*rle.Width)
	}
	return nil
}

// Bitmap decodes mask. Foreground pixels are 255, background ones are 0
func (rle RLE) Bitmap() (*image.Gray, error) {
	if err := rle.validate(); err != nil {
		return nil, err
	}
	bitmap := image.NewGray(image.Rect(0, 0, rle.Width, rle.Height))
	pos := 0
	for i, cnt := range rle.Counts {
		if i%2 == 1 {
			for k := pos; k < pos+int(cnt); k++ {
				x := k / rle.Height
				y := k % rle.Height
				bitmap.Pix[y*bitmap.Stride+x] = 255
			}
		}
		pos += int(cnt)
	}
	return bitmap, nil
}

// Area returns number of foreground pixels
func (rle RLE) Area() int {
	area := 0
	for i := 1; i < len(rle.Counts); i += 2 {
		area += int(rle.Counts[i])
	}
	return area
}

// Box returns the tightest box around foreground pixels in inclusive corners.
// Empty mask gives zero box.
func (rle RLE) Box() Box {
	if rle.Height == 0 {
		return Box{}
	}
	minX, minY := rle.Width, rle.Height
	maxX, maxY := -1, -1
	pos := 0
	for i, cnt := range rle.Counts {
		if i%2 == 1 && cnt > 0 {
			start, end := pos, pos+int(cnt)-1
			xs, xe := start/rle.Height, end/rle.Height
			minX = min(minX, xs)
			maxX = max(maxX, xe)
			if xs == xe {
				minY = min(minY, start%rle.Height)
				maxY = max(maxY, end%rle.Height)
			} else {
				// Run wraps over a column boundary and so touches both image borders
				minY = 0
				maxY = rle.Height - 1
			}
		}
		pos += int(cnt)
	}
	if maxX < 0 {
		return Box{}
	}
	return NewBox(float32(minX), float32(minY), float32(maxX), float32(maxY))
}

type rleJSON struct {
	Size   [2]int          `json:"size"`
	Counts json.RawMessage `json:"counts"`
}

// UnmarshalJSON accepts both compressed ("counts": "...") and plain ("counts": [..]) forms.
func (rle *RLE) UnmarshalJSON(data []byte) error {
	var raw rleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "Can't parse RLE")
	}
	height, width := raw.Size[0], raw.Size[1]
	var compressed string
	if err := json.Unmarshal(raw.Counts, &compressed); err == nil {
		decoded, err := DecodeRLEString(height, width, compressed)
		if err != nil {
			return err
		}
		*rle = decoded
		return nil
	}
	var counts []uint32
	if err := json.Unmarshal(raw.Counts, &counts); err != nil {
		return errors.Wrap(err, "Can't parse RLE counts")
	}
	decoded := RLE{Height: height, Width: width, Counts: counts}
	if err := decoded.validate(); err != nil {
		return err
	}
	*rle = decoded
	return nil
}

// MarshalJSON always writes compressed form
func (rle RLE) MarshalJSON() ([]byte, error) {
	counts, err := json.Marshal(rle.String())
	if err != nil {
		return nil, err
	}
	return json.Marshal(rleJSON{
		Size:   [2]int{rle.Height, rle.Width},
		Counts: counts,
	})
}
