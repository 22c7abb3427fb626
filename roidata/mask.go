package roidata

import (
	"image"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// MaskWrtBox rasterizes the part of the mask inside box into a resolution x resolution grid.
// Every cell samples the crop at its centre. Result is flattened row by row and contains
// only MaskBackground and MaskForeground values.
func MaskWrtBox(rle RLE, box Box, resolution int, interp Interpolation) ([]MaskValue, error) {
	if resolution <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "mask resolution must be positive, got %d", resolution)
	}
	bitmap, err := rle.Bitmap()
	if err != nil {
		return nil, errors.Wrap(err, "Can't decode mask")
	}
	crop := cropBitmap(bitmap, box.PixelRect())
	grid := image.NewGray(image.Rect(0, 0, resolution, resolution))
	interp.scaler().Scale(grid, grid.Bounds(), crop, crop.Bounds(), draw.Src, nil)
	values := make([]MaskValue, resolution*resolution)
	for y := 0; y < resolution; y++ {
		for x := 0; x < resolution; x++ {
			if grid.Pix[grid.PixOffset(x, y)] > 0 {
				values[y*resolution+x] = MaskForeground
			}
		}
	}
	return values, nil
}

// cropBitmap copies window of the bitmap into a new image with origin at (0,0).
// Pixels of the window lying outside the bitmap are zero.
func cropBitmap(bitmap *image.Gray, window image.Rectangle) *image.Gray {
	crop := image.NewGray(image.Rect(0, 0, window.Dx(), window.Dy()))
	visible := window.Intersect(bitmap.Bounds())
	if visible.Empty() {
		return crop
	}
	for y := visible.Min.Y; y < visible.Max.Y; y++ {
		src := bitmap.Pix[bitmap.PixOffset(visible.Min.X, y):bitmap.PixOffset(visible.Max.X, y)]
		dst := crop.Pix[crop.PixOffset(visible.Min.X-window.Min.X, y-window.Min.Y):]
		copy(dst, src)
	}
	return crop
}
