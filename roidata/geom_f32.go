package roidata

import (
	"image"

	"github.com/chewxy/math32"
)

// Box is an axis-aligned box given by its corners (x1, y1) and (x2, y2).
// Width, Height, Area and IoU count corners as inclusive pixels (+1).
// PixelRect treats the box as continuous coordinates, so x2 and y2 are exclusive there.
type Box struct {
	X1 float32
	Y1 float32
	X2 float32
	Y2 float32
}

func NewBox(x1, y1, x2, y2 float32) Box {
	return Box{
		X1: x1,
		Y1: y1,
		X2: x2,
		Y2: y2,
	}
}

// NewBoxFrom converts image.Rectangle (exclusive Max) into inclusive corners.
func NewBoxFrom(rect image.Rectangle) Box {
	rect = rect.Canon()
	return Box{
		X1: float32(rect.Min.X),
		Y1: float32(rect.Min.Y),
		X2: float32(rect.Max.X - 1),
		Y2: float32(rect.Max.Y - 1),
	}
}

// Width returns box's width using inclusive pixel convention
func (b Box) Width() float32 {
	return b.X2 - b.X1 + 1
}

// Height returns box's height using inclusive pixel convention
func (b Box) Height() float32 {
	return b.Y2 - b.Y1 + 1
}

// Area returns box's area. Degenerate boxes have zero area
func (b Box) Area() float32 {
	return math32.Max(0, b.Width()) * math32.Max(0, b.Height())
}

// Scale multiplies every coordinate by factor
func (b Box) Scale(factor float32) Box {
	return Box{
		X1: b.X1 * factor,
		Y1: b.Y1 * factor,
		X2: b.X2 * factor,
		Y2: b.Y2 * factor,
	}
}

// PixelRect returns the pixel window [floor(x1), ceil(x2)) x [floor(y1), ceil(y2)) covered by the box.
// The window is at least 1x1 pixel.
func (b Box) PixelRect() image.Rectangle {
	x1 := int(math32.Floor(b.X1))
	y1 := int(math32.Floor(b.Y1))
	x2 := max(int(math32.Ceil(b.X2)), x1+1)
	y2 := max(int(math32.Ceil(b.Y2)), y1+1)
	return image.Rect(x1, y1, x2, y2)
}

// ROI is a box tagged with the index of the image inside the minibatch.
type ROI struct {
	BatchIndex int
	Box        Box
}

// Row returns ROI in the (batchIndex, x1, y1, x2, y2) layout.
func (roi ROI) Row() [5]float32 {
	return [5]float32{float32(roi.BatchIndex), roi.Box.X1, roi.Box.Y1, roi.Box.X2, roi.Box.Y2}
}
