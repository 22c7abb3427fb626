package roidata

import (
	"github.com/chewxy/math32"
	"gorgonia.org/tensor"
)

// IoU calculates Intersection over Union between two boxes.
// Boxes are in inclusive pixel coordinates, so a box [0,0,9,9] covers 100 pixels.
func IoU(b1, b2 Box) float32 {
	xA := math32.Max(b1.X1, b2.X1)
	yA := math32.Max(b1.Y1, b2.Y1)
	xB := math32.Min(b1.X2, b2.X2)
	yB := math32.Min(b1.Y2, b2.Y2)

	interW := xB - xA + 1
	interH := yB - yA + 1
	if interW <= 0 || interH <= 0 {
		return 0.0
	}
	interArea := interW * interH

	unionArea := b1.Area() + b2.Area() - interArea
	if unionArea <= 0 {
		return 0.0
	}
	return interArea / unionArea
}

// Overlaps builds the len(boxes) x len(query) matrix of pairwise IoU values.
func Overlaps(boxes, query []Box) *tensor.Dense {
	cols := len(query)
	data := make([]float32, len(boxes)*cols)
	for i := range boxes {
		for j := range query {
			data[i*cols+j] = IoU(boxes[i], query[j])
		}
	}
	return tensor.New(tensor.WithShape(len(boxes), cols), tensor.WithBacking(data))
}

// argmaxRows returns column of the maximum value for every row of 2-D float32 tensor.
// Only strictly greater values move the maximum, so ties go to the lowest column.
func argmaxRows(overlaps *tensor.Dense) []int {
	shape := overlaps.Shape()
	rows, cols := shape[0], shape[1]
	data := overlaps.Data().([]float32)
	result := make([]int, rows)
	for i := 0; i < rows; i++ {
		row := data[i*cols : (i+1)*cols]
		maxIdx := 0
		maxValue := row[0]
		for j := 1; j < cols; j++ {
			if row[j] > maxValue {
				maxValue = row[j]
				maxIdx = j
			}
		}
		result[i] = maxIdx
	}
	return result
}
