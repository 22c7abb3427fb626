package roidata

import (
	"github.com/google/uuid"
	"gorgonia.org/tensor"
)

// Blob names expected by the network heads
const (
	BlobMaskROIs     = "mask_rois"
	BlobRoIHasMask   = "roi_has_mask_int32"
	BlobMasks        = "masks_int32"
	BlobCarClsLabels = "car_cls_labels_int32"
	BlobQuaternions  = "quaternions"
	BlobCarTrans     = "car_trans"
)

// Blobs is the set of dense arrays produced for one image of the minibatch.
type Blobs struct {
	// Identifier used to correlate log messages
	ID uuid.UUID
	// float32 [nMasks, 5]: (batchIndex, x1, y1, x2, y2)
	MaskROIs *tensor.Dense
	// int32 [nProposals]
	RoIHasMask *tensor.Dense
	// int32 [nMasks, R*R] or [nMasks, numClasses*R*R]
	Masks *tensor.Dense
	// int32 [nProposals]
	CarClsLabels *tensor.Dense
	// float32 [nProposals, 4]
	Quaternions *tensor.Dense
	// float32 [nProposals, 3]
	CarTrans *tensor.Dense
}

// Named returns blobs keyed by network blob names
func (blobs *Blobs) Named() map[string]*tensor.Dense {
	return map[string]*tensor.Dense{
		BlobMaskROIs:     blobs.MaskROIs,
		BlobRoIHasMask:   blobs.RoIHasMask,
		BlobMasks:        blobs.Masks,
		BlobCarClsLabels: blobs.CarClsLabels,
		BlobQuaternions:  blobs.Quaternions,
		BlobCarTrans:     blobs.CarTrans,
	}
}

// newBlobs serializes targets into tensors. Unset targets become -1 labels and -100 regressions.
func newBlobs(masks *MaskTargets, orientations []OrientationTarget, translations []TranslationTarget) *Blobs {
	nMasks := len(masks.Rows)
	rois := make([]float32, 0, nMasks*5)
	for _, roi := range masks.ROIs {
		row := roi.Row()
		rois = append(rois, row[:]...)
	}

	width := 0
	if nMasks > 0 {
		width = len(masks.Rows[0].Values)
	}
	maskData := make([]int32, 0, nMasks*width)
	for _, row := range masks.Rows {
		for _, v := range row.Values {
			maskData = append(maskData, int32(v))
		}
	}

	hasMask := make([]int32, len(masks.HasMask))
	copy(hasMask, masks.HasMask)

	labels := make([]int32, len(orientations))
	quaternions := make([]float32, 0, len(orientations)*4)
	for i, target := range orientations {
		label, quaternion := target.Serialize()
		labels[i] = label
		quaternions = append(quaternions, quaternion[:]...)
	}

	trans := make([]float32, 0, len(translations)*3)
	for _, target := range translations {
		t := target.Serialize()
		trans = append(trans, t[:]...)
	}

	return &Blobs{
		ID:           uuid.New(),
		MaskROIs:     tensor.New(tensor.WithShape(nMasks, 5), tensor.WithBacking(rois)),
		RoIHasMask:   tensor.New(tensor.WithShape(len(hasMask)), tensor.WithBacking(hasMask)),
		Masks:        tensor.New(tensor.WithShape(nMasks, width), tensor.WithBacking(maskData)),
		CarClsLabels: tensor.New(tensor.WithShape(len(labels)), tensor.WithBacking(labels)),
		Quaternions:  tensor.New(tensor.WithShape(len(orientations), 4), tensor.WithBacking(quaternions)),
		CarTrans:     tensor.New(tensor.WithShape(len(translations), 3), tensor.WithBacking(trans)),
	}
}
