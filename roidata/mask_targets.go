package roidata

import (
	"github.com/pkg/errors"
)

var (
	ErrNoProposals     = errors.New("no proposals sampled")
	ErrNoBackground    = errors.New("neither foreground nor background proposals sampled")
	ErrNoGroundTruth   = errors.New("foreground proposals without countable ground-truth instances")
	ErrClassOutOfRange = errors.New("class label out of range")
)

// BuildMaskTargets associates one ground-truth mask to every foreground proposal and rasterizes it.
//
// Every foreground proposal (label > 0) is paired with the countable instance of highest box IoU
// (ties go to the lowest instance index) and receives the instance mask cropped to the proposal box.
// ROIs are scaled by imageScale and tagged with batchIndex.
//
// When there are no foreground proposals the first background proposal becomes a placeholder row
// with an all-ignore mask and class 0, and HasMask is set at position 0 (not at the placeholder's position).
func BuildMaskTargets(cfg Config, proposals []Box, labels []int32, gt *GroundTruth, imageScale float32, batchIndex int) (*MaskTargets, error) {
	if len(proposals) != len(labels) {
		return nil, errors.Errorf("proposals and labels arrays must have the same length. Proposals: %d. Labels: %d", len(proposals), len(labels))
	}
	if len(proposals) == 0 {
		return nil, ErrNoProposals
	}
	resolution := cfg.Mask.Resolution
	gridSize := resolution * resolution

	hasMask := make([]int32, len(labels))
	fgInds := make([]int, 0, len(labels))
	for i, label := range labels {
		hasMask[i] = label
		if label > 0 {
			hasMask[i] = 1
			fgInds = append(fgInds, i)
		}
	}

	var rois []Box
	var rows []MaskRow
	if len(fgInds) > 0 {
		if gt == nil {
			return nil, ErrNoGroundTruth
		}
		gtInds := gt.countable()
		if len(gtInds) == 0 {
			return nil, ErrNoGroundTruth
		}
		gtBoxes := make([]Box, len(gtInds))
		for j, gtIdx := range gtInds {
			inst := &gt.Instances[gtIdx]
			if cfg.Mask.BoxesFromMasks {
				gtBoxes[j] = inst.Segm.Box()
			} else {
				gtBoxes[j] = inst.Box
			}
		}
		rois = make([]Box, len(fgInds))
		for i, idx := range fgInds {
			rois[i] = proposals[idx]
		}
		// Matching is done by box overlap, not by mask shape
		matches := argmaxRows(Overlaps(rois, gtBoxes))

		rows = make([]MaskRow, len(fgInds))
		for i, idx := range fgInds {
			inst := &gt.Instances[gtInds[matches[i]]]
			values, err := MaskWrtBox(inst.Segm, rois[i], resolution, cfg.Mask.Interpolation)
			if err != nil {
				return nil, errors.Wrapf(err, "Can't rasterize mask of instance %d for proposal %d", gtInds[matches[i]], idx)
			}
			rows[i] = MaskRow{Class: labels[idx], Values: values}
		}
	} else {
		bgIdx := -1
		for i, label := range labels {
			if label == 0 {
				bgIdx = i
				break
			}
		}
		if bgIdx < 0 {
			return nil, ErrNoBackground
		}
		rois = []Box{proposals[bgIdx]}
		rows = []MaskRow{{Class: 0, Values: filledMask(gridSize, MaskIgnore)}}
		hasMask[0] = 1
	}

	if cfg.Mask.ClassSpecific {
		expanded, err := expandClassSpecific(rows, cfg.Model.NumClasses, gridSize)
		if err != nil {
			return nil, err
		}
		rows = expanded
	}

	targetROIs := make([]ROI, len(rois))
	for i := range rois {
		targetROIs[i] = ROI{BatchIndex: batchIndex, Box: rois[i].Scale(imageScale)}
	}
	return &MaskTargets{
		ROIs:    targetROIs,
		HasMask: hasMask,
		Rows:    rows,
	}, nil
}

// expandClassSpecific widens rows from gridSize to numClasses*gridSize cells.
// Only the slice of the row's class carries the mask, the rest is ignored.
// Background rows stay fully ignored.
func expandClassSpecific(rows []MaskRow, numClasses, gridSize int) ([]MaskRow, error) {
	expanded := make([]MaskRow, len(rows))
	for i, row := range rows {
		cls := int(row.Class)
		if cls < 0 || cls >= numClasses {
			return nil, errors.Wrapf(ErrClassOutOfRange, "class %d with %d classes", cls, numClasses)
		}
		values := filledMask(numClasses*gridSize, MaskIgnore)
		if cls > 0 {
			copy(values[cls*gridSize:(cls+1)*gridSize], row.Values)
		}
		expanded[i] = MaskRow{Class: row.Class, Values: values}
	}
	return expanded, nil
}
