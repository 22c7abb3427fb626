package roidata

import (
	"github.com/pkg/errors"
)

var (
	ErrUnmappedForeground = errors.New("foreground box has no ground-truth instance")
)

// lookupInstance follows the box to ground-truth map
func lookupInstance(gt *GroundTruth, boxIdx int) (*Instance, error) {
	if gt == nil {
		return nil, errors.Wrapf(ErrUnmappedForeground, "box %d without ground truth", boxIdx)
	}
	if boxIdx < 0 || boxIdx >= len(gt.BoxToGT) {
		return nil, errors.Wrapf(ErrUnmappedForeground, "box %d is outside of map with %d entries", boxIdx, len(gt.BoxToGT))
	}
	gtIdx := gt.BoxToGT[boxIdx]
	if gtIdx == -1 {
		return nil, errors.Wrapf(ErrUnmappedForeground, "box %d", boxIdx)
	}
	if gtIdx < 0 || gtIdx >= len(gt.Instances) {
		return nil, errors.Wrapf(ErrUnmappedForeground, "box %d points to instance %d of %d", boxIdx, gtIdx, len(gt.Instances))
	}
	return &gt.Instances[gtIdx], nil
}

// AttachOrientationLabels copies car class and quaternion of the matched instance for every foreground box.
// Row i describes fgInds[i]; rows from len(fgInds) to numSampled stay invalid.
// A foreground box without matched instance is an upstream bug and fails the whole call.
func AttachOrientationLabels(gt *GroundTruth, fgInds []int, numSampled int) ([]OrientationTarget, error) {
	if len(fgInds) > numSampled {
		return nil, errors.Errorf("more foreground boxes than sampled ones: %d > %d", len(fgInds), numSampled)
	}
	targets := make([]OrientationTarget, numSampled)
	for i, boxIdx := range fgInds {
		inst, err := lookupInstance(gt, boxIdx)
		if err != nil {
			return nil, err
		}
		targets[i] = OrientationTarget{
			Valid:      true,
			CarClass:   inst.CarClass,
			Quaternion: inst.Quaternion,
		}
	}
	return targets, nil
}

// AttachTranslationLabels normalizes translation of the matched instance for every foreground box
// as (t - mean) / std per axis. Row layout and failure rules match AttachOrientationLabels.
func AttachTranslationLabels(gt *GroundTruth, fgInds []int, numSampled int, norm TransConfig) ([]TranslationTarget, error) {
	if len(fgInds) > numSampled {
		return nil, errors.Errorf("more foreground boxes than sampled ones: %d > %d", len(fgInds), numSampled)
	}
	targets := make([]TranslationTarget, numSampled)
	for i, boxIdx := range fgInds {
		inst, err := lookupInstance(gt, boxIdx)
		if err != nil {
			return nil, err
		}
		targets[i] = TranslationTarget{
			Valid:       true,
			Translation: normalizeTranslation(inst.Translation(), norm),
		}
	}
	return targets, nil
}

func normalizeTranslation(trans [3]float32, norm TransConfig) [3]float32 {
	var result [3]float32
	for axis := range trans {
		result[axis] = (trans[axis] - norm.Mean[axis]) / norm.Std[axis]
	}
	return result
}
