package roidata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func carGroundTruth() *GroundTruth {
	return &GroundTruth{
		Instances: []Instance{
			{Class: 1, CarClass: 7, Quaternion: [4]float32{1, 0, 0, 0}, Pose: [6]float32{0.1, 0.2, 0.3, 3, 4, 5}},
			{Class: 1, CarClass: 12, Quaternion: [4]float32{0, 1, 0, 0}, Pose: [6]float32{0, 0, 0, -1, 1, 9}},
		},
		// Boxes 0 and 1 are the annotations themselves, box 2 is a background proposal, box 3 overlaps instance 1
		BoxToGT: []int{0, 1, -1, 1},
	}
}

func TestAttachOrientationLabels(t *testing.T) {
	targets, err := AttachOrientationLabels(carGroundTruth(), []int{3, 0}, 4)
	require.NoError(t, err)
	require.Len(t, targets, 4)

	// Rows follow the order of foreground indices, not box positions
	assert.Equal(t, OrientationTarget{Valid: true, CarClass: 12, Quaternion: [4]float32{0, 1, 0, 0}}, targets[0])
	assert.Equal(t, OrientationTarget{Valid: true, CarClass: 7, Quaternion: [4]float32{1, 0, 0, 0}}, targets[1])
	assert.False(t, targets[2].Valid)
	assert.False(t, targets[3].Valid)

	label, quaternion := targets[3].Serialize()
	assert.Equal(t, int32(-1), label)
	assert.Equal(t, [4]float32{-100, -100, -100, -100}, quaternion)
}

func TestAttachOrientationLabelsUnmapped(t *testing.T) {
	gt := carGroundTruth()
	cases := []struct {
		name   string
		fgInds []int
	}{
		{"background box", []int{0, 2}},
		{"outside of map", []int{4}},
		{"negative index", []int{-1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			targets, err := AttachOrientationLabels(gt, tc.fgInds, 5)
			assert.ErrorIs(t, err, ErrUnmappedForeground)
			assert.Nil(t, targets)

			trans, err := AttachTranslationLabels(gt, tc.fgInds, 5, DefaultConfig().TransHead)
			assert.ErrorIs(t, err, ErrUnmappedForeground)
			assert.Nil(t, trans)
		})
	}

	_, err := AttachOrientationLabels(nil, []int{0}, 2)
	assert.ErrorIs(t, err, ErrUnmappedForeground)
	_, err = AttachTranslationLabels(nil, []int{0}, 2, DefaultConfig().TransHead)
	assert.ErrorIs(t, err, ErrUnmappedForeground)

	// Without foreground boxes nothing is looked up
	targets, err := AttachOrientationLabels(nil, nil, 2)
	require.NoError(t, err)
	assert.Len(t, targets, 2)

	gt.BoxToGT[2] = 5
	_, err = AttachOrientationLabels(gt, []int{2}, 4)
	assert.ErrorIs(t, err, ErrUnmappedForeground)
}

func TestAttachTranslationLabels(t *testing.T) {
	norm := TransConfig{
		Mean: [3]float32{1, 1, 1},
		Std:  [3]float32{2, 2, 2},
	}
	targets, err := AttachTranslationLabels(carGroundTruth(), []int{0, 1}, 3, norm)
	require.NoError(t, err)
	require.Len(t, targets, 3)

	require.True(t, targets[0].Valid)
	assert.InDeltaSlice(t, []float32{1.0, 1.5, 2.0}, targets[0].Translation[:], eps)
	require.True(t, targets[1].Valid)
	assert.InDeltaSlice(t, []float32{-1.0, 0.0, 4.0}, targets[1].Translation[:], eps)
	assert.Equal(t, [3]float32{-100, -100, -100}, targets[2].Serialize())
}

func TestAttachLabelsTooManyForeground(t *testing.T) {
	_, err := AttachOrientationLabels(carGroundTruth(), []int{0, 1}, 1)
	assert.Error(t, err)
	_, err = AttachTranslationLabels(carGroundTruth(), []int{0, 1}, 1, DefaultConfig().TransHead)
	assert.Error(t, err)
}
