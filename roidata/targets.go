package roidata

// MaskValue is a single cell of a mask target.
type MaskValue int8

const (
	// MaskIgnore cells are excluded from the loss
	MaskIgnore MaskValue = -1
	// MaskBackground cells are outside the instance
	MaskBackground MaskValue = 0
	// MaskForeground cells are inside the instance
	MaskForeground MaskValue = 1
)

const (
	// Serialized value of an unset car class label
	unsetLabel int32 = -1
	// Serialized value of an unset quaternion or translation component
	unsetRegression float32 = -100
)

// MaskRow is the mask target of one ROI.
type MaskRow struct {
	// Class the ROI was labeled with. Zero only for the placeholder row.
	Class  int32
	Values []MaskValue
}

// MaskTargets is the mask head part of a minibatch.
type MaskTargets struct {
	// One ROI per row of Rows.
	ROIs []ROI
	// Per proposal flag; see BuildMaskTargets for the placeholder case.
	HasMask []int32
	Rows    []MaskRow
}

// OrientationTarget is the car classification / orientation target of one row.
type OrientationTarget struct {
	Valid      bool
	CarClass   int32
	Quaternion [4]float32
}

// Serialize returns the label and quaternion, with sentinels for invalid rows
func (t OrientationTarget) Serialize() (int32, [4]float32) {
	if !t.Valid {
		return unsetLabel, [4]float32{unsetRegression, unsetRegression, unsetRegression, unsetRegression}
	}
	return t.CarClass, t.Quaternion
}

// TranslationTarget is the normalized car translation target of one row.
type TranslationTarget struct {
	Valid       bool
	Translation [3]float32
}

// Serialize returns the translation, with sentinels for invalid rows
func (t TranslationTarget) Serialize() [3]float32 {
	if !t.Valid {
		return [3]float32{unsetRegression, unsetRegression, unsetRegression}
	}
	return t.Translation
}

func filledMask(size int, value MaskValue) []MaskValue {
	values := make([]MaskValue, size)
	for i := range values {
		values[i] = value
	}
	return values
}
