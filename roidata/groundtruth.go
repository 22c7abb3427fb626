package roidata

// Instance is one ground-truth annotation of an image.
type Instance struct {
	// Detection class, 0 is background.
	Class int32 `json:"class"`
	// Crowd regions never receive mask targets.
	IsCrowd bool `json:"is_crowd"`
	// Annotated box in inclusive pixel coordinates.
	Box Box `json:"box"`
	// Instance segmentation.
	Segm RLE `json:"segm"`
	// Rotation (3) followed by translation (3).
	Pose [6]float32 `json:"pose"`
	// Fine-grained car category.
	CarClass int32 `json:"car_class"`
	// Orientation as quaternion.
	Quaternion [4]float32 `json:"quaternion"`
}

// Translation returns the last three components of the pose
func (inst *Instance) Translation() [3]float32 {
	return [3]float32{inst.Pose[3], inst.Pose[4], inst.Pose[5]}
}

// Countable reports whether the instance may serve as a mask target
func (inst *Instance) Countable() bool {
	return inst.Class > 0 && !inst.IsCrowd
}

// GroundTruth holds annotations of a single image.
type GroundTruth struct {
	Instances []Instance `json:"instances"`
	// BoxToGT maps an index in the image's box list to an index in Instances, -1 when unmatched.
	BoxToGT []int `json:"box_to_gt"`
}

// countable returns indices of instances eligible for mask targets
func (gt *GroundTruth) countable() []int {
	inds := make([]int, 0, len(gt.Instances))
	for i := range gt.Instances {
		if gt.Instances[i].Countable() {
			inds = append(inds, i)
		}
	}
	return inds
}

// Proposal is one sampled region of interest.
type Proposal struct {
	Box Box `json:"box"`
	// Assigned class, 0 is background.
	Label int32 `json:"label"`
	// Index of the box in the image's box list (the key space of GroundTruth.BoxToGT).
	SourceIndex int `json:"source_index"`
}

// Sample is the set of proposals sampled for one image of the minibatch.
type Sample struct {
	Proposals  []Proposal `json:"proposals"`
	ImageScale float32    `json:"image_scale"`
	BatchIndex int        `json:"batch_index"`
}

// Boxes returns proposal boxes in order
func (s *Sample) Boxes() []Box {
	boxes := make([]Box, len(s.Proposals))
	for i := range s.Proposals {
		boxes[i] = s.Proposals[i].Box
	}
	return boxes
}

// Labels returns proposal labels in order
func (s *Sample) Labels() []int32 {
	labels := make([]int32, len(s.Proposals))
	for i := range s.Proposals {
		labels[i] = s.Proposals[i].Label
	}
	return labels
}

// ForegroundIndices returns source indices of proposals with positive label, in proposal order
func (s *Sample) ForegroundIndices() []int {
	inds := make([]int, 0, len(s.Proposals))
	for i := range s.Proposals {
		if s.Proposals[i].Label > 0 {
			inds = append(inds, s.Proposals[i].SourceIndex)
		}
	}
	return inds
}
