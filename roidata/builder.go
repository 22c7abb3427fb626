package roidata

import (
	"github.com/cyclopcam/logs"
	"github.com/pkg/errors"
)

// Builder produces training blobs for mask and car pose heads.
// Safe for concurrent use.
type Builder struct {
	cfg Config
	log logs.Log
}

// NewBuilder creates builder with validated configuration
func NewBuilder(cfg Config, log logs.Log) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	return &Builder{
		cfg: cfg,
		log: log,
	}, nil
}

// Config returns builder's configuration
func (builder *Builder) Config() Config {
	return builder.cfg
}

// Build prepares mask, car class/orientation and car translation blobs for one image.
func (builder *Builder) Build(sample *Sample, gt *GroundTruth) (*Blobs, error) {
	labels := sample.Labels()
	fgInds := sample.ForegroundIndices()

	masks, err := BuildMaskTargets(builder.cfg, sample.Boxes(), labels, gt, sample.ImageScale, sample.BatchIndex)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't build mask targets for image %d", sample.BatchIndex)
	}
	if len(fgInds) == 0 {
		builder.log.Infof("No foreground rois for image %d, using placeholder mask target", sample.BatchIndex)
	}

	orientations, err := AttachOrientationLabels(gt, fgInds, len(labels))
	if err != nil {
		return nil, errors.Wrapf(err, "Can't attach orientation labels for image %d", sample.BatchIndex)
	}
	translations, err := AttachTranslationLabels(gt, fgInds, len(labels), builder.cfg.TransHead)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't attach translation labels for image %d", sample.BatchIndex)
	}

	blobs := newBlobs(masks, orientations, translations)
	builder.log.Infof("Blobs %v for image %d: %d proposals, %d foreground, masks %v",
		blobs.ID, sample.BatchIndex, len(labels), len(fgInds), blobs.Masks.Shape())
	return blobs, nil
}
