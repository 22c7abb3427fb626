package roidata

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Interpolation selects how cropped masks are resampled to the target resolution.
type Interpolation string

const (
	// InterpolationNearest takes the source pixel under the cell centre.
	InterpolationNearest Interpolation = "nearest"
	// InterpolationBilinear blends the 2x2 neighbourhood around the cell centre.
	// A cell becomes foreground when the blended value is above zero.
	InterpolationBilinear Interpolation = "bilinear"
)

func (interp Interpolation) scaler() draw.Scaler {
	if interp == InterpolationBilinear {
		return draw.ApproxBiLinear
	}
	return draw.NearestNeighbor
}

// MaskConfig holds mask head settings.
type MaskConfig struct {
	// Side of the square mask target grid.
	Resolution int `json:"resolution" yaml:"resolution"`
	// If true, mask targets are laid out per class.
	ClassSpecific bool `json:"cls_specific_mask" yaml:"cls_specific_mask"`
	// Resampling used to bring the cropped mask to Resolution x Resolution.
	Interpolation Interpolation `json:"interpolation" yaml:"interpolation"`
	// If true, ground-truth boxes used for matching are derived from the masks instead of annotations.
	BoxesFromMasks bool `json:"boxes_from_masks" yaml:"boxes_from_masks"`
}

// ModelConfig holds network-wide settings.
type ModelConfig struct {
	// Total number of classes including background.
	NumClasses int `json:"num_classes" yaml:"num_classes"`
}

// TransConfig holds translation head normalization constants.
type TransConfig struct {
	Mean [3]float32 `json:"trans_mean" yaml:"trans_mean"`
	Std  [3]float32 `json:"trans_std" yaml:"trans_std"`
}

// Config is the read-only training configuration consumed by target builders.
type Config struct {
	Mask      MaskConfig  `json:"mrcnn" yaml:"mrcnn"`
	Model     ModelConfig `json:"model" yaml:"model"`
	TransHead TransConfig `json:"trans_head" yaml:"trans_head"`
}

// DefaultConfig returns 28x28 class-specific masks for 81 classes and identity translation normalization.
func DefaultConfig() Config {
	return Config{
		Mask: MaskConfig{
			Resolution:    28,
			ClassSpecific: true,
			Interpolation: InterpolationNearest,
		},
		Model: ModelConfig{
			NumClasses: 81,
		},
		TransHead: TransConfig{
			Mean: [3]float32{0, 0, 0},
			Std:  [3]float32{1, 1, 1},
		},
	}
}

// Validate checks that configuration can be used for building targets
func (cfg Config) Validate() error {
	if cfg.Mask.Resolution <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "mask resolution must be positive, got %d", cfg.Mask.Resolution)
	}
	switch cfg.Mask.Interpolation {
	case InterpolationNearest, InterpolationBilinear, "":
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown interpolation '%s'", cfg.Mask.Interpolation)
	}
	if cfg.Model.NumClasses <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "number of classes must be positive, got %d", cfg.Model.NumClasses)
	}
	for axis, std := range cfg.TransHead.Std {
		if std == 0 {
			return errors.Wrapf(ErrInvalidConfig, "translation std for axis %d is zero", axis)
		}
	}
	return nil
}

// ParseConfig reads YAML configuration on top of DefaultConfig. Unknown fields are rejected.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "Can't decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads YAML configuration file
func LoadConfig(fname string) (Config, error) {
	file, err := os.Open(fname)
	if err != nil {
		return Config{}, errors.Wrap(err, "Can't open configuration file")
	}
	defer file.Close()
	return ParseConfig(file)
}
