package roidata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	data := `
mrcnn:
  resolution: 14
  cls_specific_mask: false
  interpolation: bilinear
model:
  num_classes: 9
trans_head:
  trans_mean: [-3.1, 9.1, 50.5]
  trans_std: [14.0, 6.8, 32.0]
`
	cfg, err := ParseConfig(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.Mask.Resolution)
	assert.False(t, cfg.Mask.ClassSpecific)
	assert.Equal(t, InterpolationBilinear, cfg.Mask.Interpolation)
	assert.False(t, cfg.Mask.BoxesFromMasks)
	assert.Equal(t, 9, cfg.Model.NumClasses)
	assert.Equal(t, [3]float32{-3.1, 9.1, 50.5}, cfg.TransHead.Mean)
	assert.Equal(t, [3]float32{14.0, 6.8, 32.0}, cfg.TransHead.Std)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader("model:\n  num_classes: 2\n"))
	require.NoError(t, err)
	expected := DefaultConfig()
	expected.Model.NumClasses = 2
	assert.Equal(t, expected, cfg)

	cfg, err = ParseConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfigInvalid(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"zero resolution", "mrcnn:\n  resolution: 0\n"},
		{"no classes", "model:\n  num_classes: 0\n"},
		{"zero std", "trans_head:\n  trans_std: [1, 0, 1]\n"},
		{"unknown interpolation", "mrcnn:\n  interpolation: cubic\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig(strings.NewReader(tc.data))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := ParseConfig(strings.NewReader("mrcnn:\n  resolutoin: 14\n"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(fname, []byte("mrcnn:\n  resolution: 7\n"), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(fname)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Mask.Resolution)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
