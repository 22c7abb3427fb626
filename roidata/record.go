package roidata

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Record bundles one image's sampled proposals with its annotations.
type Record struct {
	Sample      Sample      `json:"sample"`
	GroundTruth GroundTruth `json:"ground_truth"`
}

// ReadRecord decodes JSON record
func ReadRecord(r io.Reader) (*Record, error) {
	record := Record{
		Sample: Sample{ImageScale: 1.0},
	}
	if err := json.NewDecoder(r).Decode(&record); err != nil {
		return nil, errors.Wrap(err, "Can't decode record")
	}
	if len(record.Sample.Proposals) == 0 {
		return nil, ErrNoProposals
	}
	return &record, nil
}

// UnmarshalJSON reads box as [x1, y1, x2, y2]
func (b *Box) UnmarshalJSON(data []byte) error {
	var coords [4]float32
	if err := json.Unmarshal(data, &coords); err != nil {
		return errors.Wrap(err, "Can't parse box")
	}
	*b = NewBox(coords[0], coords[1], coords[2], coords[3])
	return nil
}

// MarshalJSON writes box as [x1, y1, x2, y2]
func (b Box) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float32{b.X1, b.Y1, b.X2, b.Y2})
}
