package main

import (
	"os"

	"github.com/LdDl/mrcnn-targets/roidata"
	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"
	"github.com/goccy/go-json"
)

type blobSummary struct {
	Name  string `json:"name"`
	Dtype string `json:"dtype"`
	Shape []int  `json:"shape"`
}

type summary struct {
	ID    string        `json:"id"`
	Blobs []blobSummary `json:"blobs"`
}

var blobOrder = []string{
	roidata.BlobMaskROIs,
	roidata.BlobRoIHasMask,
	roidata.BlobMasks,
	roidata.BlobCarClsLabels,
	roidata.BlobQuaternions,
	roidata.BlobCarTrans,
}

func main() {
	logger, err := logs.NewLog()
	if err != nil {
		panic(err)
	}

	parser := argparse.NewParser("roitargets", "Build Mask R-CNN and car pose training blobs for a single image record")
	configFilename := parser.String("c", "config", &argparse.Options{Help: "YAML configuration file (defaults are used if omitted)"})
	recordFilename := parser.String("r", "record", &argparse.Options{Help: "JSON record with sampled proposals and ground truth", Required: true})
	outputFilename := parser.String("o", "output", &argparse.Options{Help: "Write JSON summary of produced blobs to this file"})
	err = parser.Parse(os.Args)
	if err != nil {
		logger.Errorf(parser.Usage(err))
		os.Exit(1)
	}

	cfg := roidata.DefaultConfig()
	if *configFilename != "" {
		cfg, err = roidata.LoadConfig(*configFilename)
		if err != nil {
			logger.Errorf("Failed to load configuration '%v': %v", *configFilename, err)
			os.Exit(1)
		}
	}

	builder, err := roidata.NewBuilder(cfg, logger)
	if err != nil {
		logger.Errorf("Failed to create builder: %v", err)
		os.Exit(1)
	}

	file, err := os.Open(*recordFilename)
	if err != nil {
		logger.Errorf("Failed to open record '%v': %v", *recordFilename, err)
		os.Exit(1)
	}
	record, err := roidata.ReadRecord(file)
	file.Close()
	if err != nil {
		logger.Errorf("Failed to read record '%v': %v", *recordFilename, err)
		os.Exit(1)
	}

	blobs, err := builder.Build(&record.Sample, &record.GroundTruth)
	if err != nil {
		logger.Errorf("Failed to build blobs: %v", err)
		os.Exit(1)
	}

	result := summary{ID: blobs.ID.String()}
	named := blobs.Named()
	for _, name := range blobOrder {
		blob := named[name]
		logger.Infof("%-22s %-8v %v", name, blob.Dtype(), blob.Shape())
		result.Blobs = append(result.Blobs, blobSummary{
			Name:  name,
			Dtype: blob.Dtype().String(),
			Shape: []int(blob.Shape()),
		})
	}

	if *outputFilename != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			logger.Errorf("Failed to encode summary: %v", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*outputFilename, data, 0644); err != nil {
			logger.Errorf("Failed to write summary '%v': %v", *outputFilename, err)
			os.Exit(1)
		}
	}
}
