// Package bulkcropper provides batch cropping of image folders.
//
// It applies one fixed-size, anchor-positioned crop to every image in a
// directory, optionally splitting each image into two pages around a center
// gutter first (scanned book spreads), and writes the results under
// predictable names with collision control.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"log"
//
//		bulkcropper "github.com/menta2k/bulk-cropper"
//		"github.com/menta2k/bulk-cropper/pkg/batch"
//		"github.com/menta2k/bulk-cropper/pkg/geometry"
//		"github.com/menta2k/bulk-cropper/pkg/split"
//	)
//
//	func main() {
//		cropper := bulkcropper.New()
//
//		job := batch.JobConfig{
//			InputDir:      "./scans",
//			OutputDir:     "./cropped",
//			Crop:          geometry.CropSpec{Width: 800, Height: 1200, Anchor: geometry.Top},
//			Split:         split.Vertical,
//			Gutter:        24,
//			AddSizeSuffix: true,
//		}
//
//		summary, err := cropper.CropDirectory(context.Background(), job, nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//		log.Printf("Processed: %d, Skipped: %d", summary.Processed, summary.Skipped)
//	}
//
// The package consists of five main components:
//
// 1. Geometry (pkg/geometry): Anchor vocabulary and clamped crop placement
// 2. Split (pkg/split): Page splitting with gutter removal and mirrored anchors
// 3. Codec (pkg/codec): Image decoding, cropping, and encoding
// 4. Batch (pkg/batch): The sequential run loop with per-file outcomes
// 5. Preview (pkg/preview): Dry-run crop rectangles and overlay rendering
//
// Features:
//
//   - Nine-position anchor grid (corners, edges, center) with clamped placement
//   - Vertical and horizontal page splitting with center gutter removal
//   - Mirrored anchors on the second page, so both pages crop from the same
//     side relative to the spine
//   - Per-file outcome reporting (processed, skipped, failed) through an
//     observer interface
//   - JPEG, PNG, and WebP output with configurable quality
//   - Natural-order input enumeration (page_2 before page_10)
//
// Every crop is an exact-size extraction: images whose (split) regions are
// smaller than the requested size are skipped, never upscaled. The geometry
// is pure and shared between the real run and the preview, so the overlay
// always shows exactly what a run would write.
package bulkcropper

import (
	"context"
	"fmt"
	"image"

	"github.com/menta2k/bulk-cropper/internal/utils"
	"github.com/menta2k/bulk-cropper/pkg/batch"
	"github.com/menta2k/bulk-cropper/pkg/codec"
	"github.com/menta2k/bulk-cropper/pkg/preview"
	"github.com/menta2k/bulk-cropper/pkg/scanner"
	"github.com/menta2k/bulk-cropper/pkg/split"
)

// Version of the bulk cropper library
const Version = "1.0.0"

// BulkCropper provides a high-level interface for batch cropping
type BulkCropper struct {
	codec      *codec.Codec
	runner     *batch.Runner
	extensions []string
}

// New creates a new BulkCropper with default configuration
func New() *BulkCropper {
	return NewWithConfig(codec.Default(), scanner.DefaultExtensions())
}

// NewWithConfig creates a new BulkCropper with custom codec settings and
// input extension filter
func NewWithConfig(codecConfig codec.Config, extensions []string) *BulkCropper {
	c := codec.NewWithConfig(codecConfig)
	if len(extensions) == 0 {
		extensions = scanner.DefaultExtensions()
	}
	return &BulkCropper{
		codec:      c,
		runner:     batch.NewWithCodec(c),
		extensions: extensions,
	}
}

// CropDirectory scans job.InputDir and crops every matching image into
// job.OutputDir, creating the output folder if it does not exist. The
// returned error covers configuration problems only (invalid job, missing
// input directory, unusable output folder, empty folder); per-file failures
// are reported in the Summary and through the observer.
func (bc *BulkCropper) CropDirectory(ctx context.Context, job batch.JobConfig, obs batch.Observer) (batch.Summary, error) {
	if obs == nil {
		obs = batch.NopObserver{}
	}

	if err := job.Validate(); err != nil {
		return batch.Summary{}, fmt.Errorf("invalid job: %w", err)
	}

	if err := utils.EnsureDir(job.OutputDir); err != nil {
		return batch.Summary{}, fmt.Errorf("cannot create output folder: %w", err)
	}
	if !utils.DirExists(job.OutputDir) {
		return batch.Summary{}, fmt.Errorf("output path %s is not a folder", job.OutputDir)
	}

	files, err := scanner.ScanExtensions(job.InputDir, bc.extensions)
	if err != nil {
		return batch.Summary{}, err
	}
	if len(files) == 0 {
		return batch.Summary{}, fmt.Errorf("no images found in %s", job.InputDir)
	}

	if job.Split == split.None {
		obs.Message(fmt.Sprintf("Found %d images. Starting...", len(files)))
	} else {
		obs.Message(fmt.Sprintf("Found %d images. Split: %s. Starting...", len(files), job.Split))
	}

	return bc.runner.Run(ctx, files, job, obs), nil
}

// PreviewFile loads one image and renders the dry-run overlay for the job:
// the regions a run would extract are shown at full brightness and outlined,
// the rest of the frame is dimmed. Nothing is written to disk.
func (bc *BulkCropper) PreviewFile(path string, job batch.JobConfig) (*image.NRGBA, error) {
	img, err := bc.codec.Decode(path)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	return preview.Render(img, preview.Regions(b.Dx(), b.Dy(), job)), nil
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
