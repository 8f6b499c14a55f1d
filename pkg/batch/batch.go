package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/menta2k/bulk-cropper/internal/utils"
	"github.com/menta2k/bulk-cropper/pkg/codec"
	"github.com/menta2k/bulk-cropper/pkg/geometry"
	"github.com/menta2k/bulk-cropper/pkg/split"
)

// JobConfig describes one batch run. It is built once from user input and
// read-only for the duration of the run.
type JobConfig struct {
	InputDir      string            `json:"input_dir"`
	OutputDir     string            `json:"output_dir"`
	Crop          geometry.CropSpec `json:"crop"`
	Split         split.Mode        `json:"split"`
	Gutter        int               `json:"gutter"`
	AddSizeSuffix bool              `json:"add_size_suffix"`
	Overwrite     bool              `json:"overwrite"`
}

// Validate checks the run parameters. Directory existence is the surface's
// concern; this only rejects values no run could use.
func (c JobConfig) Validate() error {
	if err := c.Crop.Validate(); err != nil {
		return err
	}
	if c.Gutter < 0 {
		return fmt.Errorf("gutter must be non-negative, got %d", c.Gutter)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	return nil
}

// DestinationPath returns where the crop of src tagged tag is written:
// the source stem, "_left"-style half tag when the image was split, an
// optional "_crop_WxH" size suffix, and the source extension lowercased,
// joined onto the output directory.
func (c JobConfig) DestinationPath(src string, tag split.Tag) string {
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	name := stem
	if tag != split.TagFull {
		name += "_" + string(tag)
	}
	if c.AddSizeSuffix {
		name += fmt.Sprintf("_crop_%dx%d", c.Crop.Width, c.Crop.Height)
	}
	return filepath.Join(c.OutputDir, name+strings.ToLower(ext))
}

// Status classifies the result of one file × half attempt.
type Status int

// Outcome statuses.
const (
	StatusProcessed Status = iota
	StatusSkippedTooLarge
	StatusSkippedExists
	StatusSkippedDegenerateSplit
	StatusFailed
)

var statusNames = [...]string{
	"processed",
	"skipped-too-large",
	"skipped-exists",
	"skipped-degenerate-split",
	"failed",
}

func (s Status) String() string {
	if s < StatusProcessed || s > StatusFailed {
		return "invalid"
	}
	return statusNames[s]
}

// Outcome records what happened to one half of one source file. Whole-file
// outcomes (decode failure, degenerate split) leave Tag empty.
type Outcome struct {
	Source      string
	Tag         split.Tag
	Status      Status
	Destination string // written or colliding file, when one was determined
	Reason      string // human-readable detail for skips and failures
}

// Message renders the observer line for this outcome.
func (o Outcome) Message() string {
	name := filepath.Base(o.Source)
	switch o.Status {
	case StatusProcessed:
		return fmt.Sprintf("OK: %s [%s] -> %s", name, o.Tag, filepath.Base(o.Destination))
	case StatusSkippedTooLarge:
		return fmt.Sprintf("SKIP: %s [%s]: %s.", name, o.Tag, o.Reason)
	case StatusSkippedExists:
		return fmt.Sprintf("SKIP: %s exists (overwrite disabled).", filepath.Base(o.Destination))
	case StatusSkippedDegenerateSplit:
		return fmt.Sprintf("SKIP: %s: split gutter leaves no region to crop.", name)
	case StatusFailed:
		return fmt.Sprintf("ERROR: %s: %s", name, o.Reason)
	}
	return ""
}

// Observer receives run feedback. Progress ticks once per source file,
// Message once per outcome plus once for cancellation, and Finished exactly
// once at the very end. Callbacks run on the batch goroutine.
type Observer interface {
	Progress(done, total int)
	Message(line string)
	Finished(processed, skipped int)
}

// NopObserver discards every callback.
type NopObserver struct{}

func (NopObserver) Progress(done, total int)        {}
func (NopObserver) Message(line string)             {}
func (NopObserver) Finished(processed, skipped int) {}

// Summary aggregates one finished run.
type Summary struct {
	Processed int
	Skipped   int
	Cancelled bool
	Outcomes  []Outcome
}

// Runner executes batch crop jobs, one file at a time. Sequential processing
// bounds peak memory to a single decoded image no matter how large the
// input folder is.
type Runner struct {
	codec *codec.Codec
}

// New creates a Runner with a default codec.
func New() *Runner {
	return &Runner{codec: codec.New()}
}

// NewWithCodec creates a Runner using the given codec.
func NewWithCodec(c *codec.Codec) *Runner {
	return &Runner{codec: c}
}

// Run processes files in the order given. Cancellation via ctx is polled
// once per file before decoding, so a cancelled run never leaves a file
// half-attempted; the cancellation message and the final aggregate are still
// reported. Codec and filesystem errors become Failed outcomes for the
// affected file and the run continues; a single bad file never aborts the
// batch. The returned Summary owns every emitted Outcome.
func (r *Runner) Run(ctx context.Context, files []string, cfg JobConfig, obs Observer) Summary {
	if obs == nil {
		obs = NopObserver{}
	}

	var sum Summary
	defer func() { obs.Finished(sum.Processed, sum.Skipped) }()

	total := len(files)
	for i, path := range files {
		if ctx.Err() != nil {
			obs.Message("Cancelled by user.")
			sum.Cancelled = true
			return sum
		}

		r.processFile(path, cfg, obs, &sum)
		obs.Progress(i+1, total)
	}
	return sum
}

// processFile attempts every half of one source file. A too-large half does
// not stop the file's other halves; a codec failure abandons the rest of
// the file.
func (r *Runner) processFile(path string, cfg JobConfig, obs Observer, sum *Summary) {
	record := func(o Outcome) {
		sum.Outcomes = append(sum.Outcomes, o)
		obs.Message(o.Message())
	}

	img, err := r.codec.Decode(path)
	if err != nil {
		record(Outcome{Source: path, Status: StatusFailed, Reason: err.Error()})
		sum.Skipped++
		return
	}

	bounds := img.Bounds()
	halves := split.Plan(bounds.Dx(), bounds.Dy(), cfg.Split, cfg.Gutter, cfg.Crop.Anchor)
	if len(halves) == 0 {
		record(Outcome{Source: path, Status: StatusSkippedDegenerateSplit})
		sum.Skipped++
		return
	}

	for _, half := range halves {
		hw, hh := half.Bounds.Dx(), half.Bounds.Dy()
		if !cfg.Crop.FitsIn(hw, hh) {
			record(Outcome{
				Source: path,
				Tag:    half.Tag,
				Status: StatusSkippedTooLarge,
				Reason: fmt.Sprintf("requested %dx%d larger than region %dx%d",
					cfg.Crop.Width, cfg.Crop.Height, hw, hh),
			})
			sum.Skipped++
			continue
		}

		// Anchor the crop inside the half, then shift into source coordinates.
		rect := geometry.CropRect(hw, hh, cfg.Crop.Width, cfg.Crop.Height, half.Anchor).
			Add(half.Bounds.Min)

		cropped, err := r.codec.Crop(img, rect)
		if err != nil {
			record(Outcome{Source: path, Tag: half.Tag, Status: StatusFailed, Reason: err.Error()})
			sum.Skipped++
			return
		}

		dst := cfg.DestinationPath(path, half.Tag)
		if utils.FileExists(dst) && !cfg.Overwrite {
			record(Outcome{Source: path, Tag: half.Tag, Status: StatusSkippedExists, Destination: dst})
			sum.Skipped++
			continue
		}

		if err := r.codec.Encode(cropped, dst); err != nil {
			record(Outcome{Source: path, Tag: half.Tag, Status: StatusFailed, Reason: err.Error()})
			sum.Skipped++
			return
		}

		record(Outcome{Source: path, Tag: half.Tag, Status: StatusProcessed, Destination: dst})
		sum.Processed++
	}
}
