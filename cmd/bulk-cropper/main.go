package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	bulkcropper "github.com/menta2k/bulk-cropper"
	"github.com/menta2k/bulk-cropper/internal/config"
	"github.com/menta2k/bulk-cropper/internal/utils"
	"github.com/menta2k/bulk-cropper/pkg/batch"
	"github.com/menta2k/bulk-cropper/pkg/codec"
	"github.com/menta2k/bulk-cropper/pkg/geometry"
	"github.com/menta2k/bulk-cropper/pkg/scanner"
	"github.com/menta2k/bulk-cropper/pkg/split"
)

// consoleObserver renders run feedback through the standard logger
type consoleObserver struct{}

func (consoleObserver) Progress(done, total int) {
	log.Printf("[%d/%d]", done, total)
}

func (consoleObserver) Message(line string) {
	log.Println(line)
}

func (consoleObserver) Finished(processed, skipped int) {
	log.Printf("Done. Processed: %d, Skipped: %d.", processed, skipped)
}

func main() {
	var in, out, anchorName, splitName string
	var width, height, gutter, quality int
	var sizeSuffix, overwrite, saveConfig bool
	var configPath, previewPath string

	flag.StringVar(&in, "in", "", "input folder with images")
	flag.StringVar(&out, "out", "out", "output folder")

	flag.IntVar(&width, "width", 0, "crop width in pixels")
	flag.IntVar(&height, "height", 0, "crop height in pixels")
	flag.StringVar(&anchorName, "anchor", "center", "crop anchor: combinations of top/center/bottom and left/center/right, e.g. top-left")
	flag.StringVar(&splitName, "split", "none", "split each image before cropping: none|vertical|horizontal")
	flag.IntVar(&gutter, "gutter", 0, "pixels removed from the center seam when splitting")

	flag.BoolVar(&sizeSuffix, "size-suffix", true, "append _crop_WxH to output names")
	flag.BoolVar(&overwrite, "overwrite", false, "replace existing output files")
	flag.IntVar(&quality, "quality", 0, "JPEG output quality 1-100 (0 = from config)")

	flag.StringVar(&configPath, "config", "", "config file path (default: user config dir)")
	flag.BoolVar(&saveConfig, "save-config", false, "write the active configuration to the config file and exit")
	flag.StringVar(&previewPath, "preview", "", "write a dry-run overlay of the first image to this path and exit")

	flag.Parse()

	cfg := loadConfig(configPath)

	codecConfig := codec.Config{
		JPEGQuality:  cfg.Codec.JPEGQuality,
		WebPQuality:  cfg.Codec.WebPQuality,
		WebPLossless: cfg.Codec.WebPLossless,
	}
	if quality > 0 {
		codecConfig.JPEGQuality = quality
	}

	// Explicit flags win over the naming defaults from the config file.
	addSizeSuffix := cfg.Naming.AddSizeSuffix
	replaceExisting := cfg.Naming.Overwrite
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size-suffix":
			addSizeSuffix = sizeSuffix
		case "overwrite":
			replaceExisting = overwrite
		}
	})

	if saveConfig {
		writeConfig(cfg, codecConfig, addSizeSuffix, replaceExisting, configPath)
		return
	}

	if in == "" || width <= 0 || height <= 0 {
		log.Fatalf("usage: %s -in folder -width W -height H [-out folder] [-anchor center] [-split none|vertical|horizontal] [-gutter N] [-preview overlay.png]", filepath.Base(os.Args[0]))
	}

	anchor, err := geometry.ParseAnchor(anchorName)
	if err != nil {
		log.Fatal(err)
	}
	mode, err := split.ParseMode(splitName)
	if err != nil {
		log.Fatal(err)
	}

	job := batch.JobConfig{
		InputDir:      in,
		OutputDir:     out,
		Crop:          geometry.CropSpec{Width: width, Height: height, Anchor: anchor},
		Split:         mode,
		Gutter:        gutter,
		AddSizeSuffix: addSizeSuffix,
		Overwrite:     replaceExisting,
	}

	cropper := bulkcropper.NewWithConfig(codecConfig, cfg.Scanner.Extensions)

	if previewPath != "" {
		writePreview(cropper, codecConfig, cfg.Scanner.Extensions, job, previewPath)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := cropper.CropDirectory(ctx, job, consoleObserver{}); err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the config file, falling back to defaults when none exists
func loadConfig(path string) *config.Config {
	explicit := path != ""
	if path == "" {
		path = config.GetConfigPath()
	}

	if !utils.FileExists(path) {
		if explicit {
			log.Fatalf("config file not found: %s", path)
		}
		return config.Default()
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config %s: %v", path, err)
	}
	return cfg
}

// writeConfig persists the active settings, flags merged in, for future runs
func writeConfig(cfg *config.Config, codecConfig codec.Config, sizeSuffix, overwrite bool, path string) {
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg.Codec.JPEGQuality = codecConfig.JPEGQuality
	cfg.Codec.WebPQuality = codecConfig.WebPQuality
	cfg.Codec.WebPLossless = codecConfig.WebPLossless
	cfg.Naming.AddSizeSuffix = sizeSuffix
	cfg.Naming.Overwrite = overwrite

	if err := cfg.SaveToFile(path); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", path)
}

// writePreview renders the dry-run overlay for the first scanned image
func writePreview(cropper *bulkcropper.BulkCropper, codecConfig codec.Config, exts []string, job batch.JobConfig, dest string) {
	files, err := scanner.ScanExtensions(job.InputDir, exts)
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		log.Fatalf("no images found in %s", job.InputDir)
	}

	overlay, err := cropper.PreviewFile(files[0], job)
	if err != nil {
		log.Fatal(err)
	}

	if err := codec.NewWithConfig(codecConfig).Encode(overlay, dest); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", dest)
}
