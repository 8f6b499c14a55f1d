package codec

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Config holds encoder settings.
type Config struct {
	JPEGQuality  int
	WebPQuality  int
	WebPLossless bool
}

// Default returns the default encoder settings.
func Default() Config {
	return Config{
		JPEGQuality:  95,
		WebPQuality:  90,
		WebPLossless: false,
	}
}

// Codec loads, crops and writes image files. Decoding understands JPEG, PNG,
// GIF, TIFF, BMP and WebP; encoding is selected by the destination file
// extension (jpg/jpeg, png, webp).
type Codec struct {
	config Config
}

// New creates a Codec with default settings.
func New() *Codec {
	return &Codec{config: Default()}
}

// NewWithConfig creates a Codec with custom settings.
func NewWithConfig(config Config) *Codec {
	return &Codec{config: config}
}

// Decode loads an image from a file. Formats registered with the standard
// decoder are tried first, then a dedicated WebP fallback.
func (c *Codec) Decode(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err == nil {
		return img, nil
	}

	f, openErr := os.Open(path)
	if openErr != nil {
		return nil, fmt.Errorf("failed to open image file: %w", openErr)
	}
	defer f.Close()

	if img, werr := webp.Decode(f); werr == nil {
		return img, nil
	}
	if _, serr := f.Seek(0, 0); serr == nil {
		if img, _, derr := image.Decode(f); derr == nil {
			return img, nil
		}
	}
	return nil, fmt.Errorf("failed to decode image: %w", err)
}

// Crop copies the given sub-rectangle out of the image. The rectangle is in
// the image's own coordinate space and must overlap it.
func (c *Codec) Crop(img image.Image, rect image.Rectangle) (*image.NRGBA, error) {
	clipped := rect.Intersect(img.Bounds())
	if clipped.Empty() {
		return nil, fmt.Errorf("crop rectangle %v outside image bounds %v", rect, img.Bounds())
	}
	return imaging.Crop(img, clipped), nil
}

// Encode writes the image to path, choosing the format from the file
// extension. JPEG cannot carry transparency, so the buffer is flattened
// (see Flatten) before a JPEG encode; PNG and WebP keep alpha as-is.
func (c *Codec) Encode(img image.Image, path string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	switch ext {
	case "jpg", "jpeg":
		return imaging.Save(Flatten(img), path, imaging.JPEGQuality(c.config.JPEGQuality))
	case "png":
		return imaging.Save(img, path)
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		opts := &webp.Options{Lossless: c.config.WebPLossless, Quality: float32(c.config.WebPQuality)}
		return webp.Encode(f, img, opts)
	default:
		return fmt.Errorf("unsupported output format: %s", ext)
	}
}

// Flatten composites an image onto an opaque white background, discarding
// alpha and palette transparency. This is irreversible: semi-transparent
// pixels are blended with white and cannot be recovered from the output.
func Flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	flat := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(flat, flat.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, b.Min, draw.Over)
	return flat
}
