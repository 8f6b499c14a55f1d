package preview

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"

	"github.com/menta2k/bulk-cropper/pkg/batch"
	"github.com/menta2k/bulk-cropper/pkg/geometry"
	"github.com/menta2k/bulk-cropper/pkg/split"
)

// Region is one rectangle a job would extract from a source image.
type Region struct {
	Tag    split.Tag
	Bounds image.Rectangle // absolute source coordinates
	Anchor geometry.Anchor
}

// Regions computes the crop rectangles a job would extract from a w x h
// source, using the same planning and anchoring as the batch run. Halves too
// small for the requested crop are omitted; a degenerate split yields none.
func Regions(w, h int, cfg batch.JobConfig) []Region {
	halves := split.Plan(w, h, cfg.Split, cfg.Gutter, cfg.Crop.Anchor)
	regions := make([]Region, 0, len(halves))
	for _, half := range halves {
		hw, hh := half.Bounds.Dx(), half.Bounds.Dy()
		if !cfg.Crop.FitsIn(hw, hh) {
			continue
		}
		rect := geometry.CropRect(hw, hh, cfg.Crop.Width, cfg.Crop.Height, half.Anchor).
			Add(half.Bounds.Min)
		regions = append(regions, Region{Tag: half.Tag, Bounds: rect, Anchor: half.Anchor})
	}
	return regions
}

// Render draws a dry-run overlay onto a copy of img: everything outside the
// regions is dimmed to half brightness and each kept region is outlined.
func Render(img image.Image, regions []Region) *image.NRGBA {
	out := imaging.Clone(img)
	w := out.Bounds().Dx()
	h := out.Bounds().Dy()

	// Dim the whole frame, then restore the kept regions from the source.
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i+0] >>= 1
		out.Pix[i+1] >>= 1
		out.Pix[i+2] >>= 1
	}
	srcMin := img.Bounds().Min
	for _, rg := range regions {
		r := rg.Bounds.Intersect(out.Bounds())
		if r.Empty() {
			continue
		}
		draw.Draw(out, r, img, srcMin.Add(r.Min), draw.Src)
	}

	gold := color.NRGBA{255, 204, 0, 255}
	stroke := int(math.Max(2, 0.004*float64(minInt(w, h)))) // ~0.4% of min side
	for _, rg := range regions {
		drawRect(out, rg.Bounds, gold, stroke)
	}

	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func drawRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA, stroke int) {
	for s := 0; s < stroke; s++ {
		drawHLine(img, r.Min.Y+s, r.Min.X, r.Max.X, c)
		drawHLine(img, r.Max.Y-1-s, r.Min.X, r.Max.X, c)
		drawVLine(img, r.Min.X+s, r.Min.Y, r.Max.Y, c)
		drawVLine(img, r.Max.X-1-s, r.Min.Y, r.Max.Y, c)
	}
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	if y < 0 || y >= img.Bounds().Dy() {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x1 <= 0 || x0 >= img.Bounds().Dx() {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > img.Bounds().Dx() {
		x1 = img.Bounds().Dx()
	}
	i := y*img.Stride + x0*4
	for x := x0; x < x1; x++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if x < 0 || x >= img.Bounds().Dx() {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y1 <= 0 || y0 >= img.Bounds().Dy() {
		return
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 > img.Bounds().Dy() {
		y1 = img.Bounds().Dy()
	}
	i := y0*img.Stride + x*4
	for y := y0; y < y1; y++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += img.Stride
	}
}
