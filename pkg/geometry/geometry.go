package geometry

import (
	"encoding/json"
	"fmt"
	"image"
	"strings"
)

// XAlign selects which horizontal edge of a region survives a crop.
type XAlign int

// Horizontal alignments.
const (
	XLeft XAlign = iota
	XCenter
	XRight
)

// YAlign selects which vertical edge of a region survives a crop.
type YAlign int

// Vertical alignments.
const (
	YTop YAlign = iota
	YCenter
	YBottom
)

var xNames = [...]string{"left", "center", "right"}
var yNames = [...]string{"top", "center", "bottom"}

func (x XAlign) String() string {
	if x < XLeft || x > XRight {
		return "invalid"
	}
	return xNames[x]
}

func (y YAlign) String() string {
	if y < YTop || y > YBottom {
		return "invalid"
	}
	return yNames[y]
}

// Anchor names the corner, edge or center of a region that is kept when
// cropping; the opposite side is the one discarded.
type Anchor struct {
	X XAlign
	Y YAlign
}

// The nine possible anchors.
var (
	TopLeft     = Anchor{XLeft, YTop}
	Top         = Anchor{XCenter, YTop}
	TopRight    = Anchor{XRight, YTop}
	Left        = Anchor{XLeft, YCenter}
	Center      = Anchor{XCenter, YCenter}
	Right       = Anchor{XRight, YCenter}
	BottomLeft  = Anchor{XLeft, YBottom}
	Bottom      = Anchor{XCenter, YBottom}
	BottomRight = Anchor{XRight, YBottom}
)

// Mirror tables for split halves: left and right swap, top and bottom swap,
// center is its own mirror image.
var mirrorX = map[XAlign]XAlign{
	XLeft:   XRight,
	XCenter: XCenter,
	XRight:  XLeft,
}

var mirrorY = map[YAlign]YAlign{
	YTop:    YBottom,
	YCenter: YCenter,
	YBottom: YTop,
}

// MirrorX returns the anchor reflected across a vertical axis.
func (a Anchor) MirrorX() Anchor {
	return Anchor{X: mirrorX[a.X], Y: a.Y}
}

// MirrorY returns the anchor reflected across a horizontal axis.
func (a Anchor) MirrorY() Anchor {
	return Anchor{X: a.X, Y: mirrorY[a.Y]}
}

// String returns the canonical spelling accepted by ParseAnchor,
// e.g. "top-left" or "center".
func (a Anchor) String() string {
	switch {
	case a == Center:
		return "center"
	case a.X == XCenter:
		return a.Y.String()
	case a.Y == YCenter:
		return a.X.String()
	}
	return a.Y.String() + "-" + a.X.String()
}

// MarshalJSON encodes the anchor by its canonical name.
func (a Anchor) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes an anchor from its name.
func (a *Anchor) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseAnchor(name)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAnchor parses an anchor name such as "center", "left" or "top-right".
// Names are case-insensitive; underscores and spaces work as separators too.
func ParseAnchor(s string) (Anchor, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "_", "-")
	norm = strings.ReplaceAll(norm, " ", "-")

	switch norm {
	case "top-left", "left-top":
		return TopLeft, nil
	case "top":
		return Top, nil
	case "top-right", "right-top":
		return TopRight, nil
	case "left":
		return Left, nil
	case "center", "centre", "middle":
		return Center, nil
	case "right":
		return Right, nil
	case "bottom-left", "left-bottom":
		return BottomLeft, nil
	case "bottom":
		return Bottom, nil
	case "bottom-right", "right-bottom":
		return BottomRight, nil
	}
	return Anchor{}, fmt.Errorf("unknown anchor %q (want one of top-left, top, top-right, left, center, right, bottom-left, bottom, bottom-right)", s)
}

// Origin computes the top-left corner of a cw×ch crop placed inside a w×h
// region according to the anchor. It is total: the result is always clamped
// so the origin stays inside the region, even when the crop is larger than
// the region (callers decide separately whether such a crop is usable).
// Centering uses integer division, so for an odd leftover the extra pixel
// falls on the right or bottom side.
func Origin(w, h, cw, ch int, a Anchor) (x0, y0 int) {
	switch a.X {
	case XCenter:
		x0 = (w - cw) / 2
	case XRight:
		x0 = w - cw
	}

	switch a.Y {
	case YCenter:
		y0 = (h - ch) / 2
	case YBottom:
		y0 = h - ch
	}

	return clampOffset(x0, w-cw), clampOffset(y0, h-ch)
}

// CropRect returns the cw×ch crop rectangle anchored inside a w×h region.
// Coordinates are relative to the region's own top-left corner.
func CropRect(w, h, cw, ch int, a Anchor) image.Rectangle {
	x0, y0 := Origin(w, h, cw, ch, a)
	return image.Rect(x0, y0, x0+cw, y0+ch)
}

// CropSpec describes the requested crop: an exact pixel size plus the anchor
// that decides which part of each region is kept.
type CropSpec struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Anchor Anchor `json:"anchor"`
}

// Validate checks that the crop size is usable.
func (s CropSpec) Validate() error {
	if s.Width < 1 {
		return fmt.Errorf("crop width must be positive, got %d", s.Width)
	}
	if s.Height < 1 {
		return fmt.Errorf("crop height must be positive, got %d", s.Height)
	}
	return nil
}

// FitsIn reports whether the crop size fits inside a w×h region.
func (s CropSpec) FitsIn(w, h int) bool {
	return s.Width <= w && s.Height <= h
}

// clampOffset keeps an origin offset within [0, span]; a negative span
// (crop larger than region) collapses to zero.
func clampOffset(v, span int) int {
	if span < 0 {
		span = 0
	}
	if v < 0 {
		return 0
	}
	if v > span {
		return span
	}
	return v
}
