package split

import (
	"encoding/json"
	"fmt"
	"image"
	"strings"

	"github.com/menta2k/bulk-cropper/pkg/geometry"
)

// Mode selects how a source image is decomposed before cropping.
type Mode int

// Split modes.
const (
	// None keeps the image whole.
	None Mode = iota
	// Vertical splits into left and right halves, e.g. facing book pages.
	Vertical
	// Horizontal splits into top and bottom halves.
	Horizontal
)

var modeNames = [...]string{"none", "vertical", "horizontal"}

func (m Mode) String() string {
	if m < None || m > Horizontal {
		return "invalid"
	}
	return modeNames[m]
}

// MarshalJSON encodes the mode by name.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a mode from its name.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseMode(name)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMode parses a split mode name. Names are case-insensitive;
// "left-right" and "top-bottom" work as aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return None, nil
	case "vertical", "left-right":
		return Vertical, nil
	case "horizontal", "top-bottom":
		return Horizontal, nil
	}
	return None, fmt.Errorf("unknown split mode %q (want none, vertical or horizontal)", s)
}

// Tag identifies which part of the source a half covers.
type Tag string

// Half tags. TagFull is used only when the image is kept whole.
const (
	TagFull   Tag = "full"
	TagLeft   Tag = "left"
	TagRight  Tag = "right"
	TagTop    Tag = "top"
	TagBottom Tag = "bottom"
)

// Half is one region of a split source image, with the anchor that applies
// inside it. Bounds are in the source image's coordinate space.
type Half struct {
	Tag    Tag
	Bounds image.Rectangle
	Anchor geometry.Anchor
}

// Plan decomposes a w×h source into croppable halves. Mode None yields a
// single full-image entry, ignoring the gutter. Vertical and Horizontal
// remove a central gutter strip and yield two equally sized halves in
// left-right or top-bottom order; the anchor of the second half is mirrored
// across the seam so both halves keep symmetric regions. When the remainder
// after removing the gutter is odd, the spare pixel is discarded with the
// gutter. A nil result means the gutter consumed the whole axis and the
// image cannot be split (callers skip it rather than fail).
func Plan(w, h int, mode Mode, gutter int, base geometry.Anchor) []Half {
	if gutter < 0 {
		gutter = 0
	}

	switch mode {
	case None:
		return []Half{{Tag: TagFull, Bounds: image.Rect(0, 0, w, h), Anchor: base}}

	case Vertical:
		if gutter >= w {
			return nil
		}
		leftEnd := (w - gutter) / 2
		rightStart := w - leftEnd
		if leftEnd <= 0 || rightStart >= w {
			return nil
		}
		return []Half{
			{Tag: TagLeft, Bounds: image.Rect(0, 0, leftEnd, h), Anchor: base},
			{Tag: TagRight, Bounds: image.Rect(rightStart, 0, w, h), Anchor: base.MirrorX()},
		}

	case Horizontal:
		if gutter >= h {
			return nil
		}
		topEnd := (h - gutter) / 2
		bottomStart := h - topEnd
		if topEnd <= 0 || bottomStart >= h {
			return nil
		}
		return []Half{
			{Tag: TagTop, Bounds: image.Rect(0, 0, w, topEnd), Anchor: base},
			{Tag: TagBottom, Bounds: image.Rect(0, bottomStart, w, h), Anchor: base.MirrorY()},
		}
	}
	return nil
}
