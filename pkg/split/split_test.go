package split

import (
	"encoding/json"
	"image"
	"testing"

	"github.com/menta2k/bulk-cropper/pkg/geometry"
)

func TestPlanNone(t *testing.T) {
	// The gutter is irrelevant when the image is kept whole.
	for _, gutter := range []int{0, 10, 5000} {
		halves := Plan(640, 480, None, gutter, geometry.Center)
		if len(halves) != 1 {
			t.Fatalf("Expected 1 half for mode none (gutter=%d), got %d", gutter, len(halves))
		}

		half := halves[0]
		if half.Tag != TagFull {
			t.Errorf("Expected tag %q, got %q", TagFull, half.Tag)
		}
		if half.Bounds != image.Rect(0, 0, 640, 480) {
			t.Errorf("Expected full bounds (0,0)-(640,480), got %v", half.Bounds)
		}
		if half.Anchor != geometry.Center {
			t.Errorf("Expected anchor %v, got %v", geometry.Center, half.Anchor)
		}
	}
}

func TestPlanVertical(t *testing.T) {
	halves := Plan(200, 100, Vertical, 0, geometry.Left)
	if len(halves) != 2 {
		t.Fatalf("Expected 2 halves, got %d", len(halves))
	}

	left, right := halves[0], halves[1]

	if left.Tag != TagLeft || right.Tag != TagRight {
		t.Errorf("Expected tags left/right, got %q/%q", left.Tag, right.Tag)
	}
	if left.Bounds != image.Rect(0, 0, 100, 100) {
		t.Errorf("Expected left bounds (0,0)-(100,100), got %v", left.Bounds)
	}
	if right.Bounds != image.Rect(100, 0, 200, 100) {
		t.Errorf("Expected right bounds (100,0)-(200,100), got %v", right.Bounds)
	}
	if left.Anchor != geometry.Left {
		t.Errorf("Expected left anchor %v, got %v", geometry.Left, left.Anchor)
	}
	if right.Anchor != geometry.Right {
		t.Errorf("Expected right anchor %v (mirrored), got %v", geometry.Right, right.Anchor)
	}
}

func TestPlanVerticalGutter(t *testing.T) {
	// 300 wide with a 20px gutter: halves of 140, strip [140,160) removed.
	halves := Plan(300, 200, Vertical, 20, geometry.Center)
	if len(halves) != 2 {
		t.Fatalf("Expected 2 halves, got %d", len(halves))
	}

	if halves[0].Bounds != image.Rect(0, 0, 140, 200) {
		t.Errorf("Expected left bounds (0,0)-(140,200), got %v", halves[0].Bounds)
	}
	if halves[1].Bounds != image.Rect(160, 0, 300, 200) {
		t.Errorf("Expected right bounds (160,0)-(300,200), got %v", halves[1].Bounds)
	}
}

func TestPlanHorizontal(t *testing.T) {
	halves := Plan(100, 200, Horizontal, 0, geometry.Top)
	if len(halves) != 2 {
		t.Fatalf("Expected 2 halves, got %d", len(halves))
	}

	top, bottom := halves[0], halves[1]

	if top.Tag != TagTop || bottom.Tag != TagBottom {
		t.Errorf("Expected tags top/bottom, got %q/%q", top.Tag, bottom.Tag)
	}
	if top.Bounds != image.Rect(0, 0, 100, 100) {
		t.Errorf("Expected top bounds (0,0)-(100,100), got %v", top.Bounds)
	}
	if bottom.Bounds != image.Rect(0, 100, 100, 200) {
		t.Errorf("Expected bottom bounds (0,100)-(100,200), got %v", bottom.Bounds)
	}
	if top.Anchor != geometry.Top {
		t.Errorf("Expected top anchor %v, got %v", geometry.Top, top.Anchor)
	}
	if bottom.Anchor != geometry.Bottom {
		t.Errorf("Expected bottom anchor %v (mirrored), got %v", geometry.Bottom, bottom.Anchor)
	}
}

func TestPlanDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		mode   Mode
		gutter int
	}{
		{"gutter equals width", 10, 50, Vertical, 10},
		{"gutter exceeds width", 10, 50, Vertical, 25},
		{"one pixel wide", 1, 50, Vertical, 0},
		{"gutter leaves nothing", 3, 50, Vertical, 2},
		{"gutter equals height", 50, 10, Horizontal, 10},
		{"one pixel tall", 50, 1, Horizontal, 0},
	}

	for _, test := range tests {
		halves := Plan(test.w, test.h, test.mode, test.gutter, geometry.Center)
		if halves != nil {
			t.Errorf("%s: expected empty plan, got %d halves", test.name, len(halves))
		}
	}
}

func TestPlanVerticalMirrorsAllAnchors(t *testing.T) {
	anchors := []geometry.Anchor{
		geometry.TopLeft, geometry.Top, geometry.TopRight,
		geometry.Left, geometry.Center, geometry.Right,
		geometry.BottomLeft, geometry.Bottom, geometry.BottomRight,
	}

	for _, base := range anchors {
		halves := Plan(200, 100, Vertical, 4, base)
		if len(halves) != 2 {
			t.Fatalf("Expected 2 halves for base anchor %v, got %d", base, len(halves))
		}

		if halves[0].Anchor != base {
			t.Errorf("Left half: expected base anchor %v, got %v", base, halves[0].Anchor)
		}
		if halves[1].Anchor != base.MirrorX() {
			t.Errorf("Right half: expected anchor %v, got %v", base.MirrorX(), halves[1].Anchor)
		}
		if halves[1].Anchor.Y != base.Y {
			t.Errorf("Right half: vertical component changed from %v to %v", base.Y, halves[1].Anchor.Y)
		}
	}
}

func TestPlanHorizontalMirrorsAllAnchors(t *testing.T) {
	anchors := []geometry.Anchor{
		geometry.TopLeft, geometry.Top, geometry.TopRight,
		geometry.Left, geometry.Center, geometry.Right,
		geometry.BottomLeft, geometry.Bottom, geometry.BottomRight,
	}

	for _, base := range anchors {
		halves := Plan(100, 200, Horizontal, 4, base)
		if len(halves) != 2 {
			t.Fatalf("Expected 2 halves for base anchor %v, got %d", base, len(halves))
		}

		if halves[0].Anchor != base {
			t.Errorf("Top half: expected base anchor %v, got %v", base, halves[0].Anchor)
		}
		if halves[1].Anchor != base.MirrorY() {
			t.Errorf("Bottom half: expected anchor %v, got %v", base.MirrorY(), halves[1].Anchor)
		}
		if halves[1].Anchor.X != base.X {
			t.Errorf("Bottom half: horizontal component changed from %v to %v", base.X, halves[1].Anchor.X)
		}
	}
}

func TestPlanVerticalAccountsForEveryPixel(t *testing.T) {
	// Every non-degenerate vertical plan must produce two disjoint, equally
	// wide halves inside the source, with a central strip of at least the
	// gutter (plus at most one spare pixel) removed.
	for w := 1; w <= 50; w++ {
		for gutter := 0; gutter <= w+2; gutter++ {
			halves := Plan(w, 30, Vertical, gutter, geometry.Center)
			if halves == nil {
				continue
			}
			if len(halves) != 2 {
				t.Fatalf("w=%d gutter=%d: expected 2 halves, got %d", w, gutter, len(halves))
			}

			left, right := halves[0].Bounds, halves[1].Bounds
			if left.Dx() != right.Dx() {
				t.Errorf("w=%d gutter=%d: halves differ in width: %d vs %d",
					w, gutter, left.Dx(), right.Dx())
			}
			if left.Max.X > right.Min.X {
				t.Errorf("w=%d gutter=%d: halves overlap: %v and %v", w, gutter, left, right)
			}
			if left.Min.X != 0 || right.Max.X != w {
				t.Errorf("w=%d gutter=%d: halves not flush with edges: %v and %v",
					w, gutter, left, right)
			}

			strip := right.Min.X - left.Max.X
			if strip < gutter || strip > gutter+1 {
				t.Errorf("w=%d gutter=%d: removed strip is %dpx, expected %d or %d",
					w, gutter, strip, gutter, gutter+1)
			}
			if left.Dx()+right.Dx()+strip != w {
				t.Errorf("w=%d gutter=%d: %d+%d+%d pixels do not account for width %d",
					w, gutter, left.Dx(), right.Dx(), strip, w)
			}
		}
	}
}

func TestPlanNegativeGutter(t *testing.T) {
	// A negative gutter behaves like zero instead of widening the halves.
	halves := Plan(200, 100, Vertical, -5, geometry.Center)
	if len(halves) != 2 {
		t.Fatalf("Expected 2 halves, got %d", len(halves))
	}
	if halves[0].Bounds != image.Rect(0, 0, 100, 100) {
		t.Errorf("Expected left bounds (0,0)-(100,100), got %v", halves[0].Bounds)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
	}{
		{"none", None},
		{"", None},
		{"Vertical", Vertical},
		{"left-right", Vertical},
		{"HORIZONTAL", Horizontal},
		{"top-bottom", Horizontal},
	}

	for _, test := range tests {
		got, err := ParseMode(test.input)
		if err != nil {
			t.Errorf("ParseMode(%q) returned error: %v", test.input, err)
			continue
		}
		if got != test.expected {
			t.Errorf("ParseMode(%q) = %v, expected %v", test.input, got, test.expected)
		}
	}

	if _, err := ParseMode("diagonal"); err == nil {
		t.Error("Expected error for unknown mode name")
	}
}

func TestModeString(t *testing.T) {
	if None.String() != "none" || Vertical.String() != "vertical" || Horizontal.String() != "horizontal" {
		t.Errorf("Unexpected mode names: %v, %v, %v", None, Vertical, Horizontal)
	}
}

func TestModeJSON(t *testing.T) {
	data, err := json.Marshal(Vertical)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"vertical"` {
		t.Errorf(`Expected "vertical", got %s`, data)
	}

	var mode Mode
	if err := json.Unmarshal([]byte(`"horizontal"`), &mode); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if mode != Horizontal {
		t.Errorf("Expected Horizontal, got %v", mode)
	}
}

func BenchmarkPlan(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Plan(4000, 3000, Vertical, 40, geometry.Center)
	}
}
