// Package placement computes where the floating picker popup goes relative
// to its anchor, keeping it inside the viewport.
package placement

import "math"

// Rect is an element's bounding box in viewport coordinates.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bottom is the y coordinate of the lower edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Right is the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Viewport is the visible window size.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Options tunes the popup geometry.
type Options struct {
	Gap                 float64 `koanf:"gap" validate:"gte=0"`
	Margin              float64 `koanf:"margin" validate:"gte=0"`
	Width               float64 `koanf:"width" validate:"gt=0"`
	MaxHeight           float64 `koanf:"max_height" validate:"gt=0"`
	YearPickerMaxHeight float64 `koanf:"year_picker_max_height" validate:"gt=0"`
}

// DefaultOptions returns the stock geometry: 8px gap, 16px edge margin,
// 320px wide, 400px tall (560px with the year picker open).
func DefaultOptions() Options {
	return Options{
		Gap:                 8,
		Margin:              16,
		Width:               320,
		MaxHeight:           400,
		YearPickerMaxHeight: 560,
	}
}

// Placement is the computed popup position. It is always derived, never stored as truth.
type Placement struct {
	Top       float64 `json:"top"`
	Left      float64 `json:"left"`
	Width     float64 `json:"width"`
	MaxHeight float64 `json:"max_height"`
	Above     bool    `json:"above"`
}

// Compute places the popup for the given anchor, viewport and mode.
//
// The popup goes below the anchor, left-aligned, Gap pixels away. If its full
// height would overflow the bottom of the viewport and there is more room
// above the anchor, it flips above. Horizontally it is shifted so its right
// edge stays Margin pixels inside the viewport when it would overflow, and
// that shift never goes past Margin on the left. MaxHeight is the mode's cap, limited to the room on the chosen side.
func Compute(anchor Rect, vp Viewport, yearPicker bool, opts Options) Placement {
	capHeight := opts.MaxHeight
	if yearPicker {
		capHeight = opts.YearPickerMaxHeight
	}

	width := opts.Width
	if avail := vp.Width - 2*opts.Margin; avail > 0 && width > avail {
		width = avail
	}

	spaceBelow := math.Max(0, vp.Height-anchor.Bottom()-opts.Gap)
	spaceAbove := math.Max(0, anchor.Top-opts.Gap)

	p := Placement{Width: width}
	if anchor.Bottom()+opts.Gap+capHeight > vp.Height && spaceAbove > spaceBelow {
		p.Above = true
		p.MaxHeight = math.Min(capHeight, spaceAbove)
		p.Top = anchor.Top - p.MaxHeight - opts.Gap
	} else {
		p.MaxHeight = math.Min(capHeight, spaceBelow)
		p.Top = anchor.Bottom() + opts.Gap
	}

	p.Left = anchor.Left
	if p.Left+width > vp.Width {
		p.Left = vp.Width - width - opts.Margin
		if p.Left < opts.Margin {
			p.Left = opts.Margin
		}
	}

	return p
}
