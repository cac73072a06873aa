package statusscreen

import (
	"errors"
	"fmt"
	"image"
)

// Layout places the four screen regions and the two dividers.
//
// Region rectangles are what a live update clears; the points are where
// text starts (top-left of the text box, TextHeight rows tall). Regions
// must not overlap, must not contain a divider row, and every text box must
// stay inside its region, otherwise a live update leaves stale pixels.
type Layout struct {
	// Screen dimensions in pixels
	Width  int
	Height int

	// Y coordinate of the dividers bounding the log region
	TopDivider    int
	BottomDivider int

	Clock image.Rectangle
	Fix   image.Rectangle
	Stats image.Rectangle
	Log   image.Rectangle

	ClockAt image.Point
	FixAt   image.Point // X is ignored when FixAlignRight is set
	StatsAt image.Point
	LogAt   image.Point

	FixAlignRight bool

	// Satellite dish drawn next to the fix label while fixed. A zero
	// radius disables it.
	Dish       image.Point
	DishRadius int

	LineHeight int    // log line spacing
	TextHeight int    // rows a line of text may touch below its cursor
	LogLabel   string // optional prefix on the first log line, e.g. "Log: "
	CharWidth  int    // used for text width when the renderer can't measure

	// Log lines shown when no capacity is given. Zero means as many as fit,
	// up to DefaultCapacity.
	Lines int
}

// Text metrics of the canvas default font (proggy TinySZ8pt7b drawn with
// its baseline 7 rows below the cursor).
const (
	defaultTextHeight = 10
	defaultCharWidth  = 6
)

// DefaultLayout is the clock and dish status screen: clock top-left, fix
// label with a satellite dish top-right, log body between dividers at y=10
// and y=h-11, stats in the footer.
func DefaultLayout(w, h int) Layout {
	return Layout{
		Width:         w,
		Height:        h,
		TopDivider:    10,
		BottomDivider: h - 11,
		Clock:         image.Rect(0, 0, w/2, 10),
		Fix:           image.Rect(w/2+1, 0, w, 10),
		Stats:         image.Rect(0, h-10, w, h),
		Log:           image.Rect(0, 11, w, h-11),
		ClockAt:       image.Pt(0, 0),
		FixAt:         image.Pt(w-48, 0),
		StatsAt:       image.Pt(0, h-10),
		LogAt:         image.Pt(0, 11),
		Dish:          image.Pt(w-21, 4),
		DishRadius:    3,
		LineHeight:    8,
		TextHeight:    defaultTextHeight,
		CharWidth:     defaultCharWidth,
	}
}

// LabelledLayout is the labelled status screen: taller header with the fix
// label right-aligned, a "Log: " label in front of three log lines and the
// stats footer below a divider at y=h-12.
func LabelledLayout(w, h int) Layout {
	return Layout{
		Width:         w,
		Height:        h,
		TopDivider:    12,
		BottomDivider: h - 12,
		Clock:         image.Rect(0, 0, w/2, 12),
		Fix:           image.Rect(w/2, 0, w, 12),
		Stats:         image.Rect(0, h-11, w, h),
		Log:           image.Rect(0, 13, w, h-12),
		ClockAt:       image.Pt(0, 1),
		FixAt:         image.Pt(w/2, 1),
		StatsAt:       image.Pt(0, h-11),
		LogAt:         image.Pt(0, 14),
		FixAlignRight: true,
		LineHeight:    9,
		TextHeight:    defaultTextHeight,
		LogLabel:      "Log: ",
		CharWidth:     defaultCharWidth,
		Lines:         3,
	}
}

// LayoutByName returns the preset layout registered as name for a w×h
// screen. Known names are "default" and "labelled".
func LayoutByName(name string, w, h int) (Layout, error) {
	switch name {
	case "", "default":
		return DefaultLayout(w, h), nil
	case "labelled":
		return LabelledLayout(w, h), nil
	}
	return Layout{}, fmt.Errorf("statusscreen: unknown layout %q (want default or labelled)", name)
}

// Bounds returns the whole screen rectangle.
func (l *Layout) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.Width, l.Height)
}

// MaxLines returns how many log lines fit in the log region.
func (l *Layout) MaxLines() int {
	if l.LineHeight <= 0 || l.TextHeight <= 0 {
		return 0
	}
	free := l.Log.Max.Y - l.LogAt.Y - l.TextHeight
	if free < 0 {
		return 0
	}
	return free/l.LineHeight + 1
}

// DefaultLines returns the log capacity used when none is configured.
func (l *Layout) DefaultLines() int {
	if l.Lines > 0 {
		return l.Lines
	}
	return min(DefaultCapacity, l.MaxLines())
}

// Validate checks the layout is usable.
func (l *Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return errors.New("statusscreen: layout dimensions must be positive")
	}
	if l.LineHeight <= 0 {
		return errors.New("statusscreen: layout line height must be positive")
	}
	if l.TextHeight <= 0 {
		return errors.New("statusscreen: layout text height must be positive")
	}

	regions := []struct {
		name  string
		r     image.Rectangle
		at    image.Point
		right bool
	}{
		{"clock", l.Clock, l.ClockAt, false},
		{"fix", l.Fix, l.FixAt, l.FixAlignRight},
		{"stats", l.Stats, l.StatsAt, false},
		{"log", l.Log, l.LogAt, false},
	}
	for i, a := range regions {
		if a.r.Empty() {
			return fmt.Errorf("statusscreen: %s region is empty", a.name)
		}
		if !a.r.In(l.Bounds()) {
			return fmt.Errorf("statusscreen: %s region is outside the screen", a.name)
		}
		for _, b := range regions[i+1:] {
			if a.r.Overlaps(b.r) {
				return fmt.Errorf("statusscreen: %s and %s regions overlap", a.name, b.name)
			}
		}
		for _, y := range []int{l.TopDivider, l.BottomDivider} {
			if y >= a.r.Min.Y && y < a.r.Max.Y {
				return fmt.Errorf("statusscreen: divider at y=%d crosses the %s region", y, a.name)
			}
		}

		x := a.at.X
		if a.right {
			x = a.r.Max.X - 1
		}
		text := image.Rect(x, a.at.Y, x+1, a.at.Y+l.TextHeight)
		if !text.In(a.r) {
			return fmt.Errorf("statusscreen: %s text at %v does not fit the %s region", a.name, a.at, a.r)
		}
	}

	if l.DishRadius > 0 {
		d := image.Rect(l.Dish.X-l.DishRadius, l.Dish.Y-l.DishRadius, l.Dish.X+l.DishRadius+1, l.Dish.Y+l.DishRadius+1)
		if !d.In(l.Fix) {
			return errors.New("statusscreen: dish does not fit the fix region")
		}
	}

	if l.Lines < 0 {
		return errors.New("statusscreen: layout lines must not be negative")
	}
	if fit := l.MaxLines(); l.Lines > fit {
		return fmt.Errorf("statusscreen: layout shows %d log lines but only %d fit", l.Lines, fit)
	}
	return nil
}
