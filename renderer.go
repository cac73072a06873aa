package statusscreen

import "image"

// Renderer is the drawing surface the Screen issues commands to.
//
// Implementations own the pixel buffer and the transport to the physical
// display. Nothing drawn is visible until Commit is called. Coordinates that
// fall outside the surface must be clipped by the implementation.
type Renderer interface {
	// ClearRegion fills r with the background color.
	ClearRegion(r image.Rectangle)
	// SetCursor moves the text cursor to the top-left corner of the next text.
	SetCursor(x, y int)
	// DrawText draws text at the cursor and advances the cursor past it.
	DrawText(text string)
	DrawLine(x0, y0, x1, y1 int)
	DrawCircle(cx, cy, r int)
	// Commit flushes everything drawn so far to the visible display.
	Commit() error
}

// TextMeasurer is implemented by renderers that can report the rendered
// width of a string. Layouts that align text (right-aligned fix label,
// indented log lines) use it when available and fall back to a fixed
// character width otherwise.
type TextMeasurer interface {
	TextWidth(text string) int
}

// Mode selects how a region update interacts with the rest of the screen.
type Mode int

const (
	// Live clears the region, draws it and commits immediately. Other
	// regions are left untouched.
	Live Mode = iota
	// PartOfFullRepaint only draws. The caller has cleared the whole
	// screen and commits once when every region is drawn.
	PartOfFullRepaint
)

func (m Mode) String() string {
	switch m {
	case Live:
		return "live"
	case PartOfFullRepaint:
		return "full-repaint"
	default:
		return "unknown"
	}
}
