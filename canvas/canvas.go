// Package canvas implements a statusscreen.Renderer on top of any periph.io
// display.Drawer.
//
// Drawing happens in an in-memory 1-bit frame. Commit compares the frame with
// what was last sent and transfers only the bounding rectangle of the changed
// pixels, which keeps partial updates cheap on slow I²C buses.
package canvas

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/flavioheleno/statusscreen"
	"github.com/flavioheleno/statusscreen/image1bit"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/display"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Opts is the configuration for a Canvas.
type Opts struct {
	// Glyphs used by DrawText (default: proggy.TinySZ8pt7b)
	Font tinyfont.Fonter

	// Distance in pixels from the cursor Y to the text baseline (default: 7,
	// which puts the tallest proggy glyph on the cursor row)
	Baseline int

	// Optional logger, nil discards
	Logger logrus.FieldLogger
}

// Canvas draws into a frame buffer and commits changes to a display.
//
// Canvas also satisfies the tinygo drivers.Displayer interface so tinyfont
// and tinydraw can paint into it directly.
type Canvas struct {
	d     display.Drawer
	frame *image1bit.HorizontalMSB
	last  []byte // frame as last committed

	// synced is false until the first commit, which always sends the
	// whole frame.
	synced bool

	font     tinyfont.Fonter
	baseline int
	cursor   image.Point

	log    logrus.FieldLogger
	halted bool
}

var white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

var (
	_ statusscreen.Renderer     = (*Canvas)(nil)
	_ statusscreen.TextMeasurer = (*Canvas)(nil)
	_ drivers.Displayer         = (*Canvas)(nil)
)

// New creates a Canvas covering the bounds of d.
//
// opts can be nil to use defaults.
func New(d display.Drawer, opts *Opts) (*Canvas, error) {
	if d == nil {
		return nil, errors.New("canvas: display is required")
	}
	if opts == nil {
		opts = &Opts{}
	}

	bounds := d.Bounds()
	if bounds.Empty() {
		return nil, errors.Errorf("canvas: display %s has empty bounds", d)
	}

	c := &Canvas{
		d:        d,
		frame:    image1bit.NewHorizontalMSB(bounds),
		font:     opts.Font,
		baseline: opts.Baseline,
		log:      opts.Logger,
		cursor:   bounds.Min,
	}
	c.last = make([]byte, len(c.frame.Pix))
	if c.font == nil {
		c.font = &proggy.TinySZ8pt7b
	}
	if c.baseline == 0 {
		c.baseline = 7
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = l
	}
	return c, nil
}

// ClearRegion turns off every pixel of r.
func (c *Canvas) ClearRegion(r image.Rectangle) {
	c.frame.Fill(r, image1bit.Off)
}

// SetCursor moves the text cursor.
func (c *Canvas) SetCursor(x, y int) {
	c.cursor = image.Pt(x, y)
}

// DrawText draws text with its top at the cursor and moves the cursor to the
// end of the text.
func (c *Canvas) DrawText(text string) {
	tinyfont.WriteLine(c, c.font, int16(c.cursor.X), int16(c.cursor.Y+c.baseline), text, white)
	c.cursor.X += c.TextWidth(text)
}

// DrawLine draws a one pixel wide line between both points, inclusive.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	tinydraw.Line(c, int16(x0), int16(y0), int16(x1), int16(y1), white)
}

// DrawCircle draws the outline of a circle.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	tinydraw.Circle(c, int16(cx), int16(cy), int16(r), white)
}

// TextWidth returns the advance of text in the canvas font.
func (c *Canvas) TextWidth(text string) int {
	_, w := tinyfont.LineWidth(c.font, text)
	return int(w)
}

// Commit sends the pixels changed since the last commit to the display.
// It does nothing when the frame is unchanged.
func (c *Canvas) Commit() error {
	if c.halted {
		return errors.New("canvas: halted")
	}

	r := c.changed()
	if r.Empty() {
		return nil
	}
	if err := c.d.Draw(r, c.frame, r.Min); err != nil {
		return errors.Wrapf(err, "canvas: draw %v on %s", r, c.d)
	}
	copy(c.last, c.frame.Pix)
	c.synced = true

	c.log.WithFields(logrus.Fields{
		"rect":  r.String(),
		"bytes": r.Dy() * ((r.Dx() + 7) / 8),
	}).Debug("commit")
	return nil
}

// changed returns the smallest rectangle, widened to whole bytes, holding
// every pixel that differs from the last commit. It is empty when nothing
// changed.
func (c *Canvas) changed() image.Rectangle {
	if !c.synced {
		return c.frame.Rect
	}

	width := c.frame.Rect.Dx()
	height := c.frame.Rect.Dy()
	stride := c.frame.Stride

	minRow, maxRow := height, -1
	minCol, maxCol := width, -1

	for y := 0; y < height; y++ {
		rowStart := y * stride
		rowEnd := rowStart + stride

		if bytes.Equal(c.last[rowStart:rowEnd], c.frame.Pix[rowStart:rowEnd]) {
			continue
		}
		minRow = min(minRow, y)
		maxRow = max(maxRow, y)

		for x := 0; x < stride; x++ {
			if c.last[rowStart+x] != c.frame.Pix[rowStart+x] {
				// Each byte holds 8 pixels
				minCol = min(minCol, x*8)
				maxCol = max(maxCol, min(x*8+7, width-1))
			}
		}
	}

	if maxRow < 0 {
		return image.Rectangle{}
	}
	return image.Rect(minCol, minRow, maxCol+1, maxRow+1).Add(c.frame.Rect.Min)
}

// Cursor returns the current text cursor.
func (c *Canvas) Cursor() image.Point {
	return c.cursor
}

// Frame returns the frame buffer being drawn into.
func (c *Canvas) Frame() *image1bit.HorizontalMSB {
	return c.frame
}

// Halt halts the underlying display. Commits fail afterwards.
func (c *Canvas) Halt() error {
	c.halted = true
	return c.d.Halt()
}

// String returns a string representation of the canvas.
func (c *Canvas) String() string {
	return fmt.Sprintf("canvas.Canvas{%dx%d on %s}", c.frame.Rect.Dx(), c.frame.Rect.Dy(), c.d)
}

// Size implements drivers.Displayer.
func (c *Canvas) Size() (x, y int16) {
	return int16(c.frame.Rect.Dx()), int16(c.frame.Rect.Dy())
}

// SetPixel implements drivers.Displayer.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.frame.SetBit(int(x), int(y), image1bit.BitModel.Convert(col).(image1bit.Bit))
}

// Display implements drivers.Displayer by committing.
func (c *Canvas) Display() error {
	return c.Commit()
}
