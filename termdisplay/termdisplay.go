// Package termdisplay previews a small monochrome display in a terminal.
//
// Dev implements the periph.io display.Drawer interface, so anything that
// drives an OLED through periph can be pointed at a terminal instead. Two
// pixel rows are packed into one character cell using half block runes, so a
// 128×64 display needs 128×32 cells.
package termdisplay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/display"
)

// Opts is the configuration for the terminal preview.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 128)
	H int // Height (default: 64)

	// Top-left cell of the preview
	Origin image.Point
}

// Dev is a display.Drawer rendering into a tcell screen.
type Dev struct {
	s      tcell.Screen
	rect   image.Rectangle
	img    *image.Gray
	origin image.Point
	style  tcell.Style
	halted bool
}

var _ display.Drawer = (*Dev)(nil)

// New creates a preview of a W×H display on s. The screen must already be
// initialized.
//
// opts can be nil to use defaults (128x64 display).
func New(s tcell.Screen, opts *Opts) (*Dev, error) {
	if s == nil {
		return nil, errors.New("termdisplay: screen is required")
	}
	if opts == nil {
		opts = &Opts{W: 128, H: 64}
	}
	if opts.W <= 0 || opts.H <= 0 {
		return nil, errors.New("termdisplay: width and height must be positive")
	}

	rect := image.Rect(0, 0, opts.W, opts.H)
	d := &Dev{
		s:      s,
		rect:   rect,
		img:    image.NewGray(rect),
		origin: opts.Origin,
		style:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
	}
	d.paint(rect)
	d.s.Show()
	return d, nil
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw draws src into dst and repaints the affected cells.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errors.New("termdisplay: halted")
	}
	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}
	draw.Draw(d.img, dst, src, sp, draw.Src)
	d.paint(dst)
	d.s.Show()
	return nil
}

// paint redraws every cell covering r.
func (d *Dev) paint(r image.Rectangle) {
	// Each cell covers an even and the following odd row.
	top := r.Min.Y &^ 1
	for y := top; y < r.Max.Y; y += 2 {
		for x := r.Min.X; x < r.Max.X; x++ {
			d.s.SetContent(d.origin.X+x, d.origin.Y+y/2, cell(d.lit(x, y), d.lit(x, y+1)), nil, d.style)
		}
	}
}

func (d *Dev) lit(x, y int) bool {
	if !(image.Point{X: x, Y: y}.In(d.rect)) {
		return false
	}
	return d.img.GrayAt(x, y).Y >= 0x80
}

func cell(upper, lower bool) rune {
	switch {
	case upper && lower:
		return '█'
	case upper:
		return '▀'
	case lower:
		return '▄'
	default:
		return ' '
	}
}

// Halt stops the preview and releases the terminal.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	d.halted = true
	d.s.Fini()
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("termdisplay.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}
