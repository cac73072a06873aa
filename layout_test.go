package statusscreen

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetLayoutsValid(t *testing.T) {
	sizes := []image.Point{{128, 64}, {128, 32}, {256, 64}}
	for _, size := range sizes {
		for _, name := range []string{"default", "labelled"} {
			l, err := LayoutByName(name, size.X, size.Y)
			require.NoError(t, err)
			if name == "labelled" && size.Y < 40 {
				continue
			}
			assert.NoError(t, l.Validate(), "%s %v", name, size)
		}
	}
}

func TestDefaultLayoutDividersOutsideRegions(t *testing.T) {
	l := DefaultLayout(128, 64)
	assert.Equal(t, 10, l.TopDivider)
	assert.Equal(t, 53, l.BottomDivider)
	for _, r := range []image.Rectangle{l.Clock, l.Fix, l.Stats, l.Log} {
		for _, y := range []int{l.TopDivider, l.BottomDivider} {
			assert.False(t, image.Pt(0, y).In(r) || image.Pt(127, y).In(r), "divider y=%d inside %v", y, r)
		}
	}
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(l *Layout)
		wantErr string
	}{
		{"zero width", func(l *Layout) { l.Width = 0 }, "statusscreen: layout dimensions must be positive"},
		{"zero line height", func(l *Layout) { l.LineHeight = 0 }, "statusscreen: layout line height must be positive"},
		{"empty stats", func(l *Layout) { l.Stats = image.Rectangle{} }, "statusscreen: stats region is empty"},
		{"log over stats", func(l *Layout) { l.Log.Max.Y = l.Height }, "statusscreen: stats and log regions overlap"},
		{"zero text height", func(l *Layout) { l.TextHeight = 0 }, "statusscreen: layout text height must be positive"},
		{"stats below screen", func(l *Layout) { l.Stats.Max.Y = 70 }, "statusscreen: stats region is outside the screen"},
		{"divider in header", func(l *Layout) { l.TopDivider = 5 }, "statusscreen: divider at y=5 crosses the clock region"},
		{"clock text too low", func(l *Layout) { l.ClockAt.Y = 1 }, "statusscreen: clock text at (0,1) does not fit the (0,0)-(64,10) region"},
		{"stats text too low", func(l *Layout) { l.StatsAt.Y = 55 }, "statusscreen: stats text at (0,55) does not fit the (0,54)-(128,64) region"},
		{"dish off header", func(l *Layout) { l.Dish.Y = 8 }, "statusscreen: dish does not fit the fix region"},
		{"too many lines", func(l *Layout) { l.Lines = 6 }, "statusscreen: layout shows 6 log lines but only 5 fit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := DefaultLayout(128, 64)
			tt.mutate(&l)
			assert.EqualError(t, l.Validate(), tt.wantErr)
		})
	}
}

func TestLayoutLines(t *testing.T) {
	tests := []struct {
		name         string
		layout       Layout
		max, initial int
	}{
		{"default 128x64", DefaultLayout(128, 64), 5, 5},
		{"default 128x32", DefaultLayout(128, 32), 1, 1},
		{"labelled 128x64", LabelledLayout(128, 64), 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.max, tt.layout.MaxLines())
			assert.Equal(t, tt.initial, tt.layout.DefaultLines())

			// The last line's text box ends inside the log region.
			last := tt.layout.LogAt.Y + (tt.max-1)*tt.layout.LineHeight + tt.layout.TextHeight
			assert.LessOrEqual(t, last, tt.layout.Log.Max.Y)
			assert.Greater(t, last+tt.layout.LineHeight, tt.layout.Log.Max.Y)
		})
	}
}

func TestLabelledLayoutRejectsShortScreen(t *testing.T) {
	l := LabelledLayout(128, 32)
	assert.Error(t, l.Validate())
}

func TestLayoutByNameUnknown(t *testing.T) {
	_, err := LayoutByName("fancy", 128, 64)
	assert.Error(t, err)

	l, err := LayoutByName("", 128, 64)
	require.NoError(t, err)
	assert.Equal(t, DefaultLayout(128, 64), l)
}
