package statusscreen

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultCapacity is the largest number of log lines kept when neither
// Opts.Capacity nor Layout.Lines is set.
const DefaultCapacity = 5

// Opts is the configuration for a Screen.
type Opts struct {
	// Region placement (default: DefaultLayout(128, 64))
	Layout *Layout

	// Log lines kept on screen, at most Layout.MaxLines()
	// (default: Layout.DefaultLines())
	Capacity int

	// Values drawn by the initial refresh (default: zero values)
	Status Status

	// Presentation (defaults: PlainFixLabel, EncryptionStats)
	FixLabel FixLabelFunc
	Stats    StatsFormatter

	// Optional logger, nil discards
	Logger logrus.FieldLogger
}

// Status is everything a full refresh draws besides the log.
type Status struct {
	Hour   int
	Minute int
	Fixed  bool
	Stats  Stats
}

// State is the set of values last drawn on screen. The *Set flags are false
// until the corresponding region has been drawn once.
type State struct {
	Hour     int
	Minute   int
	ClockSet bool

	Fixed  bool
	FixSet bool

	Stats    Stats
	StatsSet bool
}

// Screen is the status overview shown on the display.
//
// It owns the log buffer and translates clock, fix, stats and log values into
// draw commands on a Renderer. A Screen must only be used from one goroutine.
type Screen struct {
	r      Renderer
	layout Layout
	log    *LogBuffer

	fixLabel FixLabelFunc
	stats    StatsFormatter
	logger   logrus.FieldLogger

	state State
}

// New creates a Screen drawing on r and performs the initial full refresh
// with opts.Status.
//
// opts can be nil to use defaults.
func New(r Renderer, opts *Opts) (*Screen, error) {
	if r == nil {
		return nil, errors.New("statusscreen: renderer is required")
	}
	if opts == nil {
		opts = &Opts{}
	}

	layout := DefaultLayout(128, 64)
	if opts.Layout != nil {
		layout = *opts.Layout
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	capacity := opts.Capacity
	if capacity < 0 {
		return nil, errors.New("statusscreen: capacity must be positive")
	}
	if capacity == 0 {
		capacity = layout.DefaultLines()
	}
	if fit := layout.MaxLines(); capacity > fit {
		return nil, fmt.Errorf("statusscreen: capacity %d exceeds the %d log lines the layout holds", capacity, fit)
	}

	s := &Screen{
		r:        r,
		layout:   layout,
		log:      NewLogBuffer(capacity),
		fixLabel: opts.FixLabel,
		stats:    opts.Stats,
		logger:   opts.Logger,
	}
	if s.fixLabel == nil {
		s.fixLabel = PlainFixLabel
	}
	if s.stats == nil {
		s.stats = EncryptionStats
	}
	if s.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.logger = l
	}

	if err := s.Refresh(opts.Status); err != nil {
		return nil, err
	}
	return s, nil
}

// Refresh redraws the whole screen: it clears everything, draws the
// dividers and every region, then commits once.
func (s *Screen) Refresh(st Status) error {
	l := &s.layout
	s.r.ClearRegion(l.Bounds())
	s.r.DrawLine(0, l.TopDivider, l.Width-1, l.TopDivider)
	s.r.DrawLine(0, l.BottomDivider, l.Width-1, l.BottomDivider)

	// Composite updates never commit, their errors are always nil.
	_ = s.UpdateClock(st.Hour, st.Minute, PartOfFullRepaint)
	_ = s.UpdateFix(st.Fixed, PartOfFullRepaint)
	_ = s.UpdateStats(st.Stats, PartOfFullRepaint)
	_ = s.UpdateLog(PartOfFullRepaint)

	s.logger.WithFields(logrus.Fields{
		"clock": FormatClock(st.Hour, st.Minute),
		"fixed": st.Fixed,
		"lines": s.log.Len(),
	}).Debug("full refresh")
	if err := s.r.Commit(); err != nil {
		return fmt.Errorf("statusscreen: refresh: %w", err)
	}
	return nil
}

// UpdateClock draws the clock region.
func (s *Screen) UpdateClock(hour, minute int, mode Mode) error {
	return s.region("clock", s.layout.Clock, mode, func() {
		s.r.SetCursor(s.layout.ClockAt.X, s.layout.ClockAt.Y)
		s.r.DrawText(FormatClock(hour, minute))
		s.state.Hour, s.state.Minute, s.state.ClockSet = hour, minute, true
	})
}

// UpdateFix draws the GPS fix region.
func (s *Screen) UpdateFix(fixed bool, mode Mode) error {
	return s.region("fix", s.layout.Fix, mode, func() {
		l := &s.layout
		label := s.fixLabel(fixed)
		x := l.FixAt.X
		if l.FixAlignRight {
			x = l.Width - s.textWidth(label)
		}
		s.r.SetCursor(x, l.FixAt.Y)
		s.r.DrawText(label)
		if fixed && l.DishRadius > 0 {
			s.drawDish(l.Dish, l.DishRadius)
		}
		s.state.Fixed, s.state.FixSet = fixed, true
	})
}

// UpdateStats draws the stats region.
func (s *Screen) UpdateStats(st Stats, mode Mode) error {
	return s.region("stats", s.layout.Stats, mode, func() {
		s.r.SetCursor(s.layout.StatsAt.X, s.layout.StatsAt.Y)
		s.r.DrawText(s.stats(st))
		s.state.Stats, s.state.StatsSet = st, true
	})
}

// UpdateLog draws the log region from the current buffer contents.
func (s *Screen) UpdateLog(mode Mode) error {
	return s.region("log", s.layout.Log, mode, func() {
		l := &s.layout
		x := l.LogAt.X
		if l.LogLabel != "" {
			s.r.SetCursor(x, l.LogAt.Y)
			s.r.DrawText(l.LogLabel)
			x += s.textWidth(l.LogLabel)
		}
		for i, line := range s.log.Snapshot() {
			s.r.SetCursor(x, l.LogAt.Y+i*l.LineHeight)
			s.r.DrawText(line)
		}
	})
}

// PushMessage appends text to the log and redraws the log region.
func (s *Screen) PushMessage(text string) error {
	s.log.Push(text)
	return s.UpdateLog(Live)
}

// OverwriteLastMessage replaces the newest log line with text and redraws
// the log region. With an empty log it behaves like PushMessage.
func (s *Screen) OverwriteLastMessage(text string) error {
	s.log.OverwriteLast(text)
	return s.UpdateLog(Live)
}

// State returns the values last drawn on screen.
func (s *Screen) State() State {
	return s.state
}

// Messages returns the log lines currently shown, oldest first.
func (s *Screen) Messages() []string {
	return s.log.Snapshot()
}

// Layout returns the layout in use.
func (s *Screen) Layout() Layout {
	return s.layout
}

// region runs draw for one region. Live mode wraps it in a clear of the
// region and a commit.
func (s *Screen) region(name string, r image.Rectangle, mode Mode, draw func()) error {
	if mode == PartOfFullRepaint {
		draw()
		return nil
	}
	s.r.ClearRegion(r)
	draw()
	s.logger.WithField("region", name).Debug("partial update")
	if err := s.r.Commit(); err != nil {
		return fmt.Errorf("statusscreen: %s update: %w", name, err)
	}
	return nil
}

// drawDish draws a circle with a crosshair centered on c.
func (s *Screen) drawDish(c image.Point, r int) {
	s.r.DrawCircle(c.X, c.Y, r)
	s.r.DrawLine(c.X, c.Y-r, c.X, c.Y+r)
	s.r.DrawLine(c.X-r, c.Y, c.X+r, c.Y)
}

func (s *Screen) textWidth(text string) int {
	if m, ok := s.r.(TextMeasurer); ok {
		return m.TextWidth(text)
	}
	return len(text) * s.layout.CharWidth
}
