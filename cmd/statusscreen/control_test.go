package main

import (
	"context"
	"image"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/flavioheleno/statusscreen"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRenderer counts commits and remembers the text drawn since the last one.
type countingRenderer struct {
	commits int
	texts   []string
}

func (r *countingRenderer) ClearRegion(image.Rectangle) {}
func (r *countingRenderer) SetCursor(x, y int)          {}
func (r *countingRenderer) DrawText(s string)           { r.texts = append(r.texts, s) }
func (r *countingRenderer) DrawLine(x0, y0, x1, y1 int) {}
func (r *countingRenderer) DrawCircle(cx, cy, rad int)  {}
func (r *countingRenderer) Commit() error {
	r.commits++
	return nil
}

func (r *countingRenderer) reset() {
	r.commits = 0
	r.texts = nil
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestController(t *testing.T, now time.Time) (*controller, *countingRenderer) {
	t.Helper()
	r := &countingRenderer{}
	st := startStatus(now)
	s, err := statusscreen.New(r, &statusscreen.Opts{Status: st})
	require.NoError(t, err)
	r.reset()
	return newController(s, st, quietLogger()), r
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want command
	}{
		{"Associated", command{kind: cmdPush, text: "Associated"}},
		{"", command{kind: cmdPush}},
		{"~Saving 12", command{kind: cmdOverwrite, text: "Saving 12"}},
		{"!fix on", command{kind: cmdFix, fixed: true}},
		{"!fix off", command{kind: cmdFix}},
		{"!stats 120 4 2", command{kind: cmdStats, stats: statusscreen.Stats{Scanned: 120, Open: 4, WEP: 2}}},
		{"! refresh", command{kind: cmdRefresh}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseCommand(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	tests := []struct {
		line    string
		wantErr string
	}{
		{"!", "empty command"},
		{"!reboot", `unknown command "reboot"`},
		{"!fix", "usage: !fix on|off"},
		{"!fix maybe", `invalid fix state "maybe"`},
		{"!stats 1 2", "usage: !stats"},
		{"!stats 1 x 2", `invalid count "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := parseCommand(tt.line)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestStartStatusUsesUTC(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	c, _ := newTestController(t, time.Date(2024, 6, 1, 14, 7, 0, 0, loc))

	st := c.screen.State()
	assert.Equal(t, 12, st.Hour)
	assert.Equal(t, 7, st.Minute)
}

func TestStartupDrawsOnce(t *testing.T) {
	r := &countingRenderer{}
	st := startStatus(time.Date(2024, 6, 1, 12, 7, 0, 0, time.UTC))
	_, err := statusscreen.New(r, &statusscreen.Opts{Status: st})
	require.NoError(t, err)

	assert.Equal(t, 1, r.commits)
	assert.Contains(t, r.texts, "12:07 UTC")
}

func TestTickOnlyOnMinuteChange(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 7, 10, 0, time.UTC)
	c, r := newTestController(t, start)

	require.NoError(t, c.tick(start.Add(30*time.Second)))
	assert.Zero(t, r.commits, "same minute")

	require.NoError(t, c.tick(start.Add(time.Minute)))
	assert.Equal(t, 1, r.commits)
	assert.Equal(t, []string{"12:08 UTC"}, r.texts)
}

func TestHandle(t *testing.T) {
	c, r := newTestController(t, time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC))

	require.NoError(t, c.handle("scan started"))
	require.NoError(t, c.handle("~scan running"))
	assert.Equal(t, []string{"scan running"}, c.screen.Messages())
	assert.Equal(t, 2, r.commits)

	r.reset()
	require.NoError(t, c.handle("!fix on"))
	require.NoError(t, c.handle("!fix on"))
	assert.Equal(t, 1, r.commits, "unchanged fix is not redrawn")
	assert.True(t, c.screen.State().Fixed)

	r.reset()
	require.NoError(t, c.handle("!stats 10 3 1"))
	require.NoError(t, c.handle("!stats 10 3 1"))
	assert.Equal(t, 1, r.commits, "unchanged stats are not redrawn")
	assert.Equal(t, statusscreen.Stats{Scanned: 10, Open: 3, WEP: 1}, c.screen.State().Stats)

	r.reset()
	require.NoError(t, c.handle("!refresh"))
	assert.Equal(t, 1, r.commits)
	assert.Contains(t, r.texts, "9:30 UTC")

	r.reset()
	require.NoError(t, c.handle("!bogus"))
	assert.Zero(t, r.commits, "malformed input is skipped")
}

func TestLoopStopsAtEndOfInput(t *testing.T) {
	c, _ := newTestController(t, time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC))

	in := strings.NewReader("one\ntwo\n!fix on\n")
	err := loop(context.Background(), c, readLines(context.Background(), in), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, c.screen.Messages())
	assert.True(t, c.screen.State().Fixed)
}

func TestLoopStopsOnCancel(t *testing.T) {
	c, _ := newTestController(t, time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, loop(ctx, c, make(chan string), nil))
}

// endless yields the same line forever.
type endless struct{}

func (endless) Read(p []byte) (int, error) {
	n := 0
	for n+1 < len(p) {
		p[n], p[n+1] = 'x', '\n'
		n += 2
	}
	return n, nil
}

func TestReadLinesStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	lines := readLines(ctx, endless{})
	assert.Equal(t, "x", <-lines)

	cancel()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-lines:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("reader did not stop after cancel")
		}
	}
}
