package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/flavioheleno/statusscreen"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type commandKind int

const (
	cmdPush commandKind = iota
	cmdOverwrite
	cmdFix
	cmdStats
	cmdRefresh
)

type command struct {
	kind  commandKind
	text  string
	fixed bool
	stats statusscreen.Stats
}

// parseCommand decodes one line of input.
func parseCommand(line string) (command, error) {
	switch {
	case strings.HasPrefix(line, "~"):
		return command{kind: cmdOverwrite, text: line[1:]}, nil
	case !strings.HasPrefix(line, "!"):
		return command{kind: cmdPush, text: line}, nil
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return command{}, errors.New("empty command")
	}
	switch fields[0] {
	case "fix":
		if len(fields) != 2 {
			return command{}, errors.New("usage: !fix on|off")
		}
		switch fields[1] {
		case "on":
			return command{kind: cmdFix, fixed: true}, nil
		case "off":
			return command{kind: cmdFix, fixed: false}, nil
		}
		return command{}, errors.Errorf("invalid fix state %q", fields[1])

	case "stats":
		if len(fields) != 4 {
			return command{}, errors.New("usage: !stats SCANNED OPEN WEP")
		}
		var n [3]int
		for i, f := range fields[1:] {
			v, err := strconv.Atoi(f)
			if err != nil {
				return command{}, errors.Wrapf(err, "invalid count %q", f)
			}
			n[i] = v
		}
		return command{kind: cmdStats, stats: statusscreen.Stats{Scanned: n[0], Open: n[1], WEP: n[2]}}, nil

	case "refresh":
		return command{kind: cmdRefresh}, nil
	}
	return command{}, errors.Errorf("unknown command %q", fields[0])
}

// controller is the single control loop state: it remembers the current
// status and forwards changes to the screen.
type controller struct {
	screen *statusscreen.Screen
	status statusscreen.Status
	log    logrus.FieldLogger
}

// startStatus is what the screen shows before any input: the UTC time of
// now, no fix and no counts.
func startStatus(now time.Time) statusscreen.Status {
	now = now.UTC()
	return statusscreen.Status{Hour: now.Hour(), Minute: now.Minute()}
}

// newController takes over a screen already showing status.
func newController(screen *statusscreen.Screen, status statusscreen.Status, log logrus.FieldLogger) *controller {
	return &controller{screen: screen, status: status, log: log}
}

// tick redraws the clock when the UTC minute changed.
func (c *controller) tick(now time.Time) error {
	now = now.UTC()
	if now.Hour() == c.status.Hour && now.Minute() == c.status.Minute {
		return nil
	}
	c.status.Hour, c.status.Minute = now.Hour(), now.Minute()
	return c.screen.UpdateClock(c.status.Hour, c.status.Minute, statusscreen.Live)
}

// handle applies one input line. Malformed lines are logged and skipped;
// only display errors are returned.
func (c *controller) handle(line string) error {
	cmd, err := parseCommand(line)
	if err != nil {
		c.log.WithError(err).WithField("line", line).Warn("Ignoring input")
		return nil
	}

	switch cmd.kind {
	case cmdPush:
		return c.screen.PushMessage(cmd.text)
	case cmdOverwrite:
		return c.screen.OverwriteLastMessage(cmd.text)
	case cmdFix:
		if cmd.fixed == c.status.Fixed {
			return nil
		}
		c.status.Fixed = cmd.fixed
		return c.screen.UpdateFix(cmd.fixed, statusscreen.Live)
	case cmdStats:
		if cmd.stats == c.status.Stats {
			return nil
		}
		c.status.Stats = cmd.stats
		return c.screen.UpdateStats(cmd.stats, statusscreen.Live)
	case cmdRefresh:
		return c.screen.Refresh(c.status)
	}
	return nil
}
