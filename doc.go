// Package statusscreen draws the status overview of a war-walking scanner on
// a small monochrome display.
//
// The screen is split into four fixed regions:
//
//	+----------------------------+
//	| 05:03 UTC       GPS (o)    |  clock, GPS fix
//	+----------------------------+
//	| scanning ch 6              |
//	| found 3 new                |  log, oldest line first
//	| ...                        |
//	+----------------------------+
//	| -:2 WEP:1 | 100k           |  stats
//	+----------------------------+
//
// # Drawing
//
// A Screen does not touch pixels. It issues primitive commands (clear a
// rectangle, place the cursor, draw text, lines and circles, commit) to a
// Renderer. The canvas subpackage provides a Renderer that draws into an
// in-memory frame and sends the changed rectangle to any periph.io
// display.Drawer, such as the periph.io SSD1306 driver or the terminal preview
// in the termdisplay subpackage.
//
// # Updating
//
// Each region can be redrawn on its own:
//
//	screen.UpdateClock(now.Hour(), now.Minute(), statusscreen.Live)
//
// Live updates clear only their region and commit immediately, so the rest of
// the screen is left as it is. Refresh redraws everything and commits once:
//
//	screen.Refresh(statusscreen.Status{
//		Hour:   now.Hour(),
//		Minute: now.Minute(),
//		Fixed:  true,
//		Stats:  statusscreen.Stats{Scanned: 1234, Open: 12, WEP: 3},
//	})
//
// Log lines are kept in a bounded LogBuffer. PushMessage appends a line,
// evicting the oldest once the log is full, and redraws the log region.
// OverwriteLastMessage replaces the newest line, which suits progress
// messages that update in place.
//
// # Presentation
//
// Two layouts reproduce the known device screens: DefaultLayout
// ("GPS"/"GPS (?)" with a satellite dish, five log lines) and LabelledLayout
// (right-aligned fix label, a "Log: " prefix and three log lines). The fix
// label and stats line are pluggable through FixLabelFunc and StatsFormatter.
//
// Layout.Validate checks that every text box, TextHeight rows tall, stays in
// the region a live update clears, and New rejects a log capacity the log
// region cannot hold.
package statusscreen
