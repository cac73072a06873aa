package statusscreen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Stats holds the scan counters shown in the stats region.
type Stats struct {
	Scanned int // access points seen so far
	Open    int // without encryption
	WEP     int // WEP encrypted
}

// FixLabelFunc maps the GPS fix state to the text shown in the fix region.
type FixLabelFunc func(fixed bool) string

// StatsFormatter turns the scan counters into the stats line.
type StatsFormatter func(st Stats) string

// abbreviateAbove is the largest scan count printed in full.
const abbreviateAbove = 99999

// FormatClock formats a UTC time of day as "HH:MM UTC".
//
// Values below 9 get a leading zero; 9 itself does not, so 9:09 renders as
// "9:9 UTC".
func FormatClock(hour, minute int) string {
	return padClock(hour) + ":" + padClock(minute) + " UTC"
}

func padClock(v int) string {
	if v < 9 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// PlainFixLabel renders "GPS" with a fix and "GPS (?)" without.
func PlainFixLabel(fixed bool) string {
	if fixed {
		return "GPS"
	}
	return "GPS (?)"
}

// BarsFixLabel renders "GPS |||" with a fix and "GPS ---" without.
func BarsFixLabel(fixed bool) string {
	if fixed {
		return "GPS |||"
	}
	return "GPS ---"
}

// abbreviate returns n in thousands when it is above abbreviateAbove.
func abbreviate(n int) (v int, thousands bool) {
	if n > abbreviateAbove {
		return n / 1000, true
	}
	return n, false
}

// EncryptionStats renders "-:<open> WEP:<wep> | <scanned>", with scanned
// shortened to "<n>k" above 99999.
func EncryptionStats(st Stats) string {
	v, k := abbreviate(st.Scanned)
	s := fmt.Sprintf("-:%d WEP:%d | %d", st.Open, st.WEP, v)
	if k {
		s += "k"
	}
	return s
}

// NetworksStats renders "Networks: <scanned><suffix>" where suffix is "k"
// above 99999 and a single space otherwise.
func NetworksStats(st Stats) string {
	v, k := abbreviate(st.Scanned)
	suffix := " "
	if k {
		suffix = "k"
	}
	return "Networks: " + strconv.Itoa(v) + suffix
}

// BracketStats renders only the encryption counters as
// "[no_enc:<open>][wep:<wep>]".
func BracketStats(st Stats) string {
	return fmt.Sprintf("[no_enc:%d][wep:%d]", st.Open, st.WEP)
}

// GroupedStats renders "APs:<scanned> open:<open> wep:<wep>" with the scan
// count grouped in thousands.
func GroupedStats(st Stats) string {
	return fmt.Sprintf("APs:%s open:%d wep:%d", humanize.Comma(int64(st.Scanned)), st.Open, st.WEP)
}

var fixLabels = map[string]FixLabelFunc{
	"plain": PlainFixLabel,
	"bars":  BarsFixLabel,
}

var statsFormatters = map[string]StatsFormatter{
	"encryption": EncryptionStats,
	"networks":   NetworksStats,
	"bracket":    BracketStats,
	"grouped":    GroupedStats,
}

// FixLabelByName returns the fix label formatter registered as name.
// Known names are "plain" and "bars".
func FixLabelByName(name string) (FixLabelFunc, error) {
	if f, ok := fixLabels[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("statusscreen: unknown fix label %q (want one of %s)", name, names(fixLabels))
}

// StatsByName returns the stats formatter registered as name.
// Known names are "encryption", "networks", "bracket" and "grouped".
func StatsByName(name string) (StatsFormatter, error) {
	if f, ok := statsFormatters[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("statusscreen: unknown stats format %q (want one of %s)", name, names(statsFormatters))
}

func names[V any](m map[string]V) string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}
