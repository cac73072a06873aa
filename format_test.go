package statusscreen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{5, 3, "05:03 UTC"},
		{0, 0, "00:00 UTC"},
		{8, 8, "08:08 UTC"},
		{9, 59, "9:59 UTC"}, // 9 is not padded
		{9, 9, "9:9 UTC"},
		{12, 0, "12:00 UTC"},
		{23, 10, "23:10 UTC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.hour, tt.minute), "FormatClock(%d, %d)", tt.hour, tt.minute)
	}
}

func TestFixLabels(t *testing.T) {
	assert.Equal(t, "GPS", PlainFixLabel(true))
	assert.Equal(t, "GPS (?)", PlainFixLabel(false))
	assert.Equal(t, "GPS |||", BarsFixLabel(true))
	assert.Equal(t, "GPS ---", BarsFixLabel(false))
}

func TestEncryptionStats(t *testing.T) {
	tests := []struct {
		name string
		st   Stats
		want string
	}{
		{"zero", Stats{}, "-:0 WEP:0 | 0"},
		{"below threshold", Stats{Scanned: 99999, Open: 2, WEP: 1}, "-:2 WEP:1 | 99999"},
		{"at threshold", Stats{Scanned: 100000, Open: 2, WEP: 1}, "-:2 WEP:1 | 100k"},
		{"truncates", Stats{Scanned: 123999, Open: 40, WEP: 7}, "-:40 WEP:7 | 123k"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncryptionStats(tt.st))
		})
	}
}

func TestNetworksStats(t *testing.T) {
	assert.Equal(t, "Networks: 0 ", NetworksStats(Stats{}))
	assert.Equal(t, "Networks: 99999 ", NetworksStats(Stats{Scanned: 99999}))
	assert.Equal(t, "Networks: 100k", NetworksStats(Stats{Scanned: 100000}))
	assert.Equal(t, "Networks: 250k", NetworksStats(Stats{Scanned: 250500}))
}

func TestBracketStats(t *testing.T) {
	assert.Equal(t, "[no_enc:4][wep:2]", BracketStats(Stats{Scanned: 500, Open: 4, WEP: 2}))
}

func TestGroupedStats(t *testing.T) {
	assert.Equal(t, "APs:0 open:0 wep:0", GroupedStats(Stats{}))
	assert.Equal(t, "APs:123,456 open:3 wep:1", GroupedStats(Stats{Scanned: 123456, Open: 3, WEP: 1}))
}

func TestFormattersByName(t *testing.T) {
	f, err := FixLabelByName("bars")
	require.NoError(t, err)
	assert.Equal(t, "GPS |||", f(true))

	_, err = FixLabelByName("stars")
	assert.EqualError(t, err, `statusscreen: unknown fix label "stars" (want one of bars, plain)`)

	s, err := StatsByName("networks")
	require.NoError(t, err)
	assert.Equal(t, "Networks: 7 ", s(Stats{Scanned: 7}))

	_, err = StatsByName("csv")
	assert.Error(t, err)
}
