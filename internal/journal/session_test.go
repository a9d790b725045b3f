package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifySession(t *testing.T) {
	testCases := []struct {
		hour     int
		expected string
	}{
		{0, SessionAsia},
		{1, SessionAsia},
		{2, SessionLondon},
		{7, SessionLondon},
		{8, SessionNY},
		{10, SessionNY},
		{16, SessionNY},
		{17, SessionAsia}, // the 17:00-18:00 gap belongs to Asia
		{18, SessionAsia},
		{23, SessionAsia},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			ts := time.Date(2026, 1, 15, tc.hour, 30, 0, 0, time.UTC)
			assert.Equal(t, tc.expected, ClassifySession(ts, time.UTC))
		})
	}
}

func TestClassifySessionHonorsLocation(t *testing.T) {
	// 15:00 UTC is 10:00 in New York in January.
	ny, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	ts := time.Date(2026, 1, 15, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, SessionNY, ClassifySession(ts, ny))
	assert.Equal(t, SessionNY, ClassifySession(ts, time.UTC))

	// 23:00 UTC is 18:00 in New York: Asia there, Asia in UTC too.
	ts = time.Date(2026, 1, 15, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, SessionAsia, ClassifySession(ts, ny))
}
