package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallsBack(t *testing.T) {
	assert.Equal(t, "UTC", Location("UTC").String())

	loc := Location("Mars/Olympus")
	assert.Contains(t, []string{DefaultTimezone, "UTC"}, loc.String())
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	start, end, err := DayBounds("2024-06-10", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 3, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 6, 11, 3, 0, 0, 0, time.UTC), end)

	_, _, err = DayBounds("10/06/2024", loc)
	assert.Error(t, err)
}

func TestRangeBounds(t *testing.T) {
	start, end, err := RangeBounds("2024-06-01", "2024-06-30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), end)
}
