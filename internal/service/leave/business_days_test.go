package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestBusinessDays(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"week spanning a weekend", d(2024, time.January, 1), d(2024, time.January, 7), 5},
		{"single weekday", d(2025, time.March, 14), d(2025, time.March, 14), 1},
		{"single saturday", d(2025, time.March, 15), d(2025, time.March, 15), 0},
		{"weekend only", d(2025, time.March, 15), d(2025, time.March, 16), 0},
		{"friday to monday", d(2025, time.March, 14), d(2025, time.March, 17), 2},
		{"two full weeks", d(2025, time.March, 3), d(2025, time.March, 16), 10},
		{"inverted range", d(2025, time.March, 17), d(2025, time.March, 14), 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, BusinessDays(c.start, c.end))
		})
	}
}

func TestBusinessDays_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2025, time.March, 14, 23, 59, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 17, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 2, BusinessDays(start, end))
}
