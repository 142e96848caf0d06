package storage

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 18, 30, 0, 0, time.UTC)
}

// TestStreakDays verifies streak counting: consecutive days, the yesterday
// grace when today has no session yet, and gaps breaking the streak.
func TestStreakDays(t *testing.T) {
	now := day(2026, time.September, 1) // Tuesday

	tests := []struct {
		name      string
		completed []time.Time
		want      int
	}{
		{
			name: "none",
			want: 0,
		},
		{
			name:      "today only",
			completed: []time.Time{day(2026, time.September, 1)},
			want:      1,
		},
		{
			name: "three consecutive days ending today",
			completed: []time.Time{
				day(2026, time.September, 1),
				day(2026, time.August, 31),
				day(2026, time.August, 30),
			},
			want: 3,
		},
		{
			name: "yesterday keeps the streak alive",
			completed: []time.Time{
				day(2026, time.August, 31),
				day(2026, time.August, 30),
			},
			want: 2,
		},
		{
			name:      "two days ago is a broken streak",
			completed: []time.Time{day(2026, time.August, 30)},
			want:      0,
		},
		{
			name: "gap stops the count",
			completed: []time.Time{
				day(2026, time.September, 1),
				day(2026, time.August, 30),
			},
			want: 1,
		},
		{
			name: "multiple sessions on one day count once",
			completed: []time.Time{
				day(2026, time.September, 1),
				day(2026, time.September, 1),
			},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := streakDays(tt.completed, now); got != tt.want {
				t.Errorf("streakDays = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestStartOfWeek verifies the week starts on Monday, including the Sunday
// wrap-around.
func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"monday maps to itself", day(2026, time.August, 31), time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)},
		{"midweek", day(2026, time.September, 3), time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)},
		{"sunday belongs to the previous monday", day(2026, time.September, 6), time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := startOfWeek(tt.now); !got.Equal(tt.want) {
				t.Errorf("startOfWeek(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
