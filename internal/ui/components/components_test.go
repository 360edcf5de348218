package components

import (
	"testing"

	"github.com/alexchase32/lessbuilder/internal/exercise"
)

func TestNextSkipsDisabled(t *testing.T) {
	opts := []exercise.Option{
		{Label: "e"},
		{Label: "l", Disabled: true},
		{Label: " ", Disabled: true},
		{Label: "a"},
	}
	tests := []struct {
		cursor, step, want int
	}{
		{-1, 1, 0},
		{0, 1, 3},
		{3, 1, 3},
		{3, -1, 0},
		{0, -1, 0},
	}
	for _, tt := range tests {
		if got := Next(opts, tt.cursor, tt.step); got != tt.want {
			t.Errorf("Next(%d, %d) = %d, want %d", tt.cursor, tt.step, got, tt.want)
		}
	}
}

func TestClock(t *testing.T) {
	for secs, want := range map[int]string{0: "0:00", 9: "0:09", 75: "1:15", 300: "5:00", -3: "0:00"} {
		if got := Clock(secs); got != want {
			t.Errorf("Clock(%d) = %q, want %q", secs, got, want)
		}
	}
}
