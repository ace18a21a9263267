package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSideFromQty(t *testing.T) {
	assert.Equal(t, SideLong, SideFromQty(10))
	assert.Equal(t, SideLong, SideFromQty(0))
	assert.Equal(t, SideShort, SideFromQty(-10))
}

func TestGainPct(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want float64
	}{
		{"Long profit", Position{Side: SideLong, AvgEntry: 100, Current: 103}, 3.0},
		{"Long loss", Position{Side: SideLong, AvgEntry: 100, Current: 95}, -5.0},
		{"Short profit on price drop", Position{Side: SideShort, AvgEntry: 100, Current: 97}, 3.0},
		{"Short loss on price rise", Position{Side: SideShort, AvgEntry: 100, Current: 105}, -5.0},
		{"Zero entry guarded", Position{Side: SideLong, AvgEntry: 0, Current: 100}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.pos.GainPct(), 1e-9)
		})
	}
}

func TestRunTimes(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	schedule := MarketSchedule{
		Open:  time.Date(2026, 8, 31, 9, 30, 0, 0, loc),
		Close: time.Date(2026, 8, 31, 16, 0, 0, 0, loc),
	}

	runs := schedule.RunTimes()
	assert.Equal(t, []time.Time{
		time.Date(2026, 8, 31, 9, 30, 0, 0, loc),
		time.Date(2026, 8, 31, 12, 45, 0, 0, loc),
		time.Date(2026, 8, 31, 15, 30, 0, 0, loc),
	}, runs)
}
