package finance

import (
	"math"
	"testing"
	"time"
)

func TestForecast(t *testing.T) {
	seed := ForecastSeed{
		Date:     time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC),
		NetWorth: 250000,
	}

	t.Run("first_point_restates_seed", func(t *testing.T) {
		points := Forecast(seed, 90, DefaultAnnualGrowthPercent)
		if len(points) == 0 {
			t.Fatal("empty forecast")
		}
		if !points[0].Date.Equal(seed.Date) {
			t.Errorf("first point at %v, want %v", points[0].Date, seed.Date)
		}
		if points[0].ForecastNetWorth != seed.NetWorth {
			t.Errorf("first point %.2f, want %.2f", points[0].ForecastNetWorth, seed.NetWorth)
		}
	})

	t.Run("weekly_spacing_through_horizon", func(t *testing.T) {
		points := Forecast(seed, 90, DefaultAnnualGrowthPercent)
		// Continuity point plus one per full week inside 90 days.
		if len(points) != 1+90/7 {
			t.Fatalf("expected %d points, got %d", 1+90/7, len(points))
		}
		for i := 1; i < len(points); i++ {
			want := seed.Date.AddDate(0, 0, 7*i)
			if !points[i].Date.Equal(want) {
				t.Errorf("point %d at %v, want %v", i, points[i].Date, want)
			}
		}
	})

	t.Run("compounds_at_daily_rate", func(t *testing.T) {
		points := Forecast(seed, 14, 5.0)
		dailyRate := math.Pow(1.05, 1.0/365.0)
		want := Round2(250000 * math.Pow(dailyRate, 14))
		got := points[len(points)-1].ForecastNetWorth
		if math.Abs(got-want) > tolerance {
			t.Errorf("day-14 point %.2f, want %.2f", got, want)
		}
		if got <= seed.NetWorth {
			t.Errorf("forecast %.2f did not grow from %.2f", got, seed.NetWorth)
		}
	})

	t.Run("short_horizon_still_has_continuity_point", func(t *testing.T) {
		points := Forecast(seed, 3, 5.0)
		if len(points) != 1 {
			t.Fatalf("expected only the continuity point, got %d points", len(points))
		}
	})
}

func TestHorizonForWindow(t *testing.T) {
	cases := []struct {
		window Window
		days   int
	}{
		{Window1M, 14},
		{Window3M, 30},
		{Window6M, 45},
		{Window1Y, 60},
		{WindowAll, 90},
		{Window("bogus"), 90},
	}
	for _, tc := range cases {
		if got := HorizonForWindow(tc.window); got != tc.days {
			t.Errorf("window %q: horizon %d, want %d", tc.window, got, tc.days)
		}
	}
}
