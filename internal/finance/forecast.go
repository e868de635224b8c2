package finance

import (
	"math"
	"time"
)

// DefaultAnnualGrowthPercent is the assumed growth rate for the forward
// net-worth trend line when the caller does not supply one.
const DefaultAnnualGrowthPercent = 5.0

// Window identifies a trailing display range selected on the dashboard.
type Window string

const (
	Window1M  Window = "1m"
	Window3M  Window = "3m"
	Window6M  Window = "6m"
	Window1Y  Window = "1y"
	WindowAll Window = "all"
)

// windowHorizons maps each display window to its forecast horizon in days.
// Shorter windows get shorter horizons so the projected tail stays in
// proportion to the visible history.
var windowHorizons = map[Window]int{
	Window1M:  14,
	Window3M:  30,
	Window6M:  45,
	Window1Y:  60,
	WindowAll: 90,
}

// HorizonForWindow returns the forecast horizon in days for a display
// window. Unknown windows fall back to the all-time horizon.
func HorizonForWindow(w Window) int {
	if days, ok := windowHorizons[w]; ok {
		return days
	}
	return windowHorizons[WindowAll]
}

// Duration returns the trailing span the window covers. The all-time
// window returns zero, meaning no lower bound.
func (w Window) Duration() time.Duration {
	switch w {
	case Window1M:
		return 30 * 24 * time.Hour
	case Window3M:
		return 91 * 24 * time.Hour
	case Window6M:
		return 182 * 24 * time.Hour
	case Window1Y:
		return 365 * 24 * time.Hour
	}
	return 0
}

// ForecastSeed is the last observed point a forecast extends from.
type ForecastSeed struct {
	Date     time.Time `json:"date"`
	NetWorth float64   `json:"net_worth"`
}

// ForecastPoint is one projected net-worth value.
type ForecastPoint struct {
	Date             time.Time `json:"date"`
	ForecastNetWorth float64   `json:"forecast_net_worth"`
}

// Forecast extrapolates net worth forward from the seed at the assumed
// annual growth rate, compounding daily and emitting weekly-spaced points
// through horizonDays. The first point restates the seed unchanged so a
// rendered line joins the historical series without a gap.
func Forecast(seed ForecastSeed, horizonDays int, annualGrowthPercent float64) []ForecastPoint {
	dailyRate := math.Pow(1+annualGrowthPercent/100, 1.0/365.0)

	points := []ForecastPoint{{
		Date:             seed.Date,
		ForecastNetWorth: seed.NetWorth,
	}}
	for days := 7; days <= horizonDays; days += 7 {
		points = append(points, ForecastPoint{
			Date:             seed.Date.AddDate(0, 0, days),
			ForecastNetWorth: Round2(seed.NetWorth * math.Pow(dailyRate, float64(days))),
		})
	}
	return points
}
