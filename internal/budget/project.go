package budget

import (
	"time"

	"finmo/internal/core"

	"github.com/teambition/rrule-go"
)

// DefaultHorizonDays is the forecast window used when none is configured.
const DefaultHorizonDays = 30

// Project simulates the balance day by day from today for horizonDays days,
// returning horizonDays+1 points (day 0 is today). A negative horizon is
// treated as zero, so the series always holds at least today.
//
// On every simulated payday after today, base income is credited and all
// fixed obligations are debited on the same day. A payday that does not
// exist in a month (31 in a 30-day month) does not fire in that month.
// Displayed balances are floored at zero.
func Project(stats core.BudgetStats, payday int, baseIncome core.Money, horizonDays int, today time.Time) []core.ForecastPoint {
	if horizonDays < 0 {
		horizonDays = 0
	}

	start := startOfDay(today)
	end := start.AddDate(0, 0, horizonDays)
	events := paydaysBetween(start, end, payday)
	tax := core.DefaultTaxonomy()

	balance := stats.Balance()
	fixedPerMonth := stats.FixedPerMonth()

	points := make([]core.ForecastPoint, 0, horizonDays+1)
	for i := 0; i <= horizonDays; i++ {
		date := start.AddDate(0, 0, i)
		if _, ok := events[date.Format(time.DateOnly)]; ok && i > 0 {
			balance = balance.Add(baseIncome).Sub(fixedPerMonth)
		}
		points = append(points, core.ForecastPoint{
			Date:    date,
			Label:   tax.DayLabel(date),
			Balance: balance.NonNegative(),
		})
	}

	return points
}

// paydaysBetween returns the set of payday dates in [start, end] keyed by
// YYYY-MM-DD. A monthly rule with BYMONTHDAY skips months where the day
// does not exist, which is exactly the no-clamp behaviour wanted here.
func paydaysBetween(start, end time.Time, payday int) map[string]struct{} {
	out := make(map[string]struct{})
	if core.ValidatePayday(payday) != nil {
		return out
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:       rrule.MONTHLY,
		Dtstart:    start,
		Bymonthday: []int{payday},
	})
	if err != nil {
		return out
	}

	for _, dt := range r.Between(start, end, true) {
		out[dt.In(start.Location()).Format(time.DateOnly)] = struct{}{}
	}
	return out
}

// DaysUntilPayday counts the days from today to the next payday. When today
// is the payday or later in the month, the count wraps into next month using
// the length of the current month.
func DaysUntilPayday(today time.Time, payday int) int {
	day := today.Day()
	if day < payday {
		return payday - day
	}
	return (daysInMonth(today) - day) + payday
}

// SafeToSpendDaily spreads the current balance over the days left until
// payday. The divisor is floored at 1 and the result at zero.
func SafeToSpendDaily(stats core.BudgetStats, daysUntilPayday int) core.Money {
	return stats.Balance().DivDays(daysUntilPayday).NonNegative()
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
