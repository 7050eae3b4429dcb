package budget

import (
	"testing"
	"time"

	"finmo/internal/core"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func TestProjectPaydayCreditsIncomeAndDebitsFixed(t *testing.T) {
	stats := core.BudgetStats{
		BaseIncome:  mt(30000),
		TotalIncome: mt(30000),
		TotalSpent:  mt(10000),
		FixedNeeds:  mt(10000),
		FixedWants:  mt(2000),
	}

	points := Project(stats, 5, mt(30000), 30, day(2025, time.October, 1))

	if len(points) != 31 {
		t.Fatalf("expected 31 points, got %d", len(points))
	}
	for i := 0; i < 4; i++ {
		if points[i].Balance != mt(20000) {
			t.Fatalf("day %d balance = %s, want 20000", i, points[i].Balance)
		}
	}
	if points[4].Balance != mt(38000) {
		t.Fatalf("payday balance = %s, want 38000", points[4].Balance)
	}
	if points[4].Label != "05 out" {
		t.Fatalf("payday label = %q", points[4].Label)
	}
	if points[30].Balance != mt(38000) {
		t.Fatalf("no second payday within 30 days, got %s", points[30].Balance)
	}
}

func TestProjectTodayIsPaydayDoesNotFire(t *testing.T) {
	stats := core.BudgetStats{TotalIncome: mt(100)}
	points := Project(stats, 15, mt(1000), 10, day(2025, time.October, 15))
	for i, p := range points {
		if p.Balance != mt(100) {
			t.Fatalf("day %d balance = %s", i, p.Balance)
		}
	}
}

func TestProjectLengthAndFloor(t *testing.T) {
	stats := core.BudgetStats{TotalIncome: mt(100), TotalSpent: mt(5000), FixedNeeds: mt(900)}
	for _, horizon := range []int{1, 7, 30, 45} {
		points := Project(stats, 10, mt(200), horizon, day(2025, time.January, 20))
		if len(points) != horizon+1 {
			t.Fatalf("horizon %d: got %d points", horizon, len(points))
		}
		for i, p := range points {
			if p.Balance.IsNegative() {
				t.Fatalf("horizon %d day %d: negative balance %s", horizon, i, p.Balance)
			}
		}
	}
}

func TestProjectShortHorizons(t *testing.T) {
	today := day(2025, time.March, 3)
	stats := core.BudgetStats{TotalIncome: mt(1000)}

	tests := []struct {
		name    string
		horizon int
		want    int
	}{
		{"zero is today only", 0, 1},
		{"negative clamps to today", -5, 1},
		{"one day", 1, 2},
		{"default", DefaultHorizonDays, DefaultHorizonDays + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := Project(stats, 3, mt(500), tt.horizon, today)
			if len(points) != tt.want {
				t.Fatalf("len = %d, want %d", len(points), tt.want)
			}
			if got := points[0].Date.Format(time.DateOnly); got != "2025-03-03" {
				t.Fatalf("first date = %s, want 2025-03-03", got)
			}
			if points[0].Balance != stats.Balance() {
				t.Fatalf("day 0 balance = %s, want %s", points[0].Balance, stats.Balance())
			}
		})
	}
}

func TestProjectEmptyStatsStaysFlat(t *testing.T) {
	points := Project(core.BudgetStats{}, 1, core.Money{}, 30, day(2025, time.March, 3))
	for i, p := range points {
		if p.Balance.Cents != 0 {
			t.Fatalf("day %d balance = %s", i, p.Balance)
		}
	}
}

func TestProjectPayday31SkipsShortMonth(t *testing.T) {
	stats := core.BudgetStats{TotalIncome: mt(100)}

	// September has 30 days; the window ends on October 1st.
	points := Project(stats, 31, mt(1000), 30, day(2025, time.September, 1))
	for i, p := range points {
		if p.Balance != mt(100) {
			t.Fatalf("day %d balance = %s, payday 31 must not fire in September", i, p.Balance)
		}
	}

	points = Project(stats, 31, mt(1000), 30, day(2025, time.October, 1))
	last := points[len(points)-1]
	if last.Date.Day() != 31 || last.Balance != mt(1100) {
		t.Fatalf("expected payday on October 31st, got %s on %v", last.Balance, last.Date)
	}
	if points[29].Balance != mt(100) {
		t.Fatalf("income credited too early: %s", points[29].Balance)
	}
}

func TestProjectInvalidPaydayNeverFires(t *testing.T) {
	stats := core.BudgetStats{TotalIncome: mt(100)}
	for _, payday := range []int{0, 32, -1} {
		points := Project(stats, payday, mt(1000), 40, day(2025, time.May, 1))
		if got := points[len(points)-1].Balance; got != mt(100) {
			t.Fatalf("payday %d fired: %s", payday, got)
		}
	}
}

func TestProjectIsIdempotent(t *testing.T) {
	stats := core.BudgetStats{TotalIncome: mt(100), FixedWants: mt(10)}
	today := day(2025, time.June, 12)
	a := Project(stats, 20, mt(50), 30, today)
	b := Project(stats, 20, mt(50), 30, today)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("day %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestDaysUntilPayday(t *testing.T) {
	cases := []struct {
		name   string
		today  time.Time
		payday int
		want   int
	}{
		{"before payday", day(2025, time.October, 1), 5, 4},
		{"wraps in 31-day month", day(2025, time.October, 28), 5, 8},
		{"wraps in 30-day month", day(2025, time.September, 28), 5, 7},
		{"today is payday", day(2025, time.October, 5), 5, 31},
		{"february", day(2025, time.February, 27), 1, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysUntilPayday(tc.today, tc.payday); got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSafeToSpendDaily(t *testing.T) {
	stats := core.BudgetStats{TotalIncome: mt(1000), TotalSpent: mt(100)}
	if got := SafeToSpendDaily(stats, 9); got != mt(100) {
		t.Fatalf("got %s", got)
	}
	if got := SafeToSpendDaily(stats, 0); got != mt(900) {
		t.Fatalf("divisor must be floored at 1, got %s", got)
	}
	overspent := core.BudgetStats{TotalIncome: mt(10), TotalSpent: mt(100)}
	if got := SafeToSpendDaily(overspent, 3); got.Cents != 0 {
		t.Fatalf("overspent must show zero, got %s", got)
	}
}
