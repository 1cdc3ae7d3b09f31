package plans

import (
	"github.com/shopspring/decimal"

	"github.com/siptrack/siptrack/backend/go-services/internal/models"
)

// ElapsedMonths returns the whole months credited to a plan started on start
// as of today. A plan is credited with a month once its contribution day
// within the current month has passed or equals today; for plans started in a
// prior month the current, in-progress month is additionally counted as a
// completed contribution. Future start dates yield zero.
func ElapsedMonths(start, today models.Date) int {
	raw := (today.Year()-start.Year())*12 + int(today.Month()) - int(start.Month())
	switch {
	case raw < 0:
		return 0
	case raw == 0:
		if today.Day() >= start.Day() {
			return 1
		}
		return 0
	default:
		return raw + 1
	}
}

// Summarize reduces a profile's plans to one row per scheme name:
// total_invested sums monthly_amount × elapsed months over the group, and
// months_invested is the maximum elapsed months in the group (concurrent
// plans in one scheme count as a single investment streak, not additive
// timelines). Rows are emitted in first-seen scheme order so the fold is
// deterministic regardless of how the storage layer happens to order plans.
func Summarize(planList []models.Plan, today models.Date) []models.SummaryRow {
	groups := make(map[string]*models.SummaryRow)
	var order []string

	for _, p := range planList {
		elapsed := ElapsedMonths(p.StartDate, today)
		invested := p.MonthlyAmount.Mul(decimal.NewFromInt(int64(elapsed)))

		row, ok := groups[p.SchemeName]
		if !ok {
			groups[p.SchemeName] = &models.SummaryRow{
				SchemeName:     p.SchemeName,
				TotalInvested:  invested,
				MonthsInvested: elapsed,
			}
			order = append(order, p.SchemeName)
			continue
		}
		row.TotalInvested = row.TotalInvested.Add(invested)
		if elapsed > row.MonthsInvested {
			row.MonthsInvested = elapsed
		}
	}

	out := make([]models.SummaryRow, 0, len(order))
	for _, scheme := range order {
		out = append(out, *groups[scheme])
	}
	return out
}
