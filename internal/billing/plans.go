package billing

import (
	"fmt"
	"math"

	"github.com/nexusvpn/mockapi/pkg/types"
)

// Billing periods.
const (
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// Plan is one entry of the price list. YearlyPrice is the per-month price
// when billed yearly.
type Plan struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	MonthlyPrice   float64 `json:"monthly_price"`
	YearlyPrice    float64 `json:"yearly_price"`
	PremiumServers bool    `json:"premium_servers"`
}

var catalog = []Plan{
	{ID: types.PlanFree, Name: "Free", MonthlyPrice: 0, YearlyPrice: 0},
	{ID: types.PlanBasic, Name: "Basic", MonthlyPrice: 4.99, YearlyPrice: 2.99, PremiumServers: true},
	{ID: types.PlanPro, Name: "Pro", MonthlyPrice: 9.99, YearlyPrice: 5.99, PremiumServers: true},
	{ID: types.PlanUltimate, Name: "Ultimate", MonthlyPrice: 14.99, YearlyPrice: 8.99, PremiumServers: true},
}

// Catalog returns the plans in display order.
func Catalog() []Plan {
	out := make([]Plan, len(catalog))
	copy(out, catalog)
	return out
}

// LookupPlan returns the plan with the given id.
func LookupPlan(id string) (Plan, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// Months returns the length of a billing period.
func Months(period string) (int, error) {
	switch period {
	case PeriodMonthly:
		return 1, nil
	case PeriodYearly:
		return 12, nil
	default:
		return 0, fmt.Errorf("%w: unknown billing period %q", types.ErrInvalidData, period)
	}
}

// Charge returns the amount billed up front for period, rounded to cents.
func (p Plan) Charge(period string) (float64, error) {
	months, err := Months(period)
	if err != nil {
		return 0, err
	}
	perMonth := p.MonthlyPrice
	if period == PeriodYearly {
		perMonth = p.YearlyPrice
	}
	return math.Round(perMonth*float64(months)*100) / 100, nil
}
