package plans

import "fmt"

// Milestone names a point in a payment schedule.
type Milestone string

const (
	MilestoneDownpayment Milestone = "downpayment"
	MilestoneMoveIn      Milestone = "moveIn"
	MilestoneMonthly     Milestone = "monthly"
)

// Installment is one payment due under a plan.
type Installment struct {
	Sequence  int       `json:"sequence"`
	Milestone Milestone `json:"milestone"`
	Label     string    `json:"label"`
	Amount    float64   `json:"amount"`
	// Remaining is the balance still owed after this payment.
	Remaining float64 `json:"remaining"`
}

// Schedule lists every payment due under the plan: the down payment, the
// move-in payment and then one entry per month.
func (p Plan) Schedule() []Installment {
	schedule := make([]Installment, 0, p.DurationMonths+2)
	remaining := p.TotalCost

	add := func(m Milestone, label string, amount float64) {
		remaining -= amount
		schedule = append(schedule, Installment{
			Sequence:  len(schedule) + 1,
			Milestone: m,
			Label:     label,
			Amount:    amount,
			Remaining: remaining,
		})
	}

	add(MilestoneDownpayment, "Down payment", p.Downpayment)
	add(MilestoneMoveIn, "Move-in", p.MoveIn)
	for month := 1; month <= p.DurationMonths; month++ {
		add(MilestoneMonthly, fmt.Sprintf("Month %d", month), p.MonthlyInstallment)
	}

	return schedule
}

// Title renders a plan key such as "6months" as "6 Months".
func Title(key string) string {
	var months int
	if _, err := fmt.Sscanf(key, "%dmonths", &months); err == nil && fmt.Sprintf("%dmonths", months) == key {
		return fmt.Sprintf("%d Months", months)
	}
	return key
}
