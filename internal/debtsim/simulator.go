// Package debtsim simulates month-by-month debt repayment under the snowball
// and avalanche strategies. Simulation is pure: it works on copies of the
// input records and is deterministic for identical inputs.
package debtsim

import (
	"math"
	"sort"
	"time"

	"github.com/dvloznov/financewise/internal/domain"
)

// Strategy selects the payoff ordering.
type Strategy string

const (
	// StrategySnowball prioritizes the smallest outstanding balance.
	StrategySnowball Strategy = "snowball"
	// StrategyAvalanche prioritizes the highest interest rate.
	StrategyAvalanche Strategy = "avalanche"
)

// monthsCap bounds the simulation at 30 years so a debt whose installment
// cannot cover accruing interest still terminates.
const monthsCap = 360

// Payoff records the month at which one debt reached zero balance.
type Payoff struct {
	Name           string `json:"name"`
	MonthsToPayoff int    `json:"months_to_payoff"`
}

// PayoffPlan is the outcome of one simulated strategy.
type PayoffPlan struct {
	TotalMonths   int      `json:"total_months"`
	TotalInterest float64  `json:"total_interest"`
	PayoffOrder   []Payoff `json:"payoff_order"`
	DebtFreeDate  string   `json:"debt_free_date,omitempty"`
	CapReached    bool     `json:"cap_reached,omitempty"`
}

// workingDebt is the simulator's mutable copy of a debt.
type workingDebt struct {
	name    string
	balance float64
	rate    float64
	emi     float64
}

// Simulate runs the month-by-month amortization for the given strategy and
// optional extra monthly payment. The extra budget, together with the
// installments freed by already-cleared debts, always goes to the highest
// priority debt still carrying a balance; an overpayment that clears a debt
// cascades to the next debt within the same month. An empty debt set returns
// a zero plan immediately.
func Simulate(debts []*domain.Debt, strategy Strategy, extraPayment float64, now time.Time) PayoffPlan {
	plan := PayoffPlan{PayoffOrder: []Payoff{}}
	if len(debts) == 0 {
		return plan
	}

	working := make([]*workingDebt, len(debts))
	for i, d := range debts {
		working[i] = &workingDebt{
			name:    d.Name,
			balance: d.Outstanding,
			rate:    d.InterestRate,
			emi:     d.EMIAmount,
		}
	}

	if strategy == StrategySnowball {
		sort.SliceStable(working, func(i, j int) bool {
			return working[i].balance < working[j].balance
		})
	} else {
		sort.SliceStable(working, func(i, j int) bool {
			return working[i].rate > working[j].rate
		})
	}

	var totalInterest float64
	var freedEMI float64 // installments of cleared debts, rolled forward

	for anyOutstanding(working) {
		if plan.TotalMonths >= monthsCap {
			plan.CapReached = true
			break
		}
		plan.TotalMonths++

		pool := extraPayment + freedEMI

		for _, d := range working {
			if d.balance <= 0 {
				continue
			}

			interest := d.balance * d.rate / 1200
			totalInterest += interest
			d.balance += interest

			// The pool goes to the highest-priority unpaid debt only.
			payment := d.emi + pool
			pool = 0
			d.balance -= payment

			if d.balance <= 0 {
				// Overpayment cascades within the same month; the freed
				// installment joins the pool from next month on.
				pool = -d.balance
				freedEMI += d.emi
				d.balance = 0
				plan.PayoffOrder = append(plan.PayoffOrder, Payoff{
					Name:           d.name,
					MonthsToPayoff: plan.TotalMonths,
				})
			}
		}
	}

	plan.TotalInterest = round2(totalInterest)
	plan.DebtFreeDate = now.AddDate(0, 0, plan.TotalMonths*30).Format("January 2006")
	return plan
}

// Analysis compares both strategies over the same debt set.
type Analysis struct {
	TotalDebt                  float64     `json:"total_debt"`
	TotalEMI                   float64     `json:"total_emi"`
	AverageInterestRate        float64     `json:"average_interest_rate"`
	Snowball                   *PayoffPlan `json:"snowball_analysis"`
	Avalanche                  *PayoffPlan `json:"avalanche_analysis"`
	InterestSavedWithAvalanche float64     `json:"interest_saved_with_avalanche"`
}

// Analyze runs both strategies and reports the totals alongside the interest
// saved by the avalanche ordering. The average interest rate is weighted by
// outstanding balance.
func Analyze(debts []*domain.Debt, extraPayment float64, now time.Time) Analysis {
	if len(debts) == 0 {
		return Analysis{}
	}

	var totalDebt, totalEMI, weightedRate float64
	for _, d := range debts {
		totalDebt += d.Outstanding
		totalEMI += d.EMIAmount
		weightedRate += d.InterestRate * d.Outstanding
	}

	avgRate := 0.0
	if totalDebt > 0 {
		avgRate = weightedRate / totalDebt
	}

	snowball := Simulate(debts, StrategySnowball, extraPayment, now)
	avalanche := Simulate(debts, StrategyAvalanche, extraPayment, now)

	return Analysis{
		TotalDebt:                  round2(totalDebt),
		TotalEMI:                   round2(totalEMI),
		AverageInterestRate:        round2(avgRate),
		Snowball:                   &snowball,
		Avalanche:                  &avalanche,
		InterestSavedWithAvalanche: round2(snowball.TotalInterest - avalanche.TotalInterest),
	}
}

func anyOutstanding(working []*workingDebt) bool {
	for _, d := range working {
		if d.balance > 0 {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
