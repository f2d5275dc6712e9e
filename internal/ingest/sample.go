package ingest

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/dvloznov/financewise/internal/domain"
)

// sampleDays is how far back the generated transaction history reaches.
const sampleDays = 60

// sampleMerchants maps each generated category to its merchant pool.
var sampleMerchants = map[domain.Category][]string{
	domain.CategoryFood:          {"Swiggy", "Zomato", "Dominos", "McDonald's", "Starbucks", "Local Restaurant"},
	domain.CategoryTransport:     {"Uber", "Ola", "Petrol Pump", "Metro Card", "Rapido"},
	domain.CategoryShopping:      {"Amazon", "Flipkart", "Myntra", "Big Bazaar", "DMart"},
	domain.CategoryUtilities:     {"Electricity Bill", "Water Bill", "Gas Bill", "Internet Bill"},
	domain.CategoryEntertainment: {"Netflix", "Amazon Prime", "BookMyShow", "Spotify"},
	domain.CategorySubscription:  {"Netflix", "Spotify", "YouTube Premium", "Gym Membership"},
	domain.CategoryEMI:           {"HDFC EMI", "Bajaj EMI", "Car Loan EMI"},
}

// sampleAmountRanges bounds the generated amount per category.
var sampleAmountRanges = map[domain.Category][2]float64{
	domain.CategoryFood:          {100, 1500},
	domain.CategoryTransport:     {50, 800},
	domain.CategoryShopping:      {500, 5000},
	domain.CategoryUtilities:     {500, 3000},
	domain.CategoryEntertainment: {200, 1000},
	domain.CategorySubscription:  {199, 999},
	domain.CategoryEMI:           {3000, 15000},
}

// DebtSink stores generated debts. *store.DebtRepository satisfies it.
type DebtSink interface {
	InsertMany(ctx context.Context, debts []*domain.Debt) error
}

// GoalSink stores generated goals. *store.SavingsGoalRepository satisfies it.
type GoalSink interface {
	Insert(ctx context.Context, goal *domain.SavingsGoal) error
}

// SampleResult reports what one generator run inserted.
type SampleResult struct {
	Transactions int `json:"transactions"`
	Debts        int `json:"debts"`
	Goals        int `json:"goals"`
}

// SampleGenerator creates a realistic 60-day history of transactions, three
// debts and one savings goal for a user. It backs both the demo bank-sync
// endpoint and the first-login bootstrap.
type SampleGenerator struct {
	txns  TransactionSink
	debts DebtSink
	goals GoalSink
	rng   *rand.Rand
}

// NewSampleGenerator creates a generator over the given sinks.
func NewSampleGenerator(txns TransactionSink, debts DebtSink, goals GoalSink) *SampleGenerator {
	return &SampleGenerator{
		txns:  txns,
		debts: debts,
		goals: goals,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate inserts the sample records and reports the counts.
func (g *SampleGenerator) Generate(ctx context.Context, userID string) (*SampleResult, error) {
	now := time.Now().UTC()
	txs := g.sampleTransactions(userID, now)

	if err := g.txns.InsertMany(ctx, txs); err != nil {
		return nil, fmt.Errorf("Generate: inserting transactions: %w", err)
	}

	debts := sampleDebts(userID)
	if err := g.debts.InsertMany(ctx, debts); err != nil {
		return nil, fmt.Errorf("Generate: inserting debts: %w", err)
	}

	goal := sampleGoal(userID, now)
	if err := g.goals.Insert(ctx, goal); err != nil {
		return nil, fmt.Errorf("Generate: inserting goal: %w", err)
	}

	return &SampleResult{
		Transactions: len(txs),
		Debts:        len(debts),
		Goals:        1,
	}, nil
}

func (g *SampleGenerator) sampleTransactions(userID string, now time.Time) []*domain.Transaction {
	categories := make([]domain.Category, 0, len(sampleMerchants))
	for cat := range sampleMerchants {
		categories = append(categories, cat)
	}
	// Map iteration order is random; sort for a stable pick space.
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	var txs []*domain.Transaction
	for dayOffset := 0; dayOffset < sampleDays; dayOffset++ {
		date := now.AddDate(0, 0, -dayOffset)

		perDay := 2 + g.rng.Intn(4) // 2-5 transactions per day
		for n := 0; n < perDay; n++ {
			category := categories[g.rng.Intn(len(categories))]
			merchants := sampleMerchants[category]
			merchant := merchants[g.rng.Intn(len(merchants))]

			bounds, ok := sampleAmountRanges[category]
			if !ok {
				bounds = [2]float64{100, 1000}
			}
			amount := round2(bounds[0] + g.rng.Float64()*(bounds[1]-bounds[0]))

			tx := domain.NewTransaction(userID, date, amount, domain.TypeDebit,
				merchant, category, "Payment to "+merchant)
			tx.IsRecurring = category == domain.CategoryEMI || category == domain.CategorySubscription
			tx.IsSubscription = category == domain.CategorySubscription
			txs = append(txs, tx)
		}
	}

	// Two monthly salary credits.
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for monthOffset := 0; monthOffset < 2; monthOffset++ {
		salaryDate := firstOfMonth.AddDate(0, 0, -monthOffset*30)
		tx := domain.NewTransaction(userID, salaryDate, 75000, domain.TypeCredit,
			"Employer", domain.CategorySalary, "Monthly Salary")
		tx.IsRecurring = true
		txs = append(txs, tx)
	}

	return txs
}

func sampleDebts(userID string) []*domain.Debt {
	return []*domain.Debt{
		domain.NewDebt(userID, "HDFC Credit Card", domain.DebtCreditCard, 50000, 42000, 36, 5000, 10),
		domain.NewDebt(userID, "Personal Loan", domain.DebtPersonalLoan, 200000, 156000, 14, 8500, 20),
		domain.NewDebt(userID, "iPhone EMI", domain.DebtEMI, 80000, 48000, 0, 8000, 6),
	}
}

func sampleGoal(userID string, now time.Time) *domain.SavingsGoal {
	targetDate := now.AddDate(1, 0, 0)
	goal := domain.NewSavingsGoal(userID, "Emergency Fund", 300000, 10000, &targetDate)
	goal.CurrentAmount = 75000
	return goal
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
