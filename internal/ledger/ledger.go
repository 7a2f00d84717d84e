// Package ledger implements the expense ledger and settlement engine for one
// trip. An Engine is an explicit, session-scoped object constructed from
// plain records; it performs synchronous in-memory mutation only and owns no
// I/O. Persistence and validation are the caller's responsibility: inputs
// are assumed pre-validated (see ExpenseInput) and unknown ids are treated
// as silent no-ops rather than errors.
package ledger

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wanderplan/server/internal/models"
)

// ExpenseInput carries the mutable fields of an expense.
// Precondition (enforced at the API boundary, not re-checked here): the
// split amounts sum to Amount within SplitTolerance, the split set is
// non-empty with no duplicate person, and PaidBy is a member of the trip.
type ExpenseInput struct {
	Description string
	Amount      float64
	PaidBy      string
	Date        time.Time
	EventID     string
	Category    string
	Splits      []models.Split
}

// Engine holds the expense and settlement collections for one trip and
// derives all aggregate views on demand. Derived views recompute from
// scratch on every call; the data set is a single trip's worth of records,
// so there is no cache to invalidate.
type Engine struct {
	tripID      string
	people      []models.Person
	expenses    []models.Expense
	settlements []models.Settlement
}

// New constructs an engine over a snapshot of one trip's records.
func New(tripID string, people []models.Person, expenses []models.Expense, settlements []models.Settlement) *Engine {
	return &Engine{
		tripID:      tripID,
		people:      people,
		expenses:    expenses,
		settlements: settlements,
	}
}

// People returns the current member projections.
func (e *Engine) People() []models.Person { return e.people }

// Expenses returns the current expense collection.
func (e *Engine) Expenses() []models.Expense { return e.expenses }

// Settlements returns the current settlement collection.
func (e *Engine) Settlements() []models.Settlement { return e.settlements }

func (e *Engine) personName(id string) string {
	for _, p := range e.people {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}

// AddExpense appends a new expense with a freshly generated id and returns
// the stored record. The payer id is resolved to a display name for
// presentation; the canonical PaidBy reference is retained.
func (e *Engine) AddExpense(in ExpenseInput) models.Expense {
	exp := models.Expense{
		ID:          uuid.New().String(),
		TripID:      e.tripID,
		EventID:     in.EventID,
		Description: in.Description,
		Amount:      in.Amount,
		PaidBy:      in.PaidBy,
		PaidByName:  e.personName(in.PaidBy),
		Date:        in.Date,
		Category:    in.Category,
		Splits:      in.Splits,
		CreatedAt:   time.Now().UTC(),
	}
	e.expenses = append(e.expenses, exp)
	return exp
}

// UpdateExpense replaces the mutable fields of the matching expense in
// place, preserving its id. Unknown ids are a silent no-op: the UI only
// issues updates for ids it has already fetched.
func (e *Engine) UpdateExpense(id string, in ExpenseInput) {
	for i := range e.expenses {
		if e.expenses[i].ID != id {
			continue
		}
		e.expenses[i].EventID = in.EventID
		e.expenses[i].Description = in.Description
		e.expenses[i].Amount = in.Amount
		e.expenses[i].PaidBy = in.PaidBy
		e.expenses[i].PaidByName = e.personName(in.PaidBy)
		e.expenses[i].Date = in.Date
		e.expenses[i].Category = in.Category
		e.expenses[i].Splits = in.Splits
		return
	}
}

// DeleteExpense removes the matching expense. No-op if absent.
func (e *Engine) DeleteExpense(id string) {
	for i := range e.expenses {
		if e.expenses[i].ID == id {
			e.expenses = append(e.expenses[:i], e.expenses[i+1:]...)
			return
		}
	}
}

// RecordSettlement creates a pending settlement timestamped now. It does not
// touch any expense or split; it is advisory bookkeeping of an out-of-band
// payment.
func (e *Engine) RecordSettlement(fromID, toID string, amount float64) models.Settlement {
	s := models.Settlement{
		ID:     uuid.New().String(),
		TripID: e.tripID,
		FromID: fromID,
		ToID:   toID,
		Amount: amount,
		Date:   time.Now().UTC(),
		Status: models.SettlementPending,
	}
	e.settlements = append(e.settlements, s)
	return s
}

// ConfirmSettlement transitions a pending settlement to completed. Missing
// or already-completed settlements are a silent no-op.
func (e *Engine) ConfirmSettlement(id string) {
	for i := range e.settlements {
		if e.settlements[i].ID == id && e.settlements[i].Status == models.SettlementPending {
			e.settlements[i].Status = models.SettlementCompleted
			return
		}
	}
}

// DeclineSettlement removes the settlement entirely regardless of state.
// No terminal "declined" state is retained.
func (e *Engine) DeclineSettlement(id string) {
	for i := range e.settlements {
		if e.settlements[i].ID == id {
			e.settlements = append(e.settlements[:i], e.settlements[i+1:]...)
			return
		}
	}
}

// SaveBudget sets a person's budget. The caller validates newBudget >= 0.
// No-op on unknown person.
func (e *Engine) SaveBudget(personID string, newBudget float64) {
	for i := range e.people {
		if e.people[i].ID == personID {
			e.people[i].Budget = newBudget
			return
		}
	}
}

// IncreaseBudget suggests a budget of ceil(spend/100)*100 and applies it via
// SaveBudget, returning the suggestion. When spend is an exact multiple of
// 100 the suggestion equals current spend.
func (e *Engine) IncreaseBudget(personID string) float64 {
	spend := 0.0
	for _, ps := range e.PersonSpending() {
		if ps.ID == personID {
			spend = ps.Amount
			break
		}
	}
	suggested := math.Ceil(spend/100) * 100
	e.SaveBudget(personID, suggested)
	return suggested
}

// PersonSpending sums, for each person, the amount of every split attributed
// to them across all expenses.
func (e *Engine) PersonSpending() []models.PersonSpending {
	out := make([]models.PersonSpending, len(e.people))
	for i, p := range e.people {
		total := 0.0
		for _, exp := range e.expenses {
			for _, s := range exp.Splits {
				if s.PersonID == p.ID {
					total += s.Amount
				}
			}
		}
		out[i] = models.PersonSpending{
			ID:     p.ID,
			Name:   p.Name,
			Amount: total,
			Color:  p.Color,
		}
	}
	return out
}

// CategoryTotals sums expense amounts per category over the fixed palette.
// Unknown or empty categories count toward "other".
func (e *Engine) CategoryTotals() []models.CategoryTotal {
	cats := models.Categories()
	totals := make(map[string]float64, len(cats))
	known := make(map[string]bool, len(cats))
	for _, c := range cats {
		known[c.ID] = true
	}
	for _, exp := range e.expenses {
		id := strings.ToLower(exp.Category)
		if !known[id] {
			id = models.CategoryOther
		}
		totals[id] += exp.Amount
	}
	out := make([]models.CategoryTotal, len(cats))
	for i, c := range cats {
		out[i] = models.CategoryTotal{ID: c.ID, Name: c.Name, Color: c.Color, Total: totals[c.ID]}
	}
	return out
}

// TripBudget is the sum of all member budgets.
func (e *Engine) TripBudget() float64 {
	total := 0.0
	for _, p := range e.people {
		total += p.Budget
	}
	return total
}

// TotalSpent is the sum of all expense amounts.
func (e *Engine) TotalSpent() float64 {
	total := 0.0
	for _, exp := range e.expenses {
		total += exp.Amount
	}
	return total
}

// BudgetProgress is total spend as a percentage of the trip budget,
// 0 when no budget is configured.
func (e *Engine) BudgetProgress() float64 {
	budget := e.TripBudget()
	if budget <= 0 {
		return 0
	}
	return e.TotalSpent() / budget * 100
}

// PendingSettlements returns settlements awaiting confirmation.
func (e *Engine) PendingSettlements() []models.Settlement {
	return e.settlementsByStatus(models.SettlementPending)
}

// CompletedSettlements returns confirmed settlements.
func (e *Engine) CompletedSettlements() []models.Settlement {
	return e.settlementsByStatus(models.SettlementCompleted)
}

func (e *Engine) settlementsByStatus(status string) []models.Settlement {
	out := make([]models.Settlement, 0)
	for _, s := range e.settlements {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out
}

// SuggestedSettlements computes the transfers that would clear all debts.
//
// Each member's balance is what they paid minus what they owe across all
// expense splits; completed settlements shift balances accordingly. Debtors
// are then matched against creditors greedily in member order. Balances
// within 0.01 of zero are treated as settled to avoid floating point noise.
func (e *Engine) SuggestedSettlements() []models.SettlementSuggestion {
	balances := make(map[string]float64, len(e.people))
	for _, p := range e.people {
		balances[p.ID] = 0
	}

	for _, exp := range e.expenses {
		if _, ok := balances[exp.PaidBy]; ok {
			balances[exp.PaidBy] += exp.Amount
		}
		for _, s := range exp.Splits {
			if _, ok := balances[s.PersonID]; ok {
				balances[s.PersonID] -= s.Amount
			}
		}
	}

	for _, s := range e.CompletedSettlements() {
		if _, ok := balances[s.FromID]; ok {
			balances[s.FromID] += s.Amount
		}
		if _, ok := balances[s.ToID]; ok {
			balances[s.ToID] -= s.Amount
		}
	}

	type stake struct {
		id     string
		amount float64
	}
	var creditors, debtors []stake
	for _, p := range e.people {
		switch b := balances[p.ID]; {
		case b > settledThreshold:
			creditors = append(creditors, stake{p.ID, b})
		case b < -settledThreshold:
			debtors = append(debtors, stake{p.ID, -b})
		}
	}

	suggestions := make([]models.SettlementSuggestion, 0)
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := math.Min(debtors[i].amount, creditors[j].amount)
		suggestions = append(suggestions, models.SettlementSuggestion{
			FromID:   debtors[i].id,
			FromName: e.personName(debtors[i].id),
			ToID:     creditors[j].id,
			ToName:   e.personName(creditors[j].id),
			Amount:   amount,
		})
		debtors[i].amount -= amount
		creditors[j].amount -= amount
		if debtors[i].amount < settledThreshold {
			i++
		}
		if creditors[j].amount < settledThreshold {
			j++
		}
	}
	return suggestions
}

// PendingCosts sums the cost of itinerary events that have no expense linked
// to them yet, i.e. spending the group has committed to but not recorded.
func (e *Engine) PendingCosts(events []models.Event) float64 {
	linked := make(map[string]bool, len(e.expenses))
	for _, exp := range e.expenses {
		if exp.EventID != "" {
			linked[exp.EventID] = true
		}
	}
	total := 0.0
	for _, ev := range events {
		if ev.Cost > 0 && !linked[ev.ID] {
			total += ev.Cost
		}
	}
	return total
}
