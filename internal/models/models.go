package models

import (
	"time"
)

// User represents a registered user account
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	Password  string    `db:"password" json:"-"` // Password hash, not returned in JSON
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Trip represents a planned trip shared by its members
type Trip struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedBy   string    `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// Member roles within a trip
const (
	RoleOwner     = "owner"
	RoleOrganizer = "organizer"
	RoleMember    = "member"
)

// TripMember represents the relationship between users and trips
type TripMember struct {
	TripID     string    `db:"trip_id" json:"tripId"`
	UserID     string    `db:"user_id" json:"userId"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	Role       string    `db:"role" json:"role"` // "owner", "organizer" or "member"
	BudgetGoal float64   `db:"budget_goal" json:"budgetGoal"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Event represents an itinerary entry of a trip. In the budget engine events
// are label references used to tag expenses; they carry no scheduling
// semantics there.
type Event struct {
	ID        string    `db:"id" json:"id"`
	TripID    string    `db:"trip_id" json:"tripId"`
	Name      string    `db:"name" json:"name"`
	Date      time.Time `db:"event_date" json:"date"`
	Cost      float64   `db:"cost" json:"cost"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Expense represents a shared expense within a trip.
// Invariant: the split amounts sum to Amount within 0.01. This is enforced
// before the record is created or updated, never left inconsistent in storage.
type Expense struct {
	ID          string    `db:"id" json:"id"`
	TripID      string    `db:"trip_id" json:"tripId"`
	EventID     string    `db:"event_id" json:"eventId,omitempty"`
	Description string    `db:"description" json:"description"`
	Amount      float64   `db:"amount" json:"amount"`
	PaidBy      string    `db:"paid_by" json:"paidBy"`
	PaidByName  string    `db:"-" json:"paidByName,omitempty"`
	Date        time.Time `db:"date_incurred" json:"date"`
	Category    string    `db:"category" json:"category"`
	Splits      []Split   `db:"-" json:"splits"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Split is the portion of one expense attributed to one person.
// PersonID is unique within an expense's split set.
type Split struct {
	ExpenseID string  `db:"expense_id" json:"-"`
	PersonID  string  `db:"person_id" json:"personId"`
	Amount    float64 `db:"amount" json:"amount"`
}

// Settlement states. A settlement transitions at most once:
// pending -> completed on confirmation, or it is removed on decline.
const (
	SettlementPending   = "pending"
	SettlementCompleted = "completed"
)

// Settlement records one member proposing to pay another to clear debt.
// It never mutates expense or split records; it is an independent ledger of
// debt-clearing intent.
type Settlement struct {
	ID     string    `db:"id" json:"id"`
	TripID string    `db:"trip_id" json:"tripId"`
	FromID string    `db:"from_user_id" json:"from"`
	ToID   string    `db:"to_user_id" json:"to"`
	Amount float64   `db:"amount" json:"amount"`
	Date   time.Time `db:"date_paid" json:"date"`
	Status string    `db:"status" json:"status"`
}

// Person is the budget engine's view of a trip member.
type Person struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Initials string  `json:"initials"`
	Color    string  `json:"color"`
	Budget   float64 `json:"budget"`
}

// PersonSpending is the derived per-person total of attributed splits.
type PersonSpending struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Color  string  `json:"color"`
}

// Category is an expense category with its display color.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoryTotal is the derived per-category expense total.
type CategoryTotal struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Total float64 `json:"value"`
}

// SettlementSuggestion is one transfer proposed by debt simplification.
type SettlementSuggestion struct {
	FromID   string  `json:"from"`
	FromName string  `json:"fromName"`
	ToID     string  `json:"to"`
	ToName   string  `json:"toName"`
	Amount   float64 `json:"amount"`
}

// CategoryOther is the fallback category for untagged expenses.
const CategoryOther = "other"

// Categories returns the fixed expense category palette.
func Categories() []Category {
	return []Category{
		{ID: "accommodation", Name: "Accommodation", Color: "#5B7FFF"},
		{ID: "transportation", Name: "Transportation", Color: "#FF6B9D"},
		{ID: "food", Name: "Food", Color: "#4CAF50"},
		{ID: "entertainment", Name: "Entertainment", Color: "#FFA726"},
		{ID: "activities", Name: "Activities", Color: "#AB47BC"},
		{ID: "shopping", Name: "Shopping", Color: "#26C6DA"},
		{ID: CategoryOther, Name: "Other", Color: "#78909C"},
	}
}

// MemberColors is the palette used to assign display colors to trip members
// by join order.
var MemberColors = []string{
	"#0d6efd", "#198754", "#dc3545", "#ffc107", "#0dcaf0", "#6610f2", "#d63384",
}
